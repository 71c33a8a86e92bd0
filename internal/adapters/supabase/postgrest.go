package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dnh33/metanet-gallery-oss/internal/domain"
)

const profilesTable = "profiles"

// FetchProfile selects the profile row for userID. A missing row comes
// back as an *APIError with the PostgREST no-rows code; use IsNoRows.
func (c *httpClient) FetchProfile(ctx context.Context, accessToken, userID string) (*domain.Profile, error) {
	path := fmt.Sprintf("/rest/v1/%s?id=eq.%s&select=username,website,avatar_url",
		profilesTable, url.QueryEscape(userID))
	headers := map[string]string{
		// single-object representation: zero rows become an error with
		// a distinct code instead of an empty array
		"Accept": "application/vnd.pgrst.object+json",
	}
	profile := &domain.Profile{}
	if err := c.doJSON(ctx, http.MethodGet, path, accessToken, headers, nil, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpsertProfile inserts or overwrites the row keyed by row.ID and returns
// the written representation.
func (c *httpClient) UpsertProfile(ctx context.Context, accessToken string, row *domain.Profile) (*domain.Profile, error) {
	headers := map[string]string{
		"Prefer": "resolution=merge-duplicates,return=representation",
	}
	var written []domain.Profile
	if err := c.once(ctx, http.MethodPost, "/rest/v1/"+profilesTable, accessToken, headers, row, &written); err != nil {
		return nil, err
	}
	if len(written) == 0 {
		return nil, &APIError{StatusCode: http.StatusInternalServerError, Message: "upsert returned no representation"}
	}
	return &written[0], nil
}
