package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/dnh33/metanet-gallery-oss/internal/domain"
)

// Client is the server-side Supabase surface this service needs: session
// exchange, user lookup, the profiles table and the avatars bucket. The
// client holds no session state; every call carries the caller's access
// token explicitly.
type Client interface {
	SetSession(ctx context.Context, accessToken, refreshToken string) (*Session, error)
	GetUser(ctx context.Context, accessToken string) (*AuthUser, error)
	FetchProfile(ctx context.Context, accessToken, userID string) (*domain.Profile, error)
	UpsertProfile(ctx context.Context, accessToken string, row *domain.Profile) (*domain.Profile, error)
	UploadObject(ctx context.Context, accessToken, bucket, objectPath, contentType string, data []byte, upsert bool) (string, error)
	RemoveObjects(ctx context.Context, accessToken, bucket string, objectPaths []string) error
	CreateSignedURL(ctx context.Context, accessToken, bucket, objectPath string, ttl time.Duration) (string, error)
	PublicURL(bucket, objectPath string) string
}

type httpClient struct {
	baseURL string
	anonKey string
	client  *http.Client
}

func NewHTTPClient(baseURL, anonKey string, timeout time.Duration) Client {
	return &httpClient{baseURL: baseURL, anonKey: anonKey, client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) bearer(accessToken string) string {
	if accessToken == "" {
		return c.anonKey
	}
	return accessToken
}

// doJSON issues a JSON request and retries transient failures. 4xx
// responses and decode errors are permanent. Only used for calls that are
// safe to repeat.
func (c *httpClient) doJSON(ctx context.Context, method, path, accessToken string, headers map[string]string, payload, out interface{}) error {
	op := func() error {
		err := c.once(ctx, method, path, accessToken, headers, payload, out)
		var apiErr *APIError
		if asAPIError(err, &apiErr) && apiErr.StatusCode < 500 {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = 3 * time.Second
	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}

// once issues a single JSON request with no retry, for non-idempotent
// calls (object upload with upsert off, profile upsert).
func (c *httpClient) once(ctx context.Context, method, path, accessToken string, headers map[string]string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuth(req, accessToken)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.send(req, out)
}

func (c *httpClient) setAuth(req *http.Request, accessToken string) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.bearer(accessToken)))
}

func (c *httpClient) send(req *http.Request, out interface{}) error {
	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return decodeAPIError(res)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("supabase: decode response: %w", err)
		}
	}
	return nil
}
