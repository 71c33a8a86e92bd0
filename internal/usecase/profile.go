package usecase

import (
	"context"
	"time"

	"github.com/dnh33/metanet-gallery-oss/internal/domain"
)

const (
	maxUsernameLength = 50
	maxWebsiteLength  = 200
)

// UpdateProfile upserts the caller's profile row. avatar_url is passed
// through as-is; it was produced by this service's own upload path.
func (s *profileService) UpdateProfile(ctx context.Context, id *Identity, in ProfileUpdate) (*domain.Profile, error) {
	if in.Username != nil && len(*in.Username) > maxUsernameLength {
		return nil, invalid("Invalid username")
	}
	if in.Website != nil && len(*in.Website) > maxWebsiteLength {
		return nil, invalid("Invalid website URL")
	}
	if s.sb == nil {
		return nil, ErrNotConfigured
	}

	now := time.Now().UTC()
	row := &domain.Profile{
		ID:        id.User.ID,
		Username:  in.Username,
		Website:   in.Website,
		AvatarURL: in.AvatarURL,
		UpdatedAt: &now,
	}
	written, err := s.sb.UpsertProfile(ctx, id.AccessToken, row)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id.User.ID).Msg("profile upsert failed")
		return nil, err
	}
	return written, nil
}
