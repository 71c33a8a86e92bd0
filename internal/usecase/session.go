package usecase

import (
	"context"

	"github.com/dnh33/metanet-gallery-oss/internal/adapters/supabase"
	"github.com/dnh33/metanet-gallery-oss/internal/domain"
)

// ResolveUser turns a cookie token pair into an authenticated identity:
// session exchange, user fetch, then a profile-row join. Every failure
// collapses to an error; callers only branch on success. A missing
// profile row is not a failure, the profile fields just stay nil.
func (s *profileService) ResolveUser(ctx context.Context, accessToken, refreshToken string) (*Identity, error) {
	if s.sb == nil {
		s.logger.Debug().Msg("supabase not configured, skipping authentication")
		return nil, ErrNotConfigured
	}
	if accessToken == "" || refreshToken == "" {
		return nil, ErrUnauthenticated
	}

	sess, err := s.sb.SetSession(ctx, accessToken, refreshToken)
	if err != nil {
		s.logger.Debug().Err(err).Msg("session exchange failed")
		return nil, ErrUnauthenticated
	}

	authUser, err := s.sb.GetUser(ctx, sess.AccessToken)
	if err != nil || authUser == nil || authUser.ID == "" {
		s.logger.Debug().Err(err).Msg("no user for session")
		return nil, ErrUnauthenticated
	}

	user := &domain.User{ID: authUser.ID, Email: authUser.Email, Phone: authUser.Phone}

	profile, err := s.sb.FetchProfile(ctx, sess.AccessToken, authUser.ID)
	switch {
	case err == nil:
		user.Username = profile.Username
		user.Website = profile.Website
		user.AvatarURL = profile.AvatarURL
	case supabase.IsNoRows(err):
		// no profile row yet, not an error
	default:
		s.logger.Warn().Err(err).Str("user_id", authUser.ID).Msg("profile fetch failed")
		return nil, ErrUnauthenticated
	}

	return &Identity{User: user, AccessToken: sess.AccessToken}, nil
}
