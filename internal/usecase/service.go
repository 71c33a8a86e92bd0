package usecase

import (
	"context"
	"errors"

	"github.com/dnh33/metanet-gallery-oss/config"
	"github.com/dnh33/metanet-gallery-oss/internal/adapters/supabase"
	"github.com/dnh33/metanet-gallery-oss/internal/domain"
	pkglog "github.com/dnh33/metanet-gallery-oss/pkg/log"
)

var (
	// ErrNotConfigured means the backend client was never constructed
	// because the Supabase configuration is absent or placeholder.
	ErrNotConfigured = errors.New("supabase not configured")
	// ErrUnauthenticated collapses every session-resolution failure:
	// missing tokens, rejected refresh, backend outage. The concrete
	// cause is logged, not surfaced.
	ErrUnauthenticated = errors.New("invalid session")
	// ErrNotOwner means the caller tried to touch an object outside
	// their own storage prefix.
	ErrNotOwner = errors.New("avatar path not owned by caller")
)

// ValidationError is a caller mistake; its reason is safe to return to
// the client verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(reason string) error { return &ValidationError{Reason: reason} }

// Identity is a resolved session: the merged user record plus the
// (possibly refreshed) access token downstream backend calls must carry.
type Identity struct {
	User        *domain.User
	AccessToken string
}

type UploadResult struct {
	Path     string `json:"path"`
	FullPath string `json:"fullPath"`
}

type AvatarURL struct {
	URL  string `json:"url"`
	Type string `json:"type"` // "signed" or "public"
}

// ProfileUpdate carries the client-supplied profile fields. Nil means
// the field was not sent.
type ProfileUpdate struct {
	Username  *string `json:"username"`
	Website   *string `json:"website"`
	AvatarURL *string `json:"avatar_url"`
}

type Service interface {
	ResolveUser(ctx context.Context, accessToken, refreshToken string) (*Identity, error)
	UploadAvatar(ctx context.Context, id *Identity, filename, contentType string, data []byte) (*UploadResult, error)
	DeleteAvatar(ctx context.Context, id *Identity, avatarPath string) error
	ResolveAvatarURL(ctx context.Context, avatarPath string) (*AvatarURL, error)
	UpdateProfile(ctx context.Context, id *Identity, in ProfileUpdate) (*domain.Profile, error)
}

type profileService struct {
	cfg    *config.Config
	logger pkglog.Logger
	sb     supabase.Client // nil when the backend is not configured
}

// NewProfileService wires the service. sb may be nil; every operation
// then degrades per its own contract instead of dialing out.
func NewProfileService(cfg *config.Config, logger pkglog.Logger, sb supabase.Client) Service {
	return &profileService{cfg: cfg, logger: logger, sb: sb}
}
