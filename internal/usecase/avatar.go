package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// MaxAvatarBytes is the upload size cap (5 MiB).
	MaxAvatarBytes = 5 << 20
	// MaxFilenameLength caps the client-supplied original filename.
	MaxFilenameLength = 255
	// MaxAvatarPathLength caps caller-supplied storage paths.
	MaxAvatarPathLength = 500
)

var allowedAvatarTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// UploadAvatar validates the file and stores it under the caller's
// storage prefix as {userID}/{epochMillis}.{ext}.
func (s *profileService) UploadAvatar(ctx context.Context, id *Identity, filename, contentType string, data []byte) (*UploadResult, error) {
	if s.sb == nil {
		return nil, ErrNotConfigured
	}
	if len(data) == 0 {
		return nil, invalid("Invalid file")
	}
	if _, ok := allowedAvatarTypes[contentType]; !ok {
		return nil, invalid("Invalid file type. Only images are allowed.")
	}
	if len(data) > MaxAvatarBytes {
		return nil, invalid("File too large. Maximum size is 5MB.")
	}
	if filename == "" || len(filename) > MaxFilenameLength {
		return nil, invalid("Invalid filename")
	}

	filePath := fmt.Sprintf("%s/%d.%s", id.User.ID, time.Now().UnixMilli(), fileExtension(filename))

	// upsert off: millisecond timestamps are unique in practice, so a
	// key collision is a hard failure rather than a silent overwrite
	storedPath, err := s.sb.UploadObject(ctx, id.AccessToken, s.cfg.AvatarBucket, filePath, contentType, data, false)
	if err != nil {
		s.logger.Error().Err(err).Str("path", filePath).Msg("avatar upload failed")
		return nil, err
	}
	return &UploadResult{Path: storedPath, FullPath: filePath}, nil
}

// DeleteAvatar removes the caller's old avatar object, best effort. The
// path must sit under the caller's own prefix; the removal call itself
// is allowed to fail because the caller's goal, no stale avatar blocking
// a re-upload, does not depend on it.
func (s *profileService) DeleteAvatar(ctx context.Context, id *Identity, avatarPath string) error {
	if err := validateAvatarPath(avatarPath); err != nil {
		return err
	}
	if owner, _, _ := strings.Cut(avatarPath, "/"); owner != id.User.ID {
		return ErrNotOwner
	}
	if s.sb == nil {
		return nil
	}
	if err := s.sb.RemoveObjects(ctx, id.AccessToken, s.cfg.AvatarBucket, []string{avatarPath}); err != nil {
		s.logger.Warn().Err(err).Str("path", avatarPath).Msg("avatar removal failed, reporting success anyway")
	}
	return nil
}

// ResolveAvatarURL prefers a signed URL and degrades to the public one.
func (s *profileService) ResolveAvatarURL(ctx context.Context, avatarPath string) (*AvatarURL, error) {
	if err := validateAvatarPath(avatarPath); err != nil {
		return nil, err
	}
	if s.sb == nil {
		return nil, ErrNotConfigured
	}

	signed, signErr := s.sb.CreateSignedURL(ctx, "", s.cfg.AvatarBucket, avatarPath, s.cfg.SignedURLTTL)
	if signErr == nil && signed != "" {
		return &AvatarURL{URL: signed, Type: "signed"}, nil
	}
	s.logger.Debug().Err(signErr).Str("path", avatarPath).Msg("signed url failed, trying public url")

	if public := s.sb.PublicURL(s.cfg.AvatarBucket, avatarPath); public != "" {
		return &AvatarURL{URL: public, Type: "public"}, nil
	}
	return nil, fmt.Errorf("no url obtainable for %q (signed url error: %v)", avatarPath, signErr)
}

func validateAvatarPath(avatarPath string) error {
	if avatarPath == "" {
		return invalid("Valid avatar path is required")
	}
	if len(avatarPath) > MaxAvatarPathLength || !strings.Contains(avatarPath, "/") {
		return invalid("Invalid avatar path format")
	}
	return nil
}

// fileExtension lowercases the extension of the original filename,
// defaulting to jpg when there is none.
func fileExtension(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		return strings.ToLower(filename[i+1:])
	}
	return "jpg"
}
