package handlers

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dnh33/metanet-gallery-oss/config"
	"github.com/dnh33/metanet-gallery-oss/internal/adapters/supabase"
	"github.com/dnh33/metanet-gallery-oss/internal/domain"
	"github.com/dnh33/metanet-gallery-oss/internal/usecase"
)

const testUserID = "11111111-2222-3333-4444-555555555555"

// stubBackend stands in for the Supabase client. Defaults behave like a
// healthy backend with an authenticated user and no profile row yet.
type stubBackend struct {
	setSessionFn func(access, refresh string) (*supabase.Session, error)
	getUserFn    func(access string) (*supabase.AuthUser, error)
	fetchFn      func(access, userID string) (*domain.Profile, error)
	upsertFn     func(access string, row *domain.Profile) (*domain.Profile, error)
	uploadFn     func(objectPath, contentType string, data []byte, upsert bool) (string, error)
	removeFn     func(objectPaths []string) error
	signFn       func(objectPath string, ttl time.Duration) (string, error)
	publicFn     func(objectPath string) string

	calls struct {
		setSession, getUser, fetch, upsert, upload, remove, sign int
	}
}

func (s *stubBackend) SetSession(_ context.Context, access, refresh string) (*supabase.Session, error) {
	s.calls.setSession++
	if s.setSessionFn == nil {
		return &supabase.Session{AccessToken: access, RefreshToken: refresh}, nil
	}
	return s.setSessionFn(access, refresh)
}

func (s *stubBackend) GetUser(_ context.Context, access string) (*supabase.AuthUser, error) {
	s.calls.getUser++
	if s.getUserFn == nil {
		return &supabase.AuthUser{ID: testUserID, Email: "u@example.com"}, nil
	}
	return s.getUserFn(access)
}

func (s *stubBackend) FetchProfile(_ context.Context, access, userID string) (*domain.Profile, error) {
	s.calls.fetch++
	if s.fetchFn == nil {
		return nil, &supabase.APIError{StatusCode: http.StatusNotAcceptable, Code: "PGRST116", Message: "no rows"}
	}
	return s.fetchFn(access, userID)
}

func (s *stubBackend) UpsertProfile(_ context.Context, access string, row *domain.Profile) (*domain.Profile, error) {
	s.calls.upsert++
	if s.upsertFn == nil {
		return row, nil
	}
	return s.upsertFn(access, row)
}

func (s *stubBackend) UploadObject(_ context.Context, _, _, objectPath, contentType string, data []byte, upsert bool) (string, error) {
	s.calls.upload++
	if s.uploadFn == nil {
		return objectPath, nil
	}
	return s.uploadFn(objectPath, contentType, data, upsert)
}

func (s *stubBackend) RemoveObjects(_ context.Context, _, _ string, objectPaths []string) error {
	s.calls.remove++
	if s.removeFn == nil {
		return nil
	}
	return s.removeFn(objectPaths)
}

func (s *stubBackend) CreateSignedURL(_ context.Context, _, _, objectPath string, ttl time.Duration) (string, error) {
	s.calls.sign++
	if s.signFn == nil {
		return "https://example.supabase.co/storage/v1/object/sign/avatars/" + objectPath + "?token=abc", nil
	}
	return s.signFn(objectPath, ttl)
}

func (s *stubBackend) PublicURL(_, objectPath string) string {
	if s.publicFn == nil {
		return "https://example.supabase.co/storage/v1/object/public/avatars/" + objectPath
	}
	return s.publicFn(objectPath)
}

func configuredCfg() *config.Config {
	return &config.Config{
		SupabaseURL:     "https://example.supabase.co",
		SupabaseAnonKey: "real-anon-key",
		CookiePrefix:    "supabase",
		AvatarBucket:    "avatars",
		SignedURLTTL:    time.Hour,
	}
}

func unconfiguredCfg() *config.Config {
	return &config.Config{
		SupabaseURL:     config.PlaceholderSupabaseURL,
		SupabaseAnonKey: config.PlaceholderAnonKey,
		CookiePrefix:    "supabase",
		AvatarBucket:    "avatars",
		SignedURLTTL:    time.Hour,
	}
}

// newHandler wires a Handler over the real service and the stub backend.
// When cfg is unconfigured the service gets a nil client, exactly like
// internal/app does it.
func newHandler(cfg *config.Config, sb *stubBackend) *Handler {
	var client supabase.Client
	if cfg.IsConfigured() && sb != nil {
		client = sb
	}
	svc := usecase.NewProfileService(cfg, zerolog.Nop(), client)
	return New(cfg, zerolog.Nop(), svc)
}

func serve(t *testing.T, h echo.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func withSessionCookies(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: "supabase-access-token", Value: "access"})
	req.AddCookie(&http.Cookie{Name: "supabase-refresh-token", Value: "refresh"})
	return req
}

// multipartBody builds a single-file multipart form with an explicit
// part content type, the way browsers submit avatar uploads.
func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}
