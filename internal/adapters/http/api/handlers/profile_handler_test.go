package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dnh33/metanet-gallery-oss/internal/adapters/supabase"
	"github.com/dnh33/metanet-gallery-oss/internal/domain"
)

func profileRequest(t *testing.T, payload interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/profile", bytes.NewReader(raw))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestUpdateProfileMissingCookies(t *testing.T) {
	sb := &stubBackend{}
	h := newHandler(configuredCfg(), sb)

	rec := serve(t, h.UpdateProfile, profileRequest(t, map[string]string{"username": "gopher"}))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if sb.calls.setSession != 0 || sb.calls.upsert != 0 {
		t.Fatalf("no backend call expected: %+v", sb.calls)
	}
}

func TestUpdateProfileUnconfiguredStillRequiresAuth(t *testing.T) {
	sb := &stubBackend{}
	h := newHandler(unconfiguredCfg(), sb)

	req := withSessionCookies(profileRequest(t, map[string]string{"username": "gopher"}))
	rec := serve(t, h.UpdateProfile, req)

	// the resolver collapses "not configured" into a 401 before any
	// upsert could happen
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if sb.calls.upsert != 0 {
		t.Fatalf("no upsert expected: %+v", sb.calls)
	}
}

func TestUpdateProfileUsernameBoundary(t *testing.T) {
	sb := &stubBackend{}
	h := newHandler(configuredCfg(), sb)

	rec := serve(t, h.UpdateProfile, withSessionCookies(profileRequest(t,
		map[string]string{"username": strings.Repeat("u", 51)})))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("51-char username should be rejected, got %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Error != "Invalid username" {
		t.Fatalf("unexpected message %q", body.Error)
	}

	rec = serve(t, h.UpdateProfile, withSessionCookies(profileRequest(t,
		map[string]string{"username": strings.Repeat("u", 50)})))
	if rec.Code != http.StatusOK {
		t.Fatalf("50-char username should pass, got %d (%s)", rec.Code, rec.Body.String())
	}
	if sb.calls.upsert != 1 {
		t.Fatalf("expected one upsert, got %d", sb.calls.upsert)
	}
}

func TestUpdateProfileSuccessBody(t *testing.T) {
	sb := &stubBackend{
		upsertFn: func(_ string, row *domain.Profile) (*domain.Profile, error) {
			if row.ID != testUserID {
				t.Fatalf("row keyed by %q, want %q", row.ID, testUserID)
			}
			return row, nil
		},
	}
	h := newHandler(configuredCfg(), sb)

	payload := map[string]string{
		"username":   "gopher",
		"website":    "https://go.dev",
		"avatar_url": testUserID + "/123.png",
	}
	rec := serve(t, h.UpdateProfile, withSessionCookies(profileRequest(t, payload)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeMap(t, rec)
	if body["success"] != true {
		t.Fatalf("missing success flag: %s", rec.Body.String())
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing data object: %s", rec.Body.String())
	}
	if data["username"] != "gopher" || data["avatar_url"] != payload["avatar_url"] {
		t.Fatalf("written row not echoed: %s", rec.Body.String())
	}
}

func TestUpdateProfileBackendError(t *testing.T) {
	sb := &stubBackend{
		upsertFn: func(string, *domain.Profile) (*domain.Profile, error) {
			return nil, &supabase.APIError{StatusCode: http.StatusInternalServerError, Message: "permission denied for table profiles"}
		},
	}
	h := newHandler(configuredCfg(), sb)

	rec := serve(t, h.UpdateProfile, withSessionCookies(profileRequest(t, map[string]string{"username": "gopher"})))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Error != "permission denied for table profiles" {
		t.Fatalf("backend message should surface, got %q", body.Error)
	}
}
