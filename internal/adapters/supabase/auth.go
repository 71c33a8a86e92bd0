package supabase

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthUser is the backend auth subsystem's view of a user.
type AuthUser struct {
	ID    string `json:"id"`
	Aud   string `json:"aud,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Session is an access/refresh token pair accepted by the backend.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresIn    int64     `json:"expires_in,omitempty"`
	User         *AuthUser `json:"user,omitempty"`
}

// SetSession establishes a usable session from a cookie token pair. The
// access token's expiry is checked locally (unverified decode, same as
// the official client); only an expired or undecodable token triggers
// the refresh grant. Signature verification stays with the backend.
func (c *httpClient) SetSession(ctx context.Context, accessToken, refreshToken string) (*Session, error) {
	if !accessTokenExpired(accessToken, time.Now()) {
		return &Session{AccessToken: accessToken, RefreshToken: refreshToken}, nil
	}

	payload := map[string]string{"refresh_token": refreshToken}
	sess := &Session{}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", "", nil, payload, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// GetUser fetches the user the access token belongs to.
func (c *httpClient) GetUser(ctx context.Context, accessToken string) (*AuthUser, error) {
	user := &AuthUser{}
	if err := c.doJSON(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

// accessTokenExpired decodes the token without verifying it and checks
// the exp claim against now, with a small margin so a token about to
// lapse mid-request is refreshed up front. A token that cannot be
// decoded is treated as expired so the refresh grant gets to decide.
func accessTokenExpired(raw string, now time.Time) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.Add(10 * time.Second).After(exp.Time)
}
