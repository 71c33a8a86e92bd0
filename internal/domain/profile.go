package domain

import "time"

// User is the authenticated backend user joined with their profile row.
// ID is always present; profile fields stay nil until a row exists.
type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Username  *string `json:"username,omitempty"`
	Website   *string `json:"website,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Profile is the persisted row in the backend's profiles table, keyed by
// the auth user id. Upserts are idempotent; UpdatedAt is rewritten on
// every upsert.
type Profile struct {
	ID        string     `json:"id,omitempty"`
	Username  *string    `json:"username,omitempty"`
	Website   *string    `json:"website,omitempty"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
