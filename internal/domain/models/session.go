package models

import "time"

// Session is a single bearer-credential grant stored in the user_sessions
// collection. The token is an opaque random string; validity is decided by
// server-side lookup plus an explicit clock check, never by the token's
// contents.
//
// Sessions weakly reference their user: deleting the user does not delete
// its sessions, so the validator must re-read the user on every request and
// treat a dangling session as invalid.
type Session struct {
	Token     string    `bson:"session_token" json:"-"`
	UserID    string    `bson:"user_id" json:"user_id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Expired reports whether the session is past its absolute expiry at the
// given instant. Expiry is fixed at issuance and never extended.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
