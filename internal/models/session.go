package models

import "time"

// Session binds a decoded card to a time-bounded interaction context.
//
// AuthKey stays empty until the bank confirms the PIN; a session without a
// credential must never be used for money movement. Expiry is fixed at
// creation and is not renewed on access.
type Session struct {
	ID        string
	Card      CardData
	AuthKey   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Authenticated reports whether the bank has attached a credential.
func (s *Session) Authenticated() bool {
	return s.AuthKey != ""
}

// Expired reports whether the session lifetime has elapsed at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
