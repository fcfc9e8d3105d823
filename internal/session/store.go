// Package session provides storage for ATM interaction sessions.
package session

import (
	"context"

	"github.com/benx421/atm-core/internal/models"
)

// Store defines the interface for session storage.
//
// Create allocates an unauthenticated session with a fresh identifier and a
// fixed lifetime. GetIfValid returns a session only while its lifetime has
// not elapsed; a missing and an expired session both surface as
// models.ErrSessionNotFound. Save overwrites the stored record keyed on the
// session ID and is idempotent.
type Store interface {
	Create(ctx context.Context, card models.CardData) (string, error)
	GetIfValid(ctx context.Context, sessionID string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
}
