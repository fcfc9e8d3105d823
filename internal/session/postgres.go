package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/benx421/atm-core/internal/db"
	"github.com/benx421/atm-core/internal/models"
	"github.com/google/uuid"
)

// PostgresStore persists sessions in Postgres so they survive a process
// restart. The Store contract is unchanged: expiry stays lazy, enforced by
// the read query rather than by a reaper.
type PostgresStore struct {
	db  *db.DB
	ttl time.Duration
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a PostgresStore whose sessions live for ttl.
func NewPostgresStore(database *db.DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: database, ttl: ttl}
}

// Create allocates a new unauthenticated session for the card.
func (s *PostgresStore) Create(ctx context.Context, card models.CardData) (string, error) {
	query := `
		INSERT INTO sessions (id, card_number, holder_name, expiration_date,
		                      service_code, verification_code, auth_key, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, '', $7, $8)
	`

	id := uuid.NewString()
	now := time.Now()

	_, err := s.db.ExecContext(ctx, query,
		id,
		card.Number,
		card.HolderName,
		card.ExpirationDate,
		card.ServiceCode,
		card.VerificationCode,
		now,
		now.Add(s.ttl),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

// GetIfValid returns the session if it exists and has not expired.
func (s *PostgresStore) GetIfValid(ctx context.Context, sessionID string) (*models.Session, error) {
	query := `
		SELECT id, card_number, holder_name, expiration_date,
		       service_code, verification_code, auth_key, created_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > NOW()
	`

	var sess models.Session
	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(
		&sess.ID,
		&sess.Card.Number,
		&sess.Card.HolderName,
		&sess.Card.ExpirationDate,
		&sess.Card.ServiceCode,
		&sess.Card.VerificationCode,
		&sess.AuthKey,
		&sess.CreatedAt,
		&sess.ExpiresAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return &sess, nil
}

// Save overwrites the stored session record keyed on the session ID.
func (s *PostgresStore) Save(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, card_number, holder_name, expiration_date,
		                      service_code, verification_code, auth_key, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET auth_key = EXCLUDED.auth_key,
		    expires_at = EXCLUDED.expires_at
	`

	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.Card.Number,
		session.Card.HolderName,
		session.Card.ExpirationDate,
		session.Card.ServiceCode,
		session.Card.VerificationCode,
		session.AuthKey,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// DeleteExpired removes sessions whose lifetime has elapsed. Lazy expiry
// already keeps them unusable; this reclaims the rows.
func (s *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}
