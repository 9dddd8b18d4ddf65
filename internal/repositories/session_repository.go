package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "donext/internal/errors"
)

// SessionRepository reads the auth provider's session table. That table
// is created and written by the external auth service; this side only
// ever SELECTs from it, hence raw SQL instead of a GORM model.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Verify resolves a bearer token to the owning user id. Unknown tokens
// and expired sessions are distinct authentication failures. A NULL or
// zero expiry never expires.
func (r *SessionRepository) Verify(ctx context.Context, token string) (string, error) {
	row := r.db.WithContext(ctx).
		Raw(`SELECT "userId", "expiresAt" FROM "session" WHERE "token" = ?`, token).
		Row()

	var userID string
	var expiresAt sql.NullTime
	if err := row.Scan(&userID, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.ErrInvalidSession
		}
		return "", err
	}

	if expiresAt.Valid && !expiresAt.Time.IsZero() && expiresAt.Time.Before(time.Now()) {
		return "", apperrors.ErrExpiredSession
	}

	return userID, nil
}
