package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialnet/internal/models"
)

const tokenColumns = `token_id, user_id, token, created_at, expires_at, revoked_at`

type tokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	if token.TokenID == "" {
		token.TokenID = uuid.New().String()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO refresh_tokens (token_id, user_id, token, created_at, expires_at, revoked_at)
		VALUES (:token_id, :user_id, :token, :created_at, :expires_at, :revoked_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении refresh token: %w", err)
	}

	return nil
}

// GetLatestNotRevoked returns the most recently issued refresh token that
// has not been revoked yet, expired or not.
func (r *tokenRepository) GetLatestNotRevoked(ctx context.Context, userID string) (*models.RefreshToken, error) {
	query := `
		SELECT ` + tokenColumns + ` FROM refresh_tokens
		WHERE user_id = $1 AND revoked_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`

	var token models.RefreshToken
	err := r.db.GetContext(ctx, &token, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("refresh token пользователя %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении refresh token: %w", err)
	}

	return &token, nil
}

func (r *tokenRepository) GetByToken(ctx context.Context, value string) (*models.RefreshToken, error) {
	query := `SELECT ` + tokenColumns + ` FROM refresh_tokens WHERE token = $1`

	var token models.RefreshToken
	err := r.db.GetContext(ctx, &token, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("refresh token: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении refresh token: %w", err)
	}

	return &token, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, tokenID string, at time.Time) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = $1
		WHERE token_id = $2 AND revoked_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, at, tokenID)
	if err != nil {
		return fmt.Errorf("ошибка при отзыве refresh token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("refresh token %s: %w", tokenID, ErrNotFound)
	}

	return nil
}
