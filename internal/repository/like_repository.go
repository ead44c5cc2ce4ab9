package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialnet/internal/models"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create adds a like and reports whether a new row was written. A concurrent
// duplicate loses on the (post_id, author_id) constraint and yields false.
func (r *likeRepository) Create(ctx context.Context, postID, userID string) (bool, error) {
	query := `
		INSERT INTO likes (like_id, post_id, author_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (post_id, author_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, uuid.New().String(), postID, userID, time.Now().UTC())
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
		}
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("ошибка при создании лайка: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке вставленных строк: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, postID, userID string) error {
	query := `DELETE FROM likes WHERE post_id = $1 AND author_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении лайка: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("лайк: %w", ErrNotFound)
	}

	return nil
}

func (r *likeRepository) ListLikers(ctx context.Context, postID string) ([]*models.User, error) {
	query := `
		SELECT u.user_id, u.username, u.email, u.password_hash, u.role, u.display_name, u.bio,
			u.avatar_url, u.created_at, u.updated_at
		FROM likes l
		JOIN users u ON u.user_id = l.author_id
		WHERE l.post_id = $1
		ORDER BY l.created_at DESC
	`

	users := []*models.User{}
	err := r.db.SelectContext(ctx, &users, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении лайкнувших пользователей: %w", err)
	}

	return users, nil
}
