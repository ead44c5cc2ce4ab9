package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialnet/internal/models"
)

type feedRepository struct {
	db *sqlx.DB
}

func NewFeedRepository(db *sqlx.DB) FeedRepository {
	return &feedRepository{db: db}
}

// GetFeed selects posts written by authorIDs. The viewer's own posts are
// always included; everybody else's only when they are not private.
func (r *feedRepository) GetFeed(ctx context.Context, viewerID string, authorIDs []string, limit, offset int) ([]*models.Post, error) {
	if len(authorIDs) == 0 {
		return []*models.Post{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT `+postColumns+`
		FROM posts p
		WHERE p.author_id IN (?)
			AND (p.author_id = ? OR p.visibility IN (?))
		ORDER BY p.created_at DESC
		LIMIT ? OFFSET ?
	`, authorIDs, viewerID, []string{models.VisibilityPublic, models.VisibilityFollowers}, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при построении запроса ленты: %w", err)
	}

	posts := []*models.Post{}
	err = r.db.SelectContext(ctx, &posts, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении ленты: %w", err)
	}

	return posts, nil
}
