package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialnet/internal/models"
)

const postColumns = `
	p.post_id, p.author_id, p.title, p.content, p.image_url, p.visibility, p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.post_id) AS likes_count,
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.post_id) AS comments_count
`

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

type CreatePostRequest struct {
	AuthorID   string  `json:"authorId"`
	Title      *string `json:"title"`
	Content    string  `json:"content"`
	Visibility string  `json:"visibility"`
	Image      *Upload `json:"-"`
}

// Upload is an image attached to a new post.
type Upload struct {
	FileName string
	Size     int64
	Body     io.Reader
}

type UpdatePostRequest struct {
	PostID     string  `json:"postId"`
	ActorID    string  `json:"-"`
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Visibility *string `json:"visibility"`
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts
		(post_id, author_id, title, content, image_url, visibility, created_at, updated_at)
		VALUES
		(:post_id, :author_id, :title, :content, :image_url, :visibility, :created_at, :updated_at)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	if post.Visibility == "" {
		post.Visibility = models.VisibilityPublic
	}

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("автор %s: %w", post.AuthorID, ErrNotFound)
		}
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p WHERE p.post_id = $1`

	var post models.Post
	err := r.DB.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

// ListPublic returns public posts, newest first, optionally narrowed by
// author username and a case-insensitive substring of title or content.
func (r *PostRepositoryImpl) ListPublic(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + postColumns + ` FROM posts p`)

	args := []interface{}{models.VisibilityPublic}
	conditions := []string{"p.visibility = $1"}

	if filter.Username != "" {
		sb.WriteString(` JOIN users u ON u.user_id = p.author_id`)
		args = append(args, filter.Username)
		conditions = append(conditions, fmt.Sprintf("u.username = $%d", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(p.title ILIKE $%d OR p.content ILIKE $%d)", len(args), len(args)))
	}

	sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	sb.WriteString(" ORDER BY p.created_at DESC")

	args = append(args, filter.Limit, filter.Offset())
	sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	posts := []*models.Post{}
	err := r.DB.SelectContext(ctx, &posts, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			content = :content,
			visibility = :visibility,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	post.UpdatedAt = time.Now().UTC()

	result, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", post.PostID, ErrNotFound)
	}

	return nil
}

// Delete removes the post; comments and likes go with it through ON DELETE CASCADE.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.DB.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
	}

	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
