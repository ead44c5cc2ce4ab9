package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"socialnet/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	VerifyPassword(ctx context.Context, identifier, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	GetProfile(ctx context.Context, username string) (*models.Profile, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
}

type TokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetLatestNotRevoked(ctx context.Context, userID string) (*models.RefreshToken, error)
	GetByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, tokenID string, at time.Time) error
}

type FollowRepository interface {
	Follow(ctx context.Context, followerID, followingID string) (bool, error)
	Unfollow(ctx context.Context, followerID, followingID string) error
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	FollowingIDs(ctx context.Context, userID string) ([]string, error)
	ListFollowers(ctx context.Context, userID string, limit, offset int) ([]*models.User, error)
	ListFollowing(ctx context.Context, userID string, limit, offset int) ([]*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	ListPublic(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID string, limit, offset int) ([]*models.Comment, error)
	Delete(ctx context.Context, commentID string) error
}

type LikeRepository interface {
	Create(ctx context.Context, postID, userID string) (bool, error)
	Delete(ctx context.Context, postID, userID string) error
	ListLikers(ctx context.Context, postID string) ([]*models.User, error)
}

type FeedRepository interface {
	GetFeed(ctx context.Context, viewerID string, authorIDs []string, limit, offset int) ([]*models.Post, error)
}

type TablesRepository interface {
	ListTables(ctx context.Context) ([]string, error)
}

type Repository struct {
	User    UserRepository
	Token   TokenRepository
	Follow  FollowRepository
	Post    PostRepository
	Comment CommentRepository
	Like    LikeRepository
	Feed    FeedRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Token:   NewTokenRepository(db),
		Follow:  NewFollowRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Like:    NewLikeRepository(db),
		Feed:    NewFeedRepository(db),
		Tables:  NewTablesRepository(db),
	}
}
