package models

import (
	"math"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	VisibilityPublic    = "public"
	VisibilityFollowers = "followers"
	VisibilityPrivate   = "private"
)

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	DisplayName  *string   `json:"displayName" db:"display_name"`
	Bio          *string   `json:"bio" db:"bio"`
	AvatarURL    *string   `json:"avatarUrl" db:"avatar_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Profile is a user together with follow counters.
type Profile struct {
	User
	FollowerCount  int `json:"followerCount" db:"follower_count"`
	FollowingCount int `json:"followingCount" db:"following_count"`
}

type RefreshToken struct {
	TokenID   string     `json:"tokenId" db:"token_id"`
	UserID    string     `json:"userId" db:"user_id"`
	Token     string     `json:"-" db:"token"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time  `json:"expiresAt" db:"expires_at"`
	RevokedAt *time.Time `json:"revokedAt" db:"revoked_at"`
}

func (t *RefreshToken) Active(now time.Time) bool {
	return t != nil && t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

type Post struct {
	PostID        string    `json:"postId" db:"post_id"`
	AuthorID      string    `json:"authorId" db:"author_id"`
	Title         *string   `json:"title" db:"title"`
	Content       string    `json:"content" db:"content"`
	ImageURL      *string   `json:"imageUrl" db:"image_url"`
	Visibility    string    `json:"visibility" db:"visibility"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
	LikesCount    int       `json:"likesCount" db:"likes_count"`
	CommentsCount int       `json:"commentsCount" db:"comments_count"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Like struct {
	LikeID    string    `json:"likeId" db:"like_id"`
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Follow struct {
	FollowerID  string    `json:"followerId" db:"follower_id"`
	FollowingID string    `json:"followingId" db:"following_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// PostFilter narrows the public post listing.
type PostFilter struct {
	Username string
	Search   string
	Page     int
	Limit    int
}

func (f PostFilter) Offset() int {
	return Offset(f.Page, f.Limit)
}

// SchemaTables are the tables created by the migrations.
var SchemaTables = []string{"users", "refresh_tokens", "follows", "posts", "comments", "likes"}

type SchemaStatus struct {
	CountTables   int      `json:"countTables"`
	MissingTables []string `json:"missingTables,omitempty"`
}

func (s SchemaStatus) Ready() bool {
	return len(s.MissingTables) == 0
}

// Offset saturates at math.MaxInt instead of overflowing.
func Offset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

func ValidVisibility(v string) bool {
	switch v {
	case VisibilityPublic, VisibilityFollowers, VisibilityPrivate:
		return true
	}
	return false
}
