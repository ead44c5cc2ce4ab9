package events

import "time"

const (
	PostCreated    = "socialnet.post.created"
	PostDeleted    = "socialnet.post.deleted"
	CommentCreated = "socialnet.comment.created"
	PostLiked      = "socialnet.post.liked"
	UserFollowed   = "socialnet.user.followed"
)

type PostEvent struct {
	PostID     string    `json:"postId"`
	AuthorID   string    `json:"authorId"`
	Visibility string    `json:"visibility,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type CommentEvent struct {
	CommentID  string    `json:"commentId"`
	PostID     string    `json:"postId"`
	AuthorID   string    `json:"authorId"`
	OccurredAt time.Time `json:"occurredAt"`
}

type LikeEvent struct {
	PostID     string    `json:"postId"`
	UserID     string    `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
}

type FollowEvent struct {
	FollowerID  string    `json:"followerId"`
	FollowingID string    `json:"followingId"`
	OccurredAt  time.Time `json:"occurredAt"`
}
