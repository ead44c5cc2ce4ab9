package service

import (
	"context"
	"errors"
	"time"

	"socialnet/internal/events"
	"socialnet/internal/models"
	"socialnet/internal/repository"
)

type LikeService interface {
	LikePost(ctx context.Context, postID, userID string) (bool, error)
	UnlikePost(ctx context.Context, postID, userID string) error
	ListLikers(ctx context.Context, postID string) ([]*models.User, error)
}

type likeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
	events   events.Publisher
}

func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository, publisher events.Publisher) LikeService {
	return &likeService{
		likeRepo: likeRepo,
		postRepo: postRepo,
		events:   publisher,
	}
}

func (s *likeService) ensurePost(ctx context.Context, postID string) error {
	if err := checkID(postID, "пост"); err != nil {
		return err
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return notFound(err, "пост")
	}

	return nil
}

// LikePost reports whether a new like was stored. A second like by the same
// user changes nothing and returns false.
func (s *likeService) LikePost(ctx context.Context, postID, userID string) (bool, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return false, err
	}

	created, err := s.likeRepo.Create(ctx, postID, userID)
	if err != nil {
		return false, notFound(err, "пост")
	}

	if created {
		publish(s.events, events.PostLiked, events.LikeEvent{
			PostID:     postID,
			UserID:     userID,
			OccurredAt: time.Now().UTC(),
		})
	}

	return created, nil
}

func (s *likeService) UnlikePost(ctx context.Context, postID, userID string) error {
	if err := s.ensurePost(ctx, postID); err != nil {
		return err
	}

	err := s.likeRepo.Delete(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotLiked
		}
		return err
	}

	return nil
}

func (s *likeService) ListLikers(ctx context.Context, postID string) ([]*models.User, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	return s.likeRepo.ListLikers(ctx, postID)
}
