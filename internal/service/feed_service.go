package service

import (
	"context"

	"socialnet/internal/models"
	"socialnet/internal/repository"
)

type FeedService interface {
	GetFeed(ctx context.Context, viewerID string, page, limit int) ([]*models.Post, error)
}

type feedService struct {
	feedRepo   repository.FeedRepository
	followRepo repository.FollowRepository
}

func NewFeedService(feedRepo repository.FeedRepository, followRepo repository.FollowRepository) FeedService {
	return &feedService{
		feedRepo:   feedRepo,
		followRepo: followRepo,
	}
}

// GetFeed returns posts of the viewer and everyone they follow, newest
// first. Other people's private posts never show up.
func (s *feedService) GetFeed(ctx context.Context, viewerID string, page, limit int) ([]*models.Post, error) {
	authorIDs, err := s.followRepo.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	authorIDs = append(authorIDs, viewerID)

	return s.feedRepo.GetFeed(ctx, viewerID, authorIDs, limit, models.Offset(page, limit))
}
