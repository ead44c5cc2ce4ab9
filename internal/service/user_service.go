package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"socialnet/internal/events"
	"socialnet/internal/models"
	"socialnet/internal/repository"
)

type UserService interface {
	GetProfile(ctx context.Context, username string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, req repository.UpdateProfileRequest) (*models.User, error)
	ListUsers(ctx context.Context, page, limit int) ([]*models.User, error)
	Follow(ctx context.Context, followerID, username string) (bool, error)
	Unfollow(ctx context.Context, followerID, username string) error
	ListFollowers(ctx context.Context, username string, page, limit int) ([]*models.User, error)
	ListFollowing(ctx context.Context, username string, page, limit int) ([]*models.User, error)
}

type userService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	events     events.Publisher
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository, publisher events.Publisher) UserService {
	return &userService{
		userRepo:   userRepo,
		followRepo: followRepo,
		events:     publisher,
	}
}

func (s *userService) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	profile, err := s.userRepo.GetProfile(ctx, username)
	if err != nil {
		return nil, notFound(err, "пользователь "+username)
	}

	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, req repository.UpdateProfileRequest) (*models.User, error) {
	// get user by id
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, notFound(err, "пользователь")
	}

	if req.DisplayName != nil {
		user.DisplayName = req.DisplayName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, notFound(err, "пользователь")
	}

	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]*models.User, error) {
	return s.userRepo.ListUsers(ctx, limit, models.Offset(page, limit))
}

// Follow reports whether a new follow was created; following someone twice
// is not an error.
func (s *userService) Follow(ctx context.Context, followerID, username string) (bool, error) {
	target, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return false, notFound(err, "пользователь "+username)
	}

	if target.UserID == followerID {
		return false, ErrSelfFollow
	}

	created, err := s.followRepo.Follow(ctx, followerID, target.UserID)
	if err != nil {
		return false, notFound(err, "пользователь "+username)
	}

	if created {
		publish(s.events, events.UserFollowed, events.FollowEvent{
			FollowerID:  followerID,
			FollowingID: target.UserID,
			OccurredAt:  time.Now().UTC(),
		})
	}

	return created, nil
}

func (s *userService) Unfollow(ctx context.Context, followerID, username string) error {
	target, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return notFound(err, "пользователь "+username)
	}

	err = s.followRepo.Unfollow(ctx, followerID, target.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFollowing
		}
		return fmt.Errorf("ошибка при отписке: %w", err)
	}

	return nil
}

func (s *userService) ListFollowers(ctx context.Context, username string, page, limit int) ([]*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "пользователь "+username)
	}

	return s.followRepo.ListFollowers(ctx, user.UserID, limit, models.Offset(page, limit))
}

func (s *userService) ListFollowing(ctx context.Context, username string, page, limit int) ([]*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "пользователь "+username)
	}

	return s.followRepo.ListFollowing(ctx, user.UserID, limit, models.Offset(page, limit))
}
