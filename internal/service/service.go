package service

import (
	"log"

	"socialnet/internal/cache"
	"socialnet/internal/config"
	"socialnet/internal/events"
	"socialnet/internal/models"
	"socialnet/internal/repository"
	"socialnet/internal/storage"
)

// Actor is the authenticated caller of a mutating operation.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanModify reports whether the actor owns the resource or is an admin.
func (a Actor) CanModify(ownerID string) bool {
	return a.UserID == ownerID || a.IsAdmin()
}

type Service struct {
	User    UserService
	Post    PostService
	Comment CommentService
	Like    LikeService
	Feed    FeedService
	Auth    AuthService
	Tables  TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, blacklist cache.TokenBlacklist, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	return &Service{
		User:    NewUserService(rep.User, rep.Follow, publisher),
		Post:    NewPostService(rep.Post, storage, publisher, cfg),
		Comment: NewCommentService(rep.Comment, rep.Post, publisher),
		Like:    NewLikeService(rep.Like, rep.Post, publisher),
		Feed:    NewFeedService(rep.Feed, rep.Follow),
		Auth:    NewAuthService(rep.User, rep.Token, blacklist, cfg),
		Tables:  NewTablesService(rep.Tables),
	}
}

func publish(publisher events.Publisher, subject string, event any) {
	if err := publisher.Publish(subject, event); err != nil {
		log.Printf("Предупреждение: событие %s не опубликовано: %v", subject, err)
	}
}
