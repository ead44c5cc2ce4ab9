package handlers

import (
	"github.com/go-playground/validator/v10"

	"socialnet/internal/config"
	"socialnet/internal/service"
)

type Handlers struct {
	UserService    service.UserService
	AuthService    service.AuthService
	PostService    service.PostService
	CommentService service.CommentService
	LikeService    service.LikeService
	FeedService    service.FeedService
	TablesService  service.TablesService
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		UserService:    service.User,
		AuthService:    service.Auth,
		PostService:    service.Post,
		CommentService: service.Comment,
		LikeService:    service.Like,
		FeedService:    service.Feed,
		TablesService:  service.Tables,
		Cfg:            config,
		Validate:       validator.New(),
	}
}
