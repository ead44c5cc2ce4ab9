package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"socialnet/internal/cache"
	"socialnet/internal/config"
	"socialnet/internal/database"
	"socialnet/internal/events"
	handlers "socialnet/internal/handler"
	"socialnet/internal/repository"
	"socialnet/internal/service"
	"socialnet/internal/storage"
)

type Application struct {
	DB        *database.DB
	Services  *service.Service
	Handler   http.Handler
	blacklist cache.TokenBlacklist
	publisher events.Publisher
}

func App(ctx context.Context, cfg *config.Config) (*Application, error) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("не удалось инициализировать хранилище: %w", err)
	}

	blacklist, err := cache.NewBlacklist(ctx, cfg.Redis)
	if err != nil {
		// logout still revokes refresh tokens without Redis
		log.Printf("Внимание: Redis недоступен, чёрный список токенов отключен: %v", err)
		blacklist = cache.NopBlacklist{}
	}

	publisher, err := events.NewPublisher(cfg.NATS)
	if err != nil {
		log.Printf("Внимание: NATS недоступен, события не публикуются: %v", err)
		publisher = events.NopPublisher{}
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, store, blacklist, publisher)
	h := handlers.NewHandlers(services, cfg)

	uploadDir := ""
	if local, ok := store.(*storage.LocalStorage); ok {
		uploadDir = local.Dir()
	}

	return &Application{
		DB:        db,
		Services:  services,
		Handler:   NewRouter(h, services.Auth, uploadDir),
		blacklist: blacklist,
		publisher: publisher,
	}, nil
}

func (a *Application) Close() {
	a.publisher.Close()

	if err := a.blacklist.Close(); err != nil {
		log.Printf("Ошибка при закрытии Redis: %v", err)
	}

	if err := a.DB.CloseDB(); err != nil {
		log.Printf("Ошибка при закрытии БД: %v", err)
	}
}
