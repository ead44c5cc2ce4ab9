package storage

import (
	"context"
	"fmt"
	"io"

	"socialnet/internal/config"
)

// Storage keeps post images and hands back the URL clients load them from.
type Storage interface {
	UploadImage(ctx context.Context, fileName string, file io.Reader, size int64, contentType string) (string, error)
	DeleteImage(ctx context.Context, imageURL string) error
}

// New picks the backend named by STORAGE_BACKEND.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageLocal, "":
		return NewLocalStorage(cfg.UploadDir)
	case config.StorageMinIO:
		return NewMinIOClient(ctx, cfg.MinIO)
	default:
		return nil, fmt.Errorf("неизвестное хранилище: %s", cfg.StorageBackend)
	}
}
