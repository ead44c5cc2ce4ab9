package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalURLPrefix is where the HTTP server exposes the upload directory.
const LocalURLPrefix = "/uploads/"

type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать каталог загрузок %s: %w", dir, err)
	}

	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) UploadImage(ctx context.Context, fileName string, file io.Reader, size int64, contentType string) (string, error) {
	name := filepath.Base(fileName)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("неверное имя файла: %q", fileName)
	}

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("ошибка создания файла: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, file)
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("ошибка записи файла: %w", err)
	}

	if size > 0 && written != size {
		os.Remove(f.Name())
		return "", fmt.Errorf("записано %d байт из %d", written, size)
	}

	return LocalURLPrefix + name, nil
}

// DeleteImage removes a file previously returned by UploadImage. A missing
// file is not an error.
func (s *LocalStorage) DeleteImage(ctx context.Context, imageURL string) error {
	name, ok := strings.CutPrefix(imageURL, LocalURLPrefix)
	if !ok || name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("неверный URL изображения: %s", imageURL)
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("ошибка удаления файла: %w", err)
	}

	return nil
}
