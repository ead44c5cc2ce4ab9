package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"socialnet/internal/repository"
)

var (
	ErrValidation   = errors.New("ошибка валидации")
	ErrConflict     = errors.New("конфликт данных")
	ErrUnauthorized = errors.New("требуется аутентификация")
	ErrForbidden    = errors.New("доступ запрещен")
	ErrNotFound     = errors.New("не найдено")

	ErrSelfFollow   = errors.New("нельзя подписаться на самого себя")
	ErrNotFollowing = errors.New("вы не подписаны на этого пользователя")
	ErrNotLiked     = errors.New("вы не ставили лайк этому посту")
)

// notFound translates repository.ErrNotFound into the service sentinel and
// leaves every other error as it is.
func notFound(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

// checkID rejects ids that can never exist so that malformed path
// parameters answer 404 instead of reaching the database.
func checkID(id, what string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
