package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/chat-profile-service/internal/models"
)

// ErrNotFoundStaged — запись отсутствует ЛИБО истёк её TTL.
// Вызывающий намеренно не может различить эти случаи.
var ErrNotFoundStaged = errors.New("not found")

// Staging — контракт временного хранилища загруженных изображений.
// Записи именуются случайным id с пренебрежимой вероятностью коллизии,
// поэтому блокировки не нужны: один id — максимум одна логическая загрузка.
type Staging interface {
	// Put генерирует свежий tempID и сохраняет изображение с TTL стейджинга.
	Put(ctx context.Context, staged *models.StagedImage) (string, error)
	// Get возвращает запись по tempID; ErrNotFoundStaged на отсутствие/истечение.
	Get(ctx context.Context, tempID string) (*models.StagedImage, error)
	// Delete удаляет запись; идемпотентен (отсутствие — не ошибка).
	Delete(ctx context.Context, tempID string) error
}

// StagingStorage — алиас-обёртка для внедрения зависимости.
type StagingStorage interface {
	Staging
	Close() error
}
