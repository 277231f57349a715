// redis предоставляет реализацию storage.StagingStorage на базе Redis.
// Записи живут под ключами "<prefix><tempID>" с TTL стейджинга; истечение TTL
// обрабатывается самим Redis — сервис не выполняет явной очистки.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/pribylovaa/chat-profile-service/internal/models"
	"github.com/pribylovaa/chat-profile-service/internal/storage"
)

// StagingStorage — адаптер Redis для временных изображений.
type StagingStorage struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0)
// с fail-fast проверкой соединения. Если prefix пустой — используется "temp_image:".
func New(ctx context.Context, redisURL, prefix string, ttl time.Duration) (*StagingStorage, error) {
	const op = "storage/redis/New"

	if prefix == "" {
		prefix = "temp_image:"
	}

	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := goredis.NewClient(opt)

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &StagingStorage{rdb: rdb, prefix: prefix, ttl: ttl}, nil
}

func (s *StagingStorage) key(tempID string) string { return s.prefix + tempID }

// Put сохраняет изображение под свежим uuid с TTL стейджинга.
// Одна атомарная запись: частично загруженный запрос не оставляет мусора.
func (s *StagingStorage) Put(ctx context.Context, staged *models.StagedImage) (string, error) {
	const op = "storage/redis/staging/Put"

	payload, err := json.Marshal(staged)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	tempID := uuid.NewString()
	if err := s.rdb.Set(ctx, s.key(tempID), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return tempID, nil
}

// Get возвращает запись по tempID.
// Ошибки: storage.ErrNotFoundStaged — и для несуществующих, и для истёкших ключей.
func (s *StagingStorage) Get(ctx context.Context, tempID string) (*models.StagedImage, error) {
	const op = "storage/redis/staging/Get"

	payload, err := s.rdb.Get(ctx, s.key(tempID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundStaged)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var staged models.StagedImage
	if err := json.Unmarshal(payload, &staged); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	staged.TempID = tempID

	return &staged, nil
}

// Delete удаляет запись; идемпотентен (DEL отсутствующего ключа — не ошибка).
func (s *StagingStorage) Delete(ctx context.Context, tempID string) error {
	const op = "storage/redis/staging/Delete"

	if err := s.rdb.Del(ctx, s.key(tempID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Ping проверяет доступность Redis (используется /health).
func (s *StagingStorage) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close закрывает клиент Redis.
func (s *StagingStorage) Close() error { return s.rdb.Close() }

// Проверка выполнения контракта верхнего уровня.
var _ storage.StagingStorage = (*StagingStorage)(nil)
