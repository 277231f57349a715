// cache реализует read-through кэш профилей поверх Redis.
//
// Кэш строго консультативный: промах или рассинхронизация никогда не приводят
// к некорректной записи. Все пути записи профиля инвалидируют запись (delete),
// и только путь чтения наполняет кэш. Ошибки кэша вызывающий логирует и глотает.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/pribylovaa/chat-profile-service/internal/models"
)

// ProfileCache — минимальный контракт кэша профилей.
type ProfileCache interface {
	// Get возвращает запись и признак её наличия в кэше.
	// Любое отклонение формата закэшированного payload — промах, не ошибка.
	Get(ctx context.Context, username string) (*models.Profile, bool, error)
	// Set сохраняет проекцию профиля с TTL кэша.
	Set(ctx context.Context, profile *models.Profile) error
	// Invalidate удаляет запись; идемпотентен.
	Invalidate(ctx context.Context, username string) error
	// Ping проверяет доступность Redis (используется /health).
	Ping(ctx context.Context) error
	// Close закрывает клиент Redis.
	Close() error
}

// entry — строгая схема сериализации кэш-записи.
// Pointer-поля позволяют отличить отсутствующее поле от пустого значения:
// частично сформированный payload (старая схема, чужая запись) даёт промах,
// изолируя эволюцию формата кэша от схемы репозитория.
type entry struct {
	Username           *string    `json:"username"`
	Bio                *string    `json:"bio"`
	ProfilePicturePath *string    `json:"profile_picture_path"`
	CreatedAt          *time.Time `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}

func (e *entry) complete() bool {
	return e.Username != nil && e.Bio != nil && e.ProfilePicturePath != nil &&
		e.CreatedAt != nil && e.UpdatedAt != nil
}

type redisCache struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache создаёт клиент Redis из URL с fail-fast проверкой соединения.
// Если prefix пустой — используется "profile:".
func NewRedisCache(ctx context.Context, redisURL, prefix string, ttl time.Duration) (ProfileCache, error) {
	const op = "cache/NewRedisCache"

	if prefix == "" {
		prefix = "profile:"
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

	return &redisCache{rdb: rdb, prefix: prefix, ttl: ttl}, nil
}

func (c *redisCache) key(username string) string { return c.prefix + username }

func (c *redisCache) Get(ctx context.Context, username string) (*models.Profile, bool, error) {
	const op = "cache/Get"

	payload, err := c.rdb.Get(ctx, c.key(username)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var e entry
	if err := json.Unmarshal(payload, &e); err != nil || !e.complete() {
		// Неполный/чужой payload — промах; репозиторий остаётся источником истины.
		return nil, false, nil
	}

	return &models.Profile{
		Username:           *e.Username,
		Bio:                *e.Bio,
		ProfilePicturePath: *e.ProfilePicturePath,
		CreatedAt:          *e.CreatedAt,
		UpdatedAt:          *e.UpdatedAt,
	}, true, nil
}

func (c *redisCache) Set(ctx context.Context, profile *models.Profile) error {
	const op = "cache/Set"

	e := entry{
		Username:           &profile.Username,
		Bio:                &profile.Bio,
		ProfilePicturePath: &profile.ProfilePicturePath,
		CreatedAt:          &profile.CreatedAt,
		UpdatedAt:          &profile.UpdatedAt,
	}

	payload, err := json.Marshal(&e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.rdb.Set(ctx, c.key(profile.Username), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *redisCache) Invalidate(ctx context.Context, username string) error {
	const op = "cache/Invalidate"

	if err := c.rdb.Del(ctx, c.key(username)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }
