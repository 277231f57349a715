package cache

// Интеграционные тесты кэша профилей (cache.go):
// — поднимают реальный Redis через testcontainers-go (образ redis:7-alpine);
// — проверяют:
//    Set/Get round-trip и промах на неизвестный ключ;
//    строгую схему payload: запись с недостающим полем — промах, не ошибка;
//    Invalidate: идемпотентность;
//    TTL: запись исчезает после истечения.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/cache -v -race -count=1

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/chat-profile-service/internal/models"
)

// startRedis — поднимает Redis через testcontainers-go и возвращает URL.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startRedis(t *testing.T) string {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "docker.io/redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
		ProviderType:     tc.ProviderDocker,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "6379/tcp")

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func newCache(t *testing.T, ttl time.Duration) (ProfileCache, string) {
	t.Helper()

	url := startRedis(t)
	c, err := NewRedisCache(context.Background(), url, "profile:", ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, url
}

func sampleProfile(username string) *models.Profile {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Profile{
		Username:           username,
		Bio:                "hello",
		ProfilePicturePath: "/uploads/profiles/a.jpg",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestIntegration_Cache_SetGetRoundTrip(t *testing.T) {
	c, _ := newCache(t, time.Minute)

	want := sampleProfile("alice")
	require.NoError(t, c.Set(context.Background(), want))

	got, ok, err := c.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestIntegration_Cache_MissOnUnknown(t *testing.T) {
	c, _ := newCache(t, time.Minute)

	got, ok, err := c.Get(context.Background(), "nobody")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, got)
}

// Payload с недостающим полем (чужая/старая схема) — промах, не ошибка.
func TestIntegration_Cache_MalformedPayloadIsMiss(t *testing.T) {
	c, url := newCache(t, time.Minute)

	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)
	rdb := goredis.NewClient(opts)
	defer func() { _ = rdb.Close() }()

	// Неполная запись под ключом кэша.
	require.NoError(t, rdb.Set(context.Background(),
		"profile:alice", `{"username":"alice"}`, time.Minute).Err())

	got, ok, err := c.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, got)

	// Не-JSON тоже промах.
	require.NoError(t, rdb.Set(context.Background(),
		"profile:bob", "garbage", time.Minute).Err())

	_, ok, err = c.Get(context.Background(), "bob")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIntegration_Cache_InvalidateIdempotent(t *testing.T) {
	c, _ := newCache(t, time.Minute)

	require.NoError(t, c.Set(context.Background(), sampleProfile("alice")))
	require.NoError(t, c.Invalidate(context.Background(), "alice"))

	_, ok, err := c.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.False(t, ok)

	// Повторная инвалидация — не ошибка.
	require.NoError(t, c.Invalidate(context.Background(), "alice"))
}

func TestIntegration_Cache_TTLExpiry(t *testing.T) {
	c, _ := newCache(t, time.Second)

	require.NoError(t, c.Set(context.Background(), sampleProfile("alice")))

	_, ok, err := c.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(1500 * time.Millisecond)

	_, ok, err = c.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.False(t, ok)
}
