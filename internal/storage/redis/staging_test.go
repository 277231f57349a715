package redis

// Интеграционные тесты временного хранилища изображений (staging.go):
// — поднимают реальный Redis через testcontainers-go (образ redis:7-alpine);
// — проверяют:
//    Put/Get: round-trip записи, генерацию уникальных tempID;
//    TTL: запись исчезает после истечения (ErrNotFoundStaged);
//    Delete: идемпотентность и single-use семантику;
//    Get: ErrNotFoundStaged на неизвестный tempID.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/redis -v -race -count=1

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/chat-profile-service/internal/models"
	"github.com/pribylovaa/chat-profile-service/internal/storage"
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

func newStaging(t *testing.T, ttl time.Duration) *StagingStorage {
	t.Helper()

	st, err := New(context.Background(), startRedis(t), "temp_image:", ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func TestIntegration_Staging_PutGetRoundTrip(t *testing.T) {
	st := newStaging(t, time.Minute)

	staged := &models.StagedImage{
		Owner:     "alice",
		Data:      []byte{0xff, 0xd8, 0xff, 0x01, 0x02},
		Width:     40,
		Height:    30,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	tempID, err := st.Put(context.Background(), staged)
	require.NoError(t, err)
	require.NotEmpty(t, tempID)

	got, err := st.Get(context.Background(), tempID)
	require.NoError(t, err)
	require.Equal(t, tempID, got.TempID)
	require.Equal(t, staged.Owner, got.Owner)
	require.Equal(t, staged.Data, got.Data)
	require.Equal(t, staged.Width, got.Width)
	require.Equal(t, staged.Height, got.Height)
}

// Каждая загрузка получает независимый tempID.
func TestIntegration_Staging_IndependentIDs(t *testing.T) {
	st := newStaging(t, time.Minute)

	staged := &models.StagedImage{Owner: "alice", Data: []byte{1}}

	first, err := st.Put(context.Background(), staged)
	require.NoError(t, err)
	second, err := st.Put(context.Background(), staged)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, err = st.Get(context.Background(), first)
	require.NoError(t, err)
	_, err = st.Get(context.Background(), second)
	require.NoError(t, err)
}

func TestIntegration_Staging_TTLExpiry(t *testing.T) {
	st := newStaging(t, time.Second)

	tempID, err := st.Put(context.Background(), &models.StagedImage{Owner: "alice", Data: []byte{1}})
	require.NoError(t, err)

	_, err = st.Get(context.Background(), tempID)
	require.NoError(t, err)

	time.Sleep(1500 * time.Millisecond)

	_, err = st.Get(context.Background(), tempID)
	require.ErrorIs(t, err, storage.ErrNotFoundStaged)
}

func TestIntegration_Staging_GetUnknown(t *testing.T) {
	st := newStaging(t, time.Minute)

	_, err := st.Get(context.Background(), "no-such-id")
	require.ErrorIs(t, err, storage.ErrNotFoundStaged)
}

func TestIntegration_Staging_DeleteIdempotent(t *testing.T) {
	st := newStaging(t, time.Minute)

	tempID, err := st.Put(context.Background(), &models.StagedImage{Owner: "alice", Data: []byte{1}})
	require.NoError(t, err)

	require.NoError(t, st.Delete(context.Background(), tempID))

	_, err = st.Get(context.Background(), tempID)
	require.ErrorIs(t, err, storage.ErrNotFoundStaged)

	// Повторное удаление — не ошибка.
	require.NoError(t, st.Delete(context.Background(), tempID))
}
