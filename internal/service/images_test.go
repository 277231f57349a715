package service

// Тесты пайплайна изображений (internal/service/images.go).
//
//  Проверяем:
//  - Staged: отказ на битый вход, независимые tempID, превью в staging;
//  - предпросмотр: ErrNotFound на отсутствие/истечение записи;
//  - Commit: владелец проверяется до обработки, границы кадрирования,
//    компенсация при сбое фиксации (удаление свежего файла),
//    post-commit шаги (старый файл, кэш, staging) и их best-effort природа.
//
// Подготовка окружения:
//   go test ./internal/service -v -race -count=1

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/chat-profile-service/internal/models"
	"github.com/pribylovaa/chat-profile-service/internal/storage"
)

// testJPEG собирает валидный JPEG заданных размеров.
func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h)), nil))

	return buf.Bytes()
}

func stagedFor(t *testing.T, owner string, w, h int) *models.StagedImage {
	t.Helper()

	return &models.StagedImage{
		TempID:    "temp-1",
		Owner:     owner,
		Data:      testJPEG(t, w, h),
		Width:     w,
		Height:    h,
		CreatedAt: time.Now().UTC(),
	}
}

func TestService_UploadTempImage_InvalidArgument(t *testing.T) {
	s, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	_, err := s.UploadTempImage(context.Background(), "  ", testJPEG(t, 8, 8))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestService_UploadTempImage_InvalidImage(t *testing.T) {
	s, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	_, err := s.UploadTempImage(context.Background(), "alice", []byte("not an image"))
	require.ErrorIs(t, err, ErrInvalidImage)

	_, err = s.UploadTempImage(context.Background(), "alice", nil)
	require.ErrorIs(t, err, ErrInvalidImage)
}

// Happy-path: в staging уходит перекодированное превью с владельцем и размерами.
func TestService_UploadTempImage_OK(t *testing.T) {
	s, sm, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	var captured *models.StagedImage
	sm.staging.EXPECT().
		Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, staged *models.StagedImage) (string, error) {
			captured = staged
			return "temp-1", nil
		})

	result, err := s.UploadTempImage(context.Background(), "alice", testJPEG(t, 40, 30))
	require.NoError(t, err)
	require.Equal(t, "temp-1", result.TempID)
	require.Equal(t, 40, result.Width)
	require.Equal(t, 30, result.Height)
	require.Equal(t, "/temp-image/temp-1", result.PreviewURL)

	require.NotNil(t, captured)
	require.Equal(t, "alice", captured.Owner)
	require.Equal(t, 40, captured.Width)
	require.Equal(t, 30, captured.Height)

	// Превью — декодируемый JPEG исходных размеров.
	decoded, _, err := image.Decode(bytes.NewReader(captured.Data))
	require.NoError(t, err)
	require.Equal(t, 40, decoded.Bounds().Dx())
	require.Equal(t, 30, decoded.Bounds().Dy())
}

func TestService_UploadTempImage_StagingError(t *testing.T) {
	s, sm, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	sm.staging.EXPECT().Put(gomock.Any(), gomock.Any()).Return("", errors.New("redis down"))

	_, err := s.UploadTempImage(context.Background(), "alice", testJPEG(t, 8, 8))
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestService_TempImageBytes_NotFound(t *testing.T) {
	s, sm, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	sm.staging.EXPECT().Get(gomock.Any(), "temp-1").Return(nil, storage.ErrNotFoundStaged)

	_, err := s.TempImageBytes(context.Background(), "temp-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_TempImageBytes_OK(t *testing.T) {
	s, sm, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	staged := stagedFor(t, "alice", 8, 8)
	sm.staging.EXPECT().Get(gomock.Any(), "temp-1").Return(staged, nil)

	data, err := s.TempImageBytes(context.Background(), "temp-1")
	require.NoError(t, err)
	require.Equal(t, staged.Data, data)
}

func TestService_ProcessImage_InvalidArgument(t *testing.T) {
	s, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	_, err := s.ProcessImage(context.Background(), ProcessImageInput{Username: "", TempID: "temp-1"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.ProcessImage(context.Background(), ProcessImageInput{Username: "alice", TempID: "  "})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// Отсутствие/истечение staging-записи неразличимы и дают ErrNotFound.
func TestService_ProcessImage_NotFound(t *testing.T) {
	s, sm, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	sm.staging.EXPECT().Get(gomock.Any(), "temp-1").Return(nil, storage.ErrNotFoundStaged)

	_, err := s.ProcessImage(context.Background(), ProcessImageInput{Username: "alice", TempID: "temp-1"})
	require.ErrorIs(t, err, ErrNotFound)
}

// Чужой tempID отвергается до какой-либо обработки.
func TestService_ProcessImage_Forbidden(t *testing.T) {
	s, sm, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	sm.staging.EXPECT().Get(gomock.Any(), "temp-1").Return(stagedFor(t, "bob", 8, 8), nil)

	_, err := s.ProcessImage(context.Background(), ProcessImageInput{Username: "alice", TempID: "temp-1"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestService_ProcessImage_InvalidCrop(t *testing.T) {
	s, sm, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	sm.staging.EXPECT().Get(gomock.Any(), "temp-1").Return(stagedFor(t, "alice", 40, 30), nil)

	_, err := s.ProcessImage(context.Background(), ProcessImageInput{
		Username: "alice",
		TempID:   "temp-1",
		Crop:     &models.CropRect{X: 35, Y: 0, Width: 10, Height: 10},
	})
	require.ErrorIs(t, err, ErrInvalidCropRegion)
}

func TestService_ProcessImage_FileSaveError(t *testing.T) {
	s, sm, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	sm.staging.EXPECT().Get(gomock.Any(), "temp-1").Return(stagedFor(t, "alice", 40, 30), nil)
	sm.files.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), "image/jpeg").Return("", errors.New("minio down"))

	_, err := s.ProcessImage(context.Background(), ProcessImageInput{Username: "alice", TempID: "temp-1"})
	require.ErrorIs(t, err, ErrUnavailable)
}

// Сбой фиксации в БД компенсируется удалением свежезаписанного файла.
func TestService_ProcessImage_DBFailureCleansUpFreshFile(t *testing.T) {
	s, sm, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	sm.staging.EXPECT().Get(gomock.Any(), "temp-1").Return(stagedFor(t, "alice", 40, 30), nil)

	var savedKey string
	sm.files.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), "image/jpeg").
		DoAndReturn(func(_ context.Context, key string, _ []byte, _ string) (string, error) {
			savedKey = key
			return "/uploads/" + key, nil
		})
	sm.profiles.EXPECT().
		SetProfilePicture(gomock.Any(), "alice", gomock.Any()).
		Return(nil, "", errors.New("pg down"))
	sm.files.EXPECT().
		Remove(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string) error {
			require.Equal(t, savedKey, key)
			return nil
		})

	_, err := s.ProcessImage(context.Background(), ProcessImageInput{Username: "alice", TempID: "temp-1"})
	require.ErrorIs(t, err, ErrUnavailable)
}

// Happy-path без прежнего аватара: файл пишется под свежим ключом,
// после фиксации инвалидируется кэш и удаляется staging-запись.
func TestService_ProcessImage_OK_NoPrevious(t *testing.T) {
	s, sm, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	sm.staging.EXPECT().Get(gomock.Any(), "temp-1").Return(stagedFor(t, "alice", 40, 30), nil)

	var finalData []byte
	sm.files.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), "image/jpeg").
		DoAndReturn(func(_ context.Context, key string, data []byte, _ string) (string, error) {
			require.True(t, strings.HasPrefix(key, "profiles/"))
			require.True(t, strings.HasSuffix(key, ".jpg"))
			finalData = data
			return "/uploads/" + key, nil
		})

	want := mustProfile("alice")
	sm.profiles.EXPECT().
		SetProfilePicture(gomock.Any(), "alice", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, path string) (*models.Profile, string, error) {
			want.ProfilePicturePath = path
			return want, "", nil
		})
	sm.cache.EXPECT().Invalidate(gomock.Any(), "alice").Return(nil)
	sm.staging.EXPECT().Delete(gomock.Any(), "temp-1").Return(nil)

	got, err := s.ProcessImage(context.Background(), ProcessImageInput{
		Username: "alice",
		TempID:   "temp-1",
		Crop:     &models.CropRect{X: 5, Y: 5, Width: 20, Height: 20},
	})
	require.NoError(t, err)
	require.Equal(t, want, got)

	// Финальное изображение — квадрат финального размера.
	decoded, _, err := image.Decode(bytes.NewReader(finalData))
	require.NoError(t, err)
	require.Equal(t, 300, decoded.Bounds().Dx())
	require.Equal(t, 300, decoded.Bounds().Dy())
}

// Прежний файл удаляется только после фиксации; сбои post-commit шагов
// не влияют на результат операции.
func TestService_ProcessImage_OK_ReplacesPrevious(t *testing.T) {
	s, sm, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	sm.staging.EXPECT().Get(gomock.Any(), "temp-1").Return(stagedFor(t, "alice", 40, 30), nil)
	sm.files.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), "image/jpeg").
		DoAndReturn(func(_ context.Context, key string, _ []byte, _ string) (string, error) {
			return "/uploads/" + key, nil
		})

	want := mustProfile("alice")
	sm.profiles.EXPECT().
		SetProfilePicture(gomock.Any(), "alice", gomock.Any()).
		Return(want, "/uploads/profiles/old.jpg", nil)

	sm.files.EXPECT().KeyFromPath("/uploads/profiles/old.jpg").Return("profiles/old.jpg")
	sm.files.EXPECT().Remove(gomock.Any(), "profiles/old.jpg").Return(errors.New("minio down"))
	sm.cache.EXPECT().Invalidate(gomock.Any(), "alice").Return(errors.New("redis down"))
	sm.staging.EXPECT().Delete(gomock.Any(), "temp-1").Return(errors.New("redis down"))

	got, err := s.ProcessImage(context.Background(), ProcessImageInput{Username: "alice", TempID: "temp-1"})
	require.NoError(t, err)
	require.Equal(t, want, got)
}
