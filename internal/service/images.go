package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/chat-profile-service/internal/imaging"
	"github.com/pribylovaa/chat-profile-service/internal/models"
	"github.com/pribylovaa/chat-profile-service/internal/storage"
	"github.com/pribylovaa/chat-profile-service/pkg/log"
)

// UploadResult — итог стейджинга загруженного изображения.
type UploadResult struct {
	TempID     string
	Width      int
	Height     int
	PreviewURL string
}

// ProcessImageInput — вход операции commit.
type ProcessImageInput struct {
	// Username — запрашивающий пользователь; должен совпадать с владельцем staging-записи.
	Username string
	TempID   string
	// Crop — необязательное кадрирование в координатах исходного изображения.
	Crop *models.CropRect
}

// cleanupTimeout — бюджет post-commit шагов (удаление старого файла,
// инвалидация кэша, удаление staging-записи), отвязанных от контекста запроса.
const cleanupTimeout = 5 * time.Second

// UploadTempImage валидирует и стейджит загруженное изображение.
//
// Конвейер: decode+validate -> нормализация RGB -> JPEG высокого качества ->
// staging c TTL. Долговременного изменения профиля НЕ происходит.
// Повторная загрузка при живой прежней staging-записи допустима: каждая
// загрузка получает независимый tempID, осиротевшие записи истекают по TTL.
//
// Ошибки: ErrInvalidImage на битый/посторонний вход; ErrUnavailable на сбой staging.
func (s *Service) UploadTempImage(ctx context.Context, owner string, raw []byte) (*UploadResult, error) {
	const op = "service/images/UploadTempImage"

	lg := log.From(ctx).With("op", op, "username", owner)

	owner = strings.TrimSpace(owner)
	if owner == "" {
		lg.Warn("invalid argument: empty owner")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if len(raw) == 0 {
		lg.Warn("empty upload body")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidImage)
	}

	img, err := s.proc.DecodeAndValidate(ctx, raw)
	if err != nil {
		if errors.Is(err, imaging.ErrInvalidImage) {
			lg.Warn("upload rejected: not a valid image")

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidImage)
		}

		lg.Error("decode failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	preview, err := s.proc.Encode(ctx, img, s.cfg.Image.PreviewQuality)
	if err != nil {
		lg.Error("preview encode failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	staged := &models.StagedImage{
		Owner:     owner,
		Data:      preview,
		Width:     img.Width(),
		Height:    img.Height(),
		CreatedAt: time.Now().UTC(),
	}

	tempID, err := s.staging.Put(ctx, staged)
	if err != nil {
		lg.Error("staging put failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	lg.Info("image staged", "temp_id", tempID, "width", staged.Width, "height", staged.Height)

	return &UploadResult{
		TempID:     tempID,
		Width:      staged.Width,
		Height:     staged.Height,
		PreviewURL: "/temp-image/" + tempID,
	}, nil
}

// TempImageBytes возвращает staged-изображение для предпросмотра.
// Ошибки: ErrNotFound — запись отсутствует либо истекла (неразличимо).
func (s *Service) TempImageBytes(ctx context.Context, tempID string) ([]byte, error) {
	const op = "service/images/TempImageBytes"

	lg := log.From(ctx).With("op", op, "temp_id", tempID)

	tempID = strings.TrimSpace(tempID)
	if tempID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	staged, err := s.staging.Get(ctx, tempID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFoundStaged) {
			lg.Warn("staged image not found or expired")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("staging get failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	return staged.Data, nil
}

// ProcessImage — commit двухфазной загрузки (Staged -> Committed).
//
// Порядок:
//  1. чтение staging-записи (отсутствие/истечение -> ErrNotFound);
//  2. проверка владельца ДО какой-либо обработки (чужой tempID -> ErrForbidden);
//  3. необязательное кадрирование (выход за границы -> ErrInvalidCropRegion);
//  4. обязательный ресайз к финальному размеру и кодирование stored-качеством;
//  5. запись в файловое хранилище под СВЕЖИМ именем (имена не переиспользуются);
//  6. транзакционный апдейт строки профиля; при сбое свежезаписанный файл
//     best-effort удаляется — прежние строка и файл остаются нетронутыми;
//  7. после фиксации: best-effort удаление старого файла, инвалидация кэша,
//     удаление staging-записи (single-use: повторный commit -> ErrNotFound).
//
// Пер-username блокировки нет: конкурентные commit'ы одного пользователя
// соревнуются на уровне БД (last-write-wins), проигравший файл осиротевает.
func (s *Service) ProcessImage(ctx context.Context, input ProcessImageInput) (*models.Profile, error) {
	const op = "service/images/ProcessImage"

	lg := log.From(ctx).With("op", op, "username", input.Username, "temp_id", input.TempID)

	input.Username = strings.TrimSpace(input.Username)
	input.TempID = strings.TrimSpace(input.TempID)
	if input.Username == "" || input.TempID == "" {
		lg.Warn("invalid argument: empty username or temp_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	staged, err := s.staging.Get(ctx, input.TempID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFoundStaged) {
			lg.Warn("staged image not found or expired")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("staging get failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	if staged.Owner != input.Username {
		lg.Warn("commit rejected: staged image belongs to different user", "owner", staged.Owner)

		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	img, err := s.proc.DecodeAndValidate(ctx, staged.Data)
	if err != nil {
		// Payload уже проходил валидацию при загрузке; сбой здесь — не вина клиента.
		lg.Error("staged payload decode failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if input.Crop != nil {
		img, err = s.proc.Crop(img, input.Crop.X, input.Crop.Y, input.Crop.Width, input.Crop.Height)
		if err != nil {
			lg.Warn("crop rejected", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCropRegion)
		}
	}

	img, err = s.proc.Resize(ctx, img)
	if err != nil {
		lg.Error("resize failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	final, err := s.proc.Encode(ctx, img, s.cfg.Image.StoredQuality)
	if err != nil {
		lg.Error("final encode failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	key := "profiles/" + uuid.NewString() + ".jpg"

	path, err := s.files.Save(ctx, key, final, "image/jpeg")
	if err != nil {
		lg.Error("file save failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	profile, prevPath, err := s.profilesStorage.SetProfilePicture(ctx, input.Username, path)
	if err != nil {
		lg.Error("storage error on SetProfilePicture", "err", err)

		// Строка профиля не изменилась; подчищаем свежезаписанный файл,
		// чтобы не копить объекты, на которые никто не ссылается.
		cleanCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
		if rmErr := s.files.Remove(cleanCtx, key); rmErr != nil {
			lg.Warn("orphan cleanup failed", "key", key, "err", rmErr)
		}
		cancel()

		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	// Транзакция зафиксирована: дальше только best-effort шаги,
	// отвязанные от отмены клиентского контекста.
	postCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if prevPath != "" && prevPath != path {
		if prevKey := s.files.KeyFromPath(prevPath); prevKey != "" {
			if err := s.files.Remove(postCtx, prevKey); err != nil {
				lg.Warn("previous picture delete failed", "key", prevKey, "err", err)
			}
		}
	}

	if err := s.cache.Invalidate(postCtx, input.Username); err != nil {
		lg.Warn("cache invalidate failed", "err", err)
	}

	if err := s.staging.Delete(postCtx, input.TempID); err != nil {
		lg.Warn("staging delete failed", "err", err)
	}

	s.metrics.ImagesProcessed.Inc()

	lg.Info("profile picture committed", "path", path)

	return profile, nil
}
