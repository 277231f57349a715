// service содержит бизнес-логику profile-сервиса:
// - операции над профилем (ленивое создание/чтение через кэш, апдейт био, поиск);
// - двухфазная загрузка изображения (stage с TTL -> crop/resize -> commit);
// - делегирование операций с паролем внешнему user-service.
package service

import (
	"errors"

	"github.com/pribylovaa/chat-profile-service/internal/cache"
	"github.com/pribylovaa/chat-profile-service/internal/clients/userssvc"
	"github.com/pribylovaa/chat-profile-service/internal/config"
	"github.com/pribylovaa/chat-profile-service/internal/imaging"
	"github.com/pribylovaa/chat-profile-service/internal/metrics"
	"github.com/pribylovaa/chat-profile-service/internal/storage"
)

var (
	// ErrInvalidArgument — некорректные входные данные (валидация).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidImage — вход не является корректным изображением.
	ErrInvalidImage = errors.New("invalid image")
	// ErrInvalidCropRegion — прямоугольник кадрирования вне границ.
	ErrInvalidCropRegion = errors.New("invalid crop region")
	// ErrForbidden — действующий пользователь не владелец ресурса.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound — сущность не найдена (или staging-запись истекла).
	ErrNotFound = errors.New("not found")
	// ErrWrongPassword — user-service отверг текущий пароль.
	ErrWrongPassword = errors.New("wrong password")
	// ErrUnavailable — недоступно долговременное хранилище или внешний сервис;
	// внутренних ретраев нет, ошибка отдаётся транспортному слою.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrInternal — внутренняя ошибка сервиса.
	ErrInternal = errors.New("internal")
)

// Service — описывает бизнес-логику profile-service.
type Service struct {
	cfg             *config.Config
	profilesStorage storage.ProfilesStorage
	staging         storage.StagingStorage
	files           storage.FilesStorage
	cache           cache.ProfileCache
	users           userssvc.Client
	proc            *imaging.Processor
	metrics         *metrics.Metrics
}

// New создает новый экземпляр Service.
func New(
	profilesStorage storage.ProfilesStorage,
	staging storage.StagingStorage,
	files storage.FilesStorage,
	profileCache cache.ProfileCache,
	users userssvc.Client,
	proc *imaging.Processor,
	m *metrics.Metrics,
	cfg *config.Config,
) *Service {
	return &Service{
		cfg:             cfg,
		profilesStorage: profilesStorage,
		staging:         staging,
		files:           files,
		cache:           profileCache,
		users:           users,
		proc:            proc,
		metrics:         m,
	}
}
