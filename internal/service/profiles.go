package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pribylovaa/chat-profile-service/internal/models"
	"github.com/pribylovaa/chat-profile-service/internal/storage"
	"github.com/pribylovaa/chat-profile-service/pkg/log"
)

// Входные структуры сервисного слоя.
type UpdateProfileInput struct {
	Username string
	// Bio — nil означает "не менять"; updated_at в БД сдвигается в любом случае.
	Bio *string
}

// defaultSearchLimit — верхняя граница выдачи поиска.
const defaultSearchLimit = 10

// cacheCtx выделяет короткий таймаут для best-effort обращений к кэшу.
func (s *Service) cacheCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Timeouts.Cache)
}

// ProfileByUsername возвращает профиль по username, лениво создавая запись.
//
// Поведение:
//   - сперва read-through кэш: попадание возвращается сразу, промах/ошибка
//     кэша игнорируются (кэш консультативен, репозиторий — источник истины);
//   - затем EnsureProfile: чтение никогда не падает из-за отсутствия записи;
//   - удачное чтение best-effort наполняет кэш (единственный наполняющий путь).
//
// Ошибки: ErrInvalidArgument на пустой username; ErrUnavailable на сбой БД.
func (s *Service) ProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	const op = "service/profiles/ProfileByUsername"

	lg := log.From(ctx).With("op", op, "username", username)

	username = strings.TrimSpace(username)
	if username == "" {
		lg.Warn("invalid argument: empty username")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	getCtx, cancel := s.cacheCtx(ctx)
	cached, ok, err := s.cache.Get(getCtx, username)
	cancel()
	if err != nil {
		lg.Warn("cache get failed", "err", err)
	}
	if ok {
		return cached, nil
	}

	profile, err := s.profilesStorage.EnsureProfile(ctx, username)
	if err != nil {
		lg.Error("storage error on EnsureProfile", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	setCtx, cancel := s.cacheCtx(ctx)
	if err := s.cache.Set(setCtx, profile); err != nil {
		lg.Warn("cache set failed", "err", err)
	}
	cancel()

	return profile, nil
}

// UpdateProfile применяет частичный апдейт профиля (upsert-семантика).
//
// Поведение:
//   - единственная долговременная запись на вызов (транзакционный upsert);
//   - кэш инвалидируется ПОСЛЕ фиксации записи; сбой инвалидации логируется
//     и глотается — следующая запись кэша возможна только из пути чтения,
//     который увидит уже обновлённую строку.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.Profile, error) {
	const op = "service/profiles/UpdateProfile"

	lg := log.From(ctx).With("op", op, "username", input.Username)

	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" {
		lg.Warn("invalid argument: empty username")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	profile, err := s.profilesStorage.UpdateProfile(ctx, input.Username, storage.ProfileUpdate{Bio: input.Bio})
	if err != nil {
		lg.Error("storage error on UpdateProfile", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	invCtx, cancel := s.cacheCtx(ctx)
	if err := s.cache.Invalidate(invCtx, input.Username); err != nil {
		lg.Warn("cache invalidate failed", "err", err)
	}
	cancel()

	s.metrics.ProfileUpdates.Inc()

	return profile, nil
}

// SearchProfiles возвращает профили по подстроке username (без учёта регистра).
// limit вне (0..10] приводится к 10. Пустой query допустим и означает "все".
func (s *Service) SearchProfiles(ctx context.Context, query string, limit int) ([]models.Profile, error) {
	const op = "service/profiles/SearchProfiles"

	lg := log.From(ctx).With("op", op)

	if limit <= 0 || limit > defaultSearchLimit {
		limit = defaultSearchLimit
	}

	result, err := s.profilesStorage.SearchProfiles(ctx, strings.TrimSpace(query), limit)
	if err != nil {
		lg.Error("storage error on SearchProfiles", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	return result, nil
}
