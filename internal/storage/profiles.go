// storage содержит контракты слоя хранилищ profile-service.
//
// profiles.go - работа с профилями в БД (ленивое создание/чтение/апдейт био,
// атомарная смена пути изображения профиля, поиск по подстроке).
// staging.go - контракт временного хранилища загруженных изображений (TTL).
// files.go - контракт долговременного файлового хранилища (S3/MinIO).
package storage

import (
	"context"

	"github.com/pribylovaa/chat-profile-service/internal/models"
)

// ProfileUpdate — частичный апдейт профиля.
// Параметры задаются pointer-полями: только непустые указатели обновляются в БД.
type ProfileUpdate struct {
	Bio *string
}

// Profiles — контракт репозитория профилей.
// Репозиторий — единственный владелец долговременной истины;
// кэш и staging эфемерны и не авторитетны.
type Profiles interface {
	// EnsureProfile возвращает профиль, создавая запись с дефолтами, если её нет.
	// Единственное место, где реализована инварианта "чтение никогда не падает".
	EnsureProfile(ctx context.Context, username string) (*models.Profile, error)
	// UpdateProfile применяет частичный апдейт с upsert-семантикой:
	// отсутствующая запись создаётся с дефолтами, затем применяется update.
	// Реализация должна обновить updated_at. Одна транзакция на вызов.
	UpdateProfile(ctx context.Context, username string, update ProfileUpdate) (*models.Profile, error)
	// SetProfilePicture фиксирует новый путь изображения (upsert) и возвращает
	// обновлённый профиль вместе с предыдущим путём (пустая строка, если его не было).
	// Прежний файл удаляется вызывающим только после фиксации транзакции.
	SetProfilePicture(ctx context.Context, username, path string) (*models.Profile, string, error)
	// SearchProfiles возвращает профили, username которых содержит query
	// (без учёта регистра), не более limit записей.
	SearchProfiles(ctx context.Context, query string, limit int) ([]models.Profile, error)
}

// ProfilesStorage — верхнеуровневый интерфейс хранилища профилей.
type ProfilesStorage interface {
	Profiles
	Close()
}
