package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/chat-profile-service/internal/models"
	"github.com/pribylovaa/chat-profile-service/internal/storage"
)

// profileColumns — единый список колонок таблицы profiles,
// используемый в SELECT/RETURNING, чтобы гарантировать одинаковый порядок сканирования.
const profileColumns = `
username, bio, profile_picture_path, created_at, updated_at
`

// scanProfile сканирует одну строку профиля из результата запроса в доменную модель.
func scanProfile(row pgx.Row) (*models.Profile, error) {
	var profile models.Profile

	if err := row.Scan(
		&profile.Username,
		&profile.Bio,
		&profile.ProfilePicturePath,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &profile, nil
}

// EnsureProfile возвращает профиль, лениво создавая запись с дефолтами.
// ON CONFLICT DO UPDATE вместо DO NOTHING — чтобы RETURNING отдавал строку
// и в ветке конфликта; updated_at при этом не сдвигается.
func (s *ProfilesStorage) EnsureProfile(ctx context.Context, username string) (*models.Profile, error) {
	const op = "storage/postgres/profiles/EnsureProfile"

	q := `
	INSERT INTO profiles (username) VALUES ($1)
	ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
	RETURNING
	` + profileColumns

	row := s.db.QueryRow(ctx, q, username)

	result, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// UpdateProfile применяет частичный апдейт c upsert-семантикой: отсутствующая
// запись создаётся с дефолтами, затем применяются заданные указатели.
// updated_at сдвигается при любой мутации существующей строки (и при no-op).
func (s *ProfilesStorage) UpdateProfile(ctx context.Context, username string, update storage.ProfileUpdate) (*models.Profile, error) {
	const op = "storage/postgres/profiles/UpdateProfile"

	q := `
	INSERT INTO profiles (username, bio)
	VALUES ($1, COALESCE($2, ''))
	ON CONFLICT (username) DO UPDATE
	SET bio = COALESCE($2, profiles.bio), updated_at = now()
	RETURNING
	` + profileColumns

	row := s.db.QueryRow(ctx, q, username, update.Bio)

	result, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// SetProfilePicture фиксирует новый путь изображения и возвращает прежний.
// Одна транзакция: ensure строки (с чтением прежнего пути из ветки конфликта),
// затем UPDATE пути + updated_at. Прежний файл удаляет вызывающий — строго
// после фиксации транзакции, чтобы не оставить висячую ссылку при сбое удаления.
func (s *ProfilesStorage) SetProfilePicture(ctx context.Context, username, path string) (*models.Profile, string, error) {
	const op = "storage/postgres/profiles/SetProfilePicture"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var prevPath string
	qEnsure := `
	INSERT INTO profiles (username) VALUES ($1)
	ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
	RETURNING profile_picture_path
	`
	if err := tx.QueryRow(ctx, qEnsure, username).Scan(&prevPath); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	qSet := `
	UPDATE profiles
	SET profile_picture_path = $2, updated_at = now()
	WHERE username = $1
	RETURNING
	` + profileColumns

	result, err := scanProfile(tx.QueryRow(ctx, qSet, username, path))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return result, prevPath, nil
}

// SearchProfiles возвращает профили, username которых содержит query
// (без учёта регистра), не более limit записей, в лексикографическом порядке.
// Символы % и _ в query не экранируются и работают как ILIKE-шаблоны;
// пустой query совпадает со всеми профилями.
func (s *ProfilesStorage) SearchProfiles(ctx context.Context, query string, limit int) ([]models.Profile, error) {
	const op = "storage/postgres/profiles/SearchProfiles"

	q := `
	SELECT ` + profileColumns + `
	FROM profiles
	WHERE username ILIKE '%' || $1 || '%'
	ORDER BY username
	LIMIT $2
	`

	rows, err := s.db.Query(ctx, q, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []models.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}
