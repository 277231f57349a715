// models содержит доменные сущности profile-сервиса.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import "time"

// Profile — внутренняя доменная модель профиля пользователя.
// Username — неизменяемый уникальный ключ; запись создаётся лениво
// при первом чтении/записи (read never fails).
type Profile struct {
	Username           string
	Bio                string
	ProfilePicturePath string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
