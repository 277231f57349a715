package models

import "time"

// StagedImage — загруженное, но ещё не подтверждённое изображение.
// Живёт в Redis под временным ключом с TTL; single-owner и single-use:
// подтвердить может только Owner, подтверждение (или истечение TTL) удаляет запись.
type StagedImage struct {
	TempID string `json:"-"`
	// Owner — username загрузившего; только он может выполнить commit.
	Owner string `json:"owner"`
	// Data — нормализованный (RGB) JPEG высокого качества.
	Data      []byte    `json:"data"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

// CropRect — прямоугольник кадрирования в координатах исходного изображения.
type CropRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}
