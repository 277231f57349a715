package minio

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	mclient "github.com/minio/minio-go/v7"
)

// Save пишет объект под key и возвращает публичный путь "<PublicBaseURL>/<key>".
// Ключи всегда свежие (генерирует вызывающий), перезапись не предполагается.
func (s *FilesStorage) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	const op = "storage/minio/files/Save"

	_, err := s.client.PutObject(ctx, s.cfg.S3.Bucket, key,
		bytes.NewReader(data), int64(len(data)),
		mclient.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	base := strings.TrimRight(s.cfg.S3.PublicBaseURL, "/")

	return base + "/" + key, nil
}

// Remove удаляет объект по ключу.
// Идемпотентен: удаление отсутствующего объекта в S3 — успех.
func (s *FilesStorage) Remove(ctx context.Context, key string) error {
	const op = "storage/minio/files/Remove"

	if err := s.client.RemoveObject(ctx, s.cfg.S3.Bucket, key, mclient.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// KeyFromPath восстанавливает ключ объекта из публичного пути.
// Возвращает пустую строку, если путь не под PublicBaseURL этого хранилища.
func (s *FilesStorage) KeyFromPath(path string) string {
	base := strings.TrimRight(s.cfg.S3.PublicBaseURL, "/") + "/"

	if !strings.HasPrefix(path, base) {
		return ""
	}

	return strings.TrimPrefix(path, base)
}
