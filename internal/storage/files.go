package storage

import (
	"context"
	"errors"
)

// ErrNotFoundFile — объект (ключ) отсутствует в бакете.
var ErrNotFoundFile = errors.New("not found")

// Files — контракт долговременного файлового хранилища изображений профиля.
// Имена объектов никогда не переиспользуются: каждый commit пишет под свежим
// ключом, поэтому конкурентные читатели старого файла не видят частичных записей.
type Files interface {
	// Save пишет объект под key и возвращает публичный путь для ссылки из профиля.
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Remove удаляет объект; идемпотентен.
	Remove(ctx context.Context, key string) error
	// KeyFromPath восстанавливает ключ объекта из публичного пути
	// (пустая строка, если путь не принадлежит этому хранилищу).
	KeyFromPath(path string) string
}

// FilesStorage — алиас-обёртка для внедрения зависимости.
type FilesStorage interface {
	Files
}
