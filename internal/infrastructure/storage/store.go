// Package storage provides the durable key/value slots that hold the session.
package storage

import (
	"fmt"

	"github.com/doeshing/modelscout/internal/domain"
)

// Store is a KeyValueStore that can be closed.
type Store interface {
	Get(key string) (string, bool, error)
	SetMany(values map[string]string) error
	Delete(keys ...string) error
	Path() string
	Close() error
}

// Open returns the store selected by settings.
func Open(settings domain.StorageSettings) (Store, error) {
	switch settings.Driver {
	case domain.StorageDriverSQLite, "":
		return NewSQLiteStore(settings.Path), nil
	case domain.StorageDriverFile:
		return NewFileStore(settings.Path), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", settings.Driver)
	}
}
