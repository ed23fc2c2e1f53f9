// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/karlo195/StardewMods/internal/config"
	"github.com/karlo195/StardewMods/internal/storage/memory"
)

// NewBackend creates a journal storage backend based on configuration.
// The sqlite and postgres backends need database wiring and are constructed
// by the caller; this factory covers the self-contained ones.
func NewBackend(cfg config.StorageConfig) (Backend, error) {
	switch cfg.Type {
	case "memory":
		return memory.New(cfg.Memory), nil
	case "sqlite", "postgres":
		return nil, fmt.Errorf("storage type %q requires a database manager; use its constructor", cfg.Type)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
