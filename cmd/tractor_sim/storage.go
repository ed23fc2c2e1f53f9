package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/karlo195/StardewMods/internal/config"
	"github.com/karlo195/StardewMods/internal/storage"
	"github.com/karlo195/StardewMods/internal/storage/gormstore"
	"github.com/karlo195/StardewMods/internal/storage/memory"
	sqlitestorage "github.com/karlo195/StardewMods/internal/storage/sqlite"
)

func createStorageBackend(storageCfg config.StorageConfig, dbLogger zerolog.Logger) (storage.Backend, error) {
	switch storageCfg.Type {
	case "postgres":
		Logger.Info("Postgres storage backend initialized")
		return gormstore.New(gormstore.Dependencies{
			LogManager: SlogManager,
			DBLogger:   dbLogger,
		}), nil

	case "sqlite":
		dumpInterval, err := time.ParseDuration(storageCfg.Sqlite.DumpInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid sqlite dump interval %q: %w", storageCfg.Sqlite.DumpInterval, err)
		}
		dumpPath := filepath.Join(storageCfg.Sqlite.DumpPath,
			fmt.Sprintf("%s_%s.db", ExtensionName, SessionStartTime.Format("20060102_150405")))
		backend, err := sqlitestorage.New(sqlitestorage.Config{
			DumpInterval: dumpInterval,
			DumpPath:     dumpPath,
		}, SlogManager)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite backend: %w", err)
		}
		Logger.Info("SQLite storage backend initialized", "dumpPath", dumpPath)
		return backend, nil

	default:
		Logger.Info("Memory storage backend initialized")
		return memory.New(storageCfg.Memory), nil
	}
}
