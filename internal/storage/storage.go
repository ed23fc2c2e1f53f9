// internal/storage/storage.go
package storage

import "github.com/karlo195/StardewMods/internal/model/core"

// Backend is the interface all journal storage implementations must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Session management
	StartSession(s *core.Session) error
	EndSession() error

	// Record journaling
	RecordDispatchCycle(c *core.DispatchCycle) error
	RecordTileEffect(e *core.TileEffect) error
	RecordRiderState(r *core.RiderState) error
}

// Uploadable is an optional interface for backends that produce a session
// file suitable for sharing or upload.
type Uploadable interface {
	GetExportedFilePath() string
}

// LocalAware is an optional interface for database-backed stores that report
// whether they are writing to the local fallback database.
type LocalAware interface {
	UsingLocalDB() bool
}
