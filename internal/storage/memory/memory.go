// internal/storage/memory/memory.go
package memory

import (
	"fmt"
	"sync"

	"github.com/karlo195/StardewMods/internal/config"
	"github.com/karlo195/StardewMods/internal/model/core"
)

// Backend stores the session journal in memory and exports it to JSON when
// the session ends.
type Backend struct {
	cfg     config.MemoryConfig
	session *core.Session

	cycles      []core.DispatchCycle
	effects     []core.TileEffect
	riderStates []core.RiderState

	exportedPath string
	idCounter    uint
	mu           sync.RWMutex
}

// New creates a new memory backend.
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources.
func (b *Backend) Close() error {
	return nil
}

// StartSession begins journaling a new session.
func (b *Backend) StartSession(s *core.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.session = s
	b.cycles = nil
	b.effects = nil
	b.riderStates = nil
	b.exportedPath = ""
	b.idCounter = 0

	return nil
}

// EndSession finalizes and exports the session journal.
func (b *Backend) EndSession() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return fmt.Errorf("no session in progress")
	}
	return b.exportJSON()
}

// RecordDispatchCycle appends one dispatch cycle.
func (b *Backend) RecordDispatchCycle(c *core.DispatchCycle) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	c.ID = b.idCounter
	b.cycles = append(b.cycles, *c)
	return nil
}

// RecordTileEffect appends one tile effect.
func (b *Backend) RecordTileEffect(e *core.TileEffect) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	e.ID = b.idCounter
	b.effects = append(b.effects, *e)
	return nil
}

// RecordRiderState appends one rider sample.
func (b *Backend) RecordRiderState(r *core.RiderState) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	r.ID = b.idCounter
	b.riderStates = append(b.riderStates, *r)
	return nil
}

// GetExportedFilePath returns the path of the last exported session file.
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.exportedPath
}

// Counts returns the number of journaled cycles and effects, for status
// reporting.
func (b *Backend) Counts() (cycles, effects int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.cycles), len(b.effects)
}
