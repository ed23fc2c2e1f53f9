// Package gormstore implements the storage.Backend interface on top of GORM
// with internal queues and a background DB writer goroutine. The postgres and
// sqlite backends are thin wrappers around it.
package gormstore

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/karlo195/StardewMods/internal/database"
	"github.com/karlo195/StardewMods/internal/logging"
	"github.com/karlo195/StardewMods/internal/model"
	"github.com/karlo195/StardewMods/internal/model/convert"
	"github.com/karlo195/StardewMods/internal/model/core"
	"github.com/karlo195/StardewMods/internal/queue"
)

// writeInterval is how often the background writer drains the queues.
const writeInterval = time.Second

// maxWriteBatch bounds one insert transaction; anything beyond it waits for
// the next flush.
const maxWriteBatch = 5000

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB         *gorm.DB
	LogManager *logging.SlogManager

	// DBLogger is used by the connection manager when no DB was injected.
	DBLogger zerolog.Logger
}

// queues holds all the write queues for batch DB insertion.
type queues struct {
	Cycles      *queue.Queue[model.DispatchCycle]
	Effects     *queue.Queue[model.TileEffect]
	RiderStates *queue.Queue[model.RiderState]
}

func newQueues() *queues {
	return &queues{
		Cycles:      queue.New[model.DispatchCycle](),
		Effects:     queue.New[model.TileEffect](),
		RiderStates: queue.New[model.RiderState](),
	}
}

// Backend implements storage.Backend using GORM with queue-based batch writes.
type Backend struct {
	deps     Dependencies
	queues   *queues
	manager  *database.Manager
	stopChan chan struct{}
	dbReady  bool

	mu        sync.Mutex
	sessionID string
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	return &Backend{
		deps: deps,
	}
}

// Init creates internal queues, runs schema migration, and starts the DB
// writer goroutine. If no DB was injected via Dependencies, the connection
// manager connects to postgres, falling back to a local in-memory SQLite
// database when the server is unreachable.
func (b *Backend) Init() error {
	b.queues = newQueues()
	b.stopChan = make(chan struct{})

	if b.deps.DB == nil {
		mgr := database.NewManager(b.deps.DBLogger)
		if err := mgr.Connect(); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := mgr.Setup(); err != nil {
			return fmt.Errorf("failed to set up database: %w", err)
		}
		b.manager = mgr
		b.deps.DB = mgr.DB
	} else if err := b.deps.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	b.dbReady = true

	b.startDBWriter()
	return nil
}

// UsingLocalDB reports whether the backend fell back to the local SQLite
// database instead of postgres.
func (b *Backend) UsingLocalDB() bool {
	return b.manager != nil && b.manager.ShouldSaveLocal
}

// Close stops the DB writer goroutine and flushes anything still queued.
func (b *Backend) Close() error {
	if b.stopChan != nil {
		close(b.stopChan)
	}
	b.Flush()
	return nil
}

// StartSession inserts the session row and remembers its ID for EndSession.
func (b *Backend) StartSession(s *core.Session) error {
	gormObj, err := convert.SessionToGorm(s)
	if err != nil {
		return fmt.Errorf("failed to convert session: %w", err)
	}
	if err := b.deps.DB.Create(&gormObj).Error; err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	b.mu.Lock()
	b.sessionID = s.ID
	b.mu.Unlock()
	return nil
}

// EndSession flushes the queues and stamps the session end time.
func (b *Backend) EndSession() error {
	b.mu.Lock()
	sessionID := b.sessionID
	b.mu.Unlock()

	if sessionID == "" {
		return fmt.Errorf("no session in progress")
	}

	b.Flush()

	err := b.deps.DB.Model(&model.Session{}).
		Where("id = ?", sessionID).
		Update("ended_at", time.Now()).Error
	if err != nil {
		return fmt.Errorf("failed to finalize session: %w", err)
	}
	return nil
}

// RecordDispatchCycle converts and queues a dispatch cycle.
func (b *Backend) RecordDispatchCycle(c *core.DispatchCycle) error {
	b.queues.Cycles.Push(convert.DispatchCycleToGorm(c))
	return nil
}

// RecordTileEffect converts and queues a tile effect.
func (b *Backend) RecordTileEffect(e *core.TileEffect) error {
	b.queues.Effects.Push(convert.TileEffectToGorm(e))
	return nil
}

// RecordRiderState converts and queues a rider sample.
func (b *Backend) RecordRiderState(r *core.RiderState) error {
	b.queues.RiderStates.Push(convert.RiderStateToGorm(r))
	return nil
}

// Flush synchronously drains all queues into the database.
func (b *Backend) Flush() {
	if !b.dbReady {
		return
	}
	log := b.writeLog

	writeQueue(b.deps.DB, b.queues.Cycles, "dispatch cycles", log)
	writeQueue(b.deps.DB, b.queues.Effects, "tile effects", log)
	writeQueue(b.deps.DB, b.queues.RiderStates, "rider states", log)
}

// writeQueue writes all items from a queue to the database in a transaction.
// On failure the items are pushed back for the next attempt.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], name string, log func(string, string, string)) {
	if q.Empty() {
		return
	}

	tx := db.Begin()
	items := q.Drain(maxWriteBatch)
	if err := tx.Create(&items).Error; err != nil {
		log(":DB:WRITER:", fmt.Sprintf("Error creating %s: %v", name, err), "ERROR")
		tx.Rollback()
		q.Push(items...)
		return
	}
	tx.Commit()
}

// startDBWriter starts the background goroutine that periodically drains
// queues into the DB.
func (b *Backend) startDBWriter() {
	go func() {
		ticker := time.NewTicker(writeInterval)
		defer ticker.Stop()

		for {
			select {
			case <-b.stopChan:
				return
			case <-ticker.C:
				b.Flush()
			}
		}
	}()
}

func (b *Backend) writeLog(handlerName, data, level string) {
	if b.deps.LogManager != nil {
		b.deps.LogManager.WriteLog(handlerName, data, level)
	}
}
