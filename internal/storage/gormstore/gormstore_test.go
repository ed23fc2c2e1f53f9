package gormstore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karlo195/StardewMods/internal/database"
	"github.com/karlo195/StardewMods/internal/model"
	"github.com/karlo195/StardewMods/internal/model/core"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()

	db, err := database.GetSqliteDBStandalone("")
	require.NoError(t, err)

	b := New(Dependencies{DB: db})
	require.NoError(t, b.Init())
	t.Cleanup(func() { b.Close() })
	return b
}

func startSession(t *testing.T, b *Backend) *core.Session {
	t.Helper()

	s := &core.Session{
		ID:          uuid.NewString(),
		FarmName:    "Test Farm",
		StartedAt:   time.Now(),
		Distance:    1,
		Interval:    12,
		Attachments: []string{"scythe", "axe"},
	}
	require.NoError(t, b.StartSession(s))
	return s
}

func TestBackend_StartSessionInsertsRow(t *testing.T) {
	b := newTestBackend(t)
	s := startSession(t, b)

	var got model.Session
	require.NoError(t, b.deps.DB.First(&got, "id = ?", s.ID).Error)
	assert.Equal(t, "Test Farm", got.FarmName)
	assert.Equal(t, uint(12), got.Interval)
	assert.JSONEq(t, `["scythe","axe"]`, string(got.Attachments))
}

func TestBackend_FlushWritesQueuedRecords(t *testing.T) {
	b := newTestBackend(t)
	s := startSession(t, b)

	require.NoError(t, b.RecordDispatchCycle(&core.DispatchCycle{
		SessionID:      s.ID,
		Tick:           12,
		OriginX:        5,
		OriginY:        5,
		EffectsApplied: 3,
		Duration:       250 * time.Microsecond,
	}))
	require.NoError(t, b.RecordTileEffect(&core.TileEffect{
		SessionID:  s.ID,
		Tick:       12,
		TileX:      4,
		TileY:      6,
		Attachment: "scythe",
		Feature:    "grass",
	}))
	require.NoError(t, b.RecordRiderState(&core.RiderState{
		SessionID: s.ID,
		Tick:      12,
		Stamina:   140,
		Health:    100,
		Riding:    true,
	}))

	b.Flush()

	var cycles []model.DispatchCycle
	require.NoError(t, b.deps.DB.Find(&cycles, "session_id = ?", s.ID).Error)
	require.Len(t, cycles, 1)
	assert.Equal(t, 3, cycles[0].EffectsApplied)
	assert.Equal(t, int64(250), cycles[0].DurationMicros)

	var effects []model.TileEffect
	require.NoError(t, b.deps.DB.Find(&effects, "session_id = ?", s.ID).Error)
	require.Len(t, effects, 1)
	assert.Equal(t, "scythe", effects[0].Attachment)

	var states []model.RiderState
	require.NoError(t, b.deps.DB.Find(&states, "session_id = ?", s.ID).Error)
	require.Len(t, states, 1)
	assert.True(t, states[0].Riding)
}

func TestBackend_EndSessionStampsEndTime(t *testing.T) {
	b := newTestBackend(t)
	s := startSession(t, b)

	require.NoError(t, b.RecordDispatchCycle(&core.DispatchCycle{SessionID: s.ID, Tick: 24}))
	require.NoError(t, b.EndSession())

	var got model.Session
	require.NoError(t, b.deps.DB.First(&got, "id = ?", s.ID).Error)
	assert.False(t, got.EndedAt.IsZero())

	// EndSession flushes before stamping
	var cycles []model.DispatchCycle
	require.NoError(t, b.deps.DB.Find(&cycles, "session_id = ?", s.ID).Error)
	assert.Len(t, cycles, 1)
}

func TestBackend_InitFallsBackToLocalDB(t *testing.T) {
	// Point the postgres config at a port nothing listens on.
	for key, val := range map[string]string{
		"db.host":     "127.0.0.1",
		"db.port":     "1",
		"db.username": "nobody",
		"db.password": "nope",
		"db.database": "tractor",
	} {
		old := viper.Get(key)
		viper.Set(key, val)
		t.Cleanup(func() { viper.Set(key, old) })
	}

	b := New(Dependencies{DBLogger: zerolog.Nop()})
	require.NoError(t, b.Init(), "unreachable postgres must fall back, not fail")
	t.Cleanup(func() { b.Close() })

	assert.True(t, b.UsingLocalDB())

	// The fallback DB is migrated and writable.
	s := startSession(t, b)
	require.NoError(t, b.RecordDispatchCycle(&core.DispatchCycle{SessionID: s.ID, Tick: 12}))
	b.Flush()

	var cycles []model.DispatchCycle
	require.NoError(t, b.deps.DB.Find(&cycles, "session_id = ?", s.ID).Error)
	assert.Len(t, cycles, 1)
}

func TestBackend_InjectedDBIsNotLocalFallback(t *testing.T) {
	b := newTestBackend(t)
	assert.False(t, b.UsingLocalDB())
}

func TestBackend_EndSessionWithoutStartFails(t *testing.T) {
	db, err := database.GetSqliteDBStandalone("")
	require.NoError(t, err)

	b := New(Dependencies{DB: db})
	require.NoError(t, b.Init())
	defer b.Close()

	assert.Error(t, b.EndSession())
}
