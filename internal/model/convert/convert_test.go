package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karlo195/StardewMods/internal/model/core"
)

func TestSessionToGorm(t *testing.T) {
	start := time.Now()
	s := &core.Session{
		ID:          "run-1",
		FarmName:    "Sunrise Farm",
		StartedAt:   start,
		Distance:    1,
		Interval:    12,
		Attachments: []string{"scythe", "hoe"},
	}

	g, err := SessionToGorm(s)
	require.NoError(t, err)
	assert.Equal(t, "run-1", g.ID)
	assert.Equal(t, "Sunrise Farm", g.FarmName)
	assert.Equal(t, start, g.StartedAt)
	assert.JSONEq(t, `["scythe","hoe"]`, string(g.Attachments))
}

func TestDispatchCycleToGorm(t *testing.T) {
	c := &core.DispatchCycle{
		SessionID:      "run-1",
		Tick:           240,
		OriginX:        5,
		OriginY:        5,
		Eligible:       2,
		TilesExamined:  9,
		EffectsApplied: 3,
		Duration:       1500 * time.Microsecond,
	}

	g := DispatchCycleToGorm(c)
	assert.Equal(t, uint64(240), g.Tick)
	assert.Equal(t, 9, g.TilesExamined)
	assert.Equal(t, int64(1500), g.DurationMicros)
}

func TestTileEffectToGorm(t *testing.T) {
	e := &core.TileEffect{
		SessionID:  "run-1",
		Tick:       240,
		TileX:      4,
		TileY:      6,
		Attachment: "scythe",
		Object:     "Weeds",
	}

	g := TileEffectToGorm(e)
	assert.Equal(t, 4, g.TileX)
	assert.Equal(t, 6, g.TileY)
	assert.Equal(t, "scythe", g.Attachment)
	assert.Equal(t, "Weeds", g.Object)
}
