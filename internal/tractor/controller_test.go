package tractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karlo195/StardewMods/internal/game"
)

func tickUntilDispatch(t *testing.T, c *Controller, maxTicks int) *CycleReport {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		if report := c.Update(); report != nil {
			return report
		}
	}
	return nil
}

func TestUpdate_FiresOncePerInterval(t *testing.T) {
	att := &stubAttachment{name: "scythe", enabled: true, applyFn: claimAll}
	ctrl, _, _, _ := newTestRig(Config{Distance: 1, TicksPerAction: 12}, att)

	dispatches := 0
	for tick := 0; tick < 36; tick++ {
		if ctrl.Update() != nil {
			dispatches++
		}
	}
	assert.Equal(t, 3, dispatches, "exactly one dispatch per 12 ticks")
	assert.Equal(t, uint(0), ctrl.skippedTicks, "counter returns to zero after firing")
}

func TestUpdate_NothingWhileDismounted(t *testing.T) {
	att := &stubAttachment{name: "scythe", enabled: true, applyFn: claimAll}
	ctrl, rider, _, _ := newTestRig(Config{Distance: 1, TicksPerAction: 12}, att)
	rider.Mount = nil

	for tick := 0; tick < 60; tick++ {
		assert.Nil(t, ctrl.Update())
	}
	assert.Empty(t, att.applied)
	assert.Nil(t, ctrl.deps.Buffs.Find(BuffID))
}

func TestUpdate_BlockedByMenu(t *testing.T) {
	att := &stubAttachment{name: "scythe", enabled: true, applyFn: claimAll}
	ctrl, _, _, _ := newTestRig(Config{Distance: 1, TicksPerAction: 12}, att)
	ctrl.deps.UI.(*stubUI).menuOpen = true

	for tick := 0; tick < 60; tick++ {
		assert.Nil(t, ctrl.Update())
	}
	assert.Empty(t, att.applied)

	// Closing the menu resumes the normal cadence.
	ctrl.deps.UI.(*stubUI).menuOpen = false
	require.NotNil(t, tickUntilDispatch(t, ctrl, 12))
}

func TestIsEnabled_HoldToActivate(t *testing.T) {
	att := &stubAttachment{name: "scythe", enabled: true, applyFn: claimAll}
	ctrl, _, _, _ := newTestRig(Config{Distance: 1, TicksPerAction: 12, HoldToActivate: []string{"LeftControl", "Space"}}, att)
	input := ctrl.deps.Input.(*stubInput)

	assert.False(t, ctrl.IsEnabled(), "no configured key held")

	// Key released: interval elapses without dispatch.
	for tick := 0; tick < 24; tick++ {
		assert.Nil(t, ctrl.Update())
	}

	input.down["Space"] = true
	assert.True(t, ctrl.IsEnabled())
	require.NotNil(t, tickUntilDispatch(t, ctrl, 12))
}

func TestIsEnabled_AutomaticWithoutKeys(t *testing.T) {
	ctrl, rider, _, _ := newTestRig(Config{Distance: 1, TicksPerAction: 12})
	assert.True(t, ctrl.IsEnabled())

	rider.Mount = nil
	assert.False(t, ctrl.IsEnabled())
}

func TestUpdate_InvincibilityRestoresCachedHealth(t *testing.T) {
	ctrl, rider, _, _ := newTestRig(Config{Distance: 1, TicksPerAction: 12, Invincibility: true})
	rider.Health = 10

	// First riding tick caches health.
	ctrl.Update()
	assert.Equal(t, 10, ctrl.cachedHealth)

	// Unrelated simulation code hurts the rider mid-tick.
	rider.Health = 3
	rider.TemporarilyInvincible = true
	rider.InvincibilityTimer = 1200

	ctrl.Update()
	assert.Equal(t, 10, rider.Health, "restored to the cached maximum, not merely clamped")
	assert.False(t, rider.TemporarilyInvincible)
	assert.Equal(t, 0, rider.InvincibilityTimer)
}

func TestUpdate_InvincibilityTracksHealing(t *testing.T) {
	ctrl, rider, _, _ := newTestRig(Config{Distance: 1, TicksPerAction: 12, Invincibility: true})
	rider.Health = 50

	ctrl.Update()
	rider.Health = 80 // healed
	ctrl.Update()
	assert.Equal(t, 80, ctrl.cachedHealth)

	rider.Health = 20
	ctrl.Update()
	assert.Equal(t, 80, rider.Health)
}

func TestUpdate_CachesHealthOnMountTransition(t *testing.T) {
	ctrl, rider, tractorEntity, _ := newTestRig(Config{TicksPerAction: 12, Invincibility: true})
	rider.Mount = nil
	rider.Health = 100

	ctrl.Update()
	rider.Health = 42
	rider.Mount = tractorEntity

	// The cache comes from health at mount time, not from before.
	ctrl.Update()
	assert.Equal(t, 42, ctrl.cachedHealth)
}

func TestUpdate_BuffCreatedThenRefreshed(t *testing.T) {
	ctrl, _, _, _ := newTestRig(Config{TicksPerAction: 12, MagneticRadius: 384, TractorSpeed: 2})
	buffs := ctrl.deps.Buffs.(*stubBuffs)

	ctrl.Update()
	buff := buffs.Find(BuffID)
	require.NotNil(t, buff)
	assert.Equal(t, 384, buff.MagneticRadius)
	assert.Equal(t, 2, buff.Speed)
	assert.Equal(t, buffDuration, buff.Duration)

	// Host ticked the duration down; the next update re-arms it in place.
	buff.Duration = 0
	ctrl.Update()
	assert.Same(t, buff, buffs.Find(BuffID))
	assert.Equal(t, buffDuration, buff.Duration)
}

func TestDispatch_FirstMatchWinsTile(t *testing.T) {
	first := &stubAttachment{name: "scythe", enabled: true, applyFn: claimAll}
	second := &stubAttachment{name: "hoe", enabled: true, applyFn: claimAll}
	ctrl, _, _, _ := newTestRig(Config{Distance: 0, TicksPerAction: 12}, first, second)

	report := tickUntilDispatch(t, ctrl, 12)
	require.NotNil(t, report)

	require.Len(t, first.applied, 1)
	assert.Equal(t, game.Tile{X: 5, Y: 5}, first.applied[0])
	assert.Empty(t, second.applied, "lower-priority attachment never tried on a claimed tile")

	require.Len(t, report.Effects, 1)
	assert.Equal(t, "scythe", report.Effects[0].Attachment)
}

func TestDispatch_FallsThroughToLowerPriority(t *testing.T) {
	picky := &stubAttachment{name: "seeder", enabled: true, applyFn: func(t game.Tile) bool { return t.X == 4 }}
	broad := &stubAttachment{name: "scythe", enabled: true, applyFn: claimAll}
	ctrl, _, _, _ := newTestRig(Config{Distance: 1, TicksPerAction: 12}, picky, broad)

	report := tickUntilDispatch(t, ctrl, 12)
	require.NotNil(t, report)

	assert.Len(t, picky.applied, 3, "one column of the 3x3 grid")
	assert.Len(t, broad.applied, 6, "everything the seeder declined")
	assert.Len(t, report.Effects, 9)
}

func TestDispatch_CooldownSkipsCycles(t *testing.T) {
	slow := &stubAttachment{name: "fertilizer", enabled: true, rateLimit: 36, applyFn: claimAll}
	ctrl, _, _, _ := newTestRig(Config{Distance: 0, TicksPerAction: 12}, slow)

	// Cycle 1 applies and re-arms the 36-tick cooldown.
	require.NotNil(t, tickUntilDispatch(t, ctrl, 12))
	assert.Len(t, slow.applied, 1)

	// Cycles 2 and 3 find no eligible attachment at all.
	for tick := 0; tick < 24; tick++ {
		assert.Nil(t, ctrl.Update())
	}
	assert.Len(t, slow.applied, 1)

	// Cycle 4: eligible again.
	require.NotNil(t, tickUntilDispatch(t, ctrl, 12))
	assert.Len(t, slow.applied, 2)
}

func TestDispatch_NoEligibleSkipsGrid(t *testing.T) {
	disabled := &stubAttachment{name: "scythe", enabled: false, applyFn: claimAll}
	ctrl, _, _, _ := newTestRig(Config{Distance: 1, TicksPerAction: 12}, disabled)

	for tick := 0; tick < 24; tick++ {
		assert.Nil(t, ctrl.Update())
	}
	assert.Empty(t, disabled.applied)
}

func TestDispatch_RiderStateRestoredAfterCycle(t *testing.T) {
	att := &stubAttachment{name: "scythe", enabled: true, applyFn: claimAll}
	ctrl, rider, tractorEntity, _ := newTestRig(Config{Distance: 1, TicksPerAction: 12}, att)

	pos := rider.Position
	facing := rider.Facing
	stamina := rider.Stamina

	require.NotNil(t, tickUntilDispatch(t, ctrl, 12))

	assert.Equal(t, pos, rider.Position)
	assert.Equal(t, facing, rider.Facing)
	assert.Equal(t, stamina, rider.Stamina)
	assert.Same(t, tractorEntity, rider.Mount)
	assert.Equal(t, game.Tile{X: 5, Y: 5}.Center(), tractorEntity.Position)
}

func TestTrellisPassthrough_TogglesAndRevertsOnWarp(t *testing.T) {
	ctrl, rider, _, farm := newTestRig(Config{TicksPerAction: 12, PassThroughTrellis: true})

	trellis := &game.Crop{Kind: "hops", Raised: true, Impassable: true}
	normal := &game.Crop{Kind: "parsnip"}
	farm.AddCrop(trellis)
	farm.AddCrop(normal)

	ctrl.Update()
	assert.False(t, trellis.Impassable, "raised crop made passable while riding")
	assert.False(t, normal.Impassable)

	// Warp away: the old location's crops revert, the new location's are
	// left as-is until the next update there.
	town := game.NewFarmMap("Town")
	townTrellis := &game.Crop{Kind: "hops", Raised: true, Impassable: true}
	town.AddCrop(townTrellis)

	rider.Location = town
	ctrl.OnLocationChanged(farm, town)

	assert.True(t, trellis.Impassable, "old location reverted")
	assert.True(t, townTrellis.Impassable, "new location untouched by the warp itself")

	ctrl.Update()
	assert.False(t, townTrellis.Impassable, "re-applied lazily in the new location")
}

func TestTrellisPassthrough_NoRevertWhenDismounted(t *testing.T) {
	ctrl, rider, _, farm := newTestRig(Config{TicksPerAction: 12, PassThroughTrellis: true})

	trellis := &game.Crop{Kind: "hops", Raised: true, Impassable: true}
	farm.AddCrop(trellis)
	ctrl.Update()
	require.False(t, trellis.Impassable)

	rider.Mount = nil
	ctrl.OnLocationChanged(farm, game.NewFarmMap("Town"))
	assert.False(t, trellis.Impassable, "warp while unmounted leaves crops alone")
}

func TestSetLocation(t *testing.T) {
	ctrl, _, tractorEntity, _ := newTestRig(Config{TicksPerAction: 12})

	cave := game.NewFarmMap("Cave")
	ctrl.SetLocation(cave, game.Tile{X: 3, Y: 8})

	assert.Equal(t, cave, tractorEntity.Location)
	assert.Equal(t, game.Tile{X: 3, Y: 8}, tractorEntity.Tile())
}

func TestCoverage(t *testing.T) {
	ctrl, rider, _, _ := newTestRig(Config{Distance: 1, TicksPerAction: 12})

	overlay := ctrl.Coverage()
	assert.True(t, overlay.Active)
	assert.Len(t, overlay.Tiles, 9)
	assert.Len(t, overlay.Bounds, 9)
	assert.Equal(t, rider.Tile(), overlay.Tiles[4], "grid centered on the rider")

	rider.Mount = nil
	assert.False(t, ctrl.Coverage().Active)
}
