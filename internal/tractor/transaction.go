// internal/tractor/transaction.go
package tractor

import "github.com/karlo195/StardewMods/internal/game"

// offGridPosition parks the tractor far outside any playable map so it does
// not block the tiles dispatch is about to act on.
var offGridPosition = game.Position{X: -100000, Y: -100000}

// riderSnapshot captures every rider field the dispatch loop is allowed to
// clobber. It lives only for the duration of one RunExclusive call.
type riderSnapshot struct {
	mount     *game.Tractor
	mountPos  game.Position
	hasWater  bool
	waterLeft int
	stamina   float64
	position  game.Position
	facing    game.Direction
	toolIndex int
	canMove   bool
}

func takeSnapshot(rider *game.Farmer) riderSnapshot {
	snap := riderSnapshot{
		mount:     rider.Mount,
		stamina:   rider.Stamina,
		position:  rider.Position,
		facing:    rider.Facing,
		toolIndex: rider.CurrentToolIndex,
		canMove:   rider.CanMove,
	}
	if snap.mount != nil {
		snap.mountPos = snap.mount.Position
	}
	if tool := rider.CurrentTool(); tool != nil && tool.HoldsWater {
		snap.hasWater = true
		snap.waterLeft = tool.WaterLeft
	}
	return snap
}

func (s riderSnapshot) restore(rider *game.Farmer) {
	if s.mount != nil {
		s.mount.Position = s.mountPos
	}
	rider.Mount = s.mount
	rider.Stamina = s.stamina
	rider.Position = s.position
	rider.Facing = s.facing
	rider.CurrentToolIndex = s.toolIndex
	rider.CanMove = s.canMove
	if s.hasWater {
		if tool := rider.CurrentTool(); tool != nil && tool.HoldsWater {
			tool.WaterLeft = s.waterLeft
		}
	}
}

// RunExclusive lets action run world-interaction code that is only valid for
// a directly-controlled, unmounted rider. The mount is detached without the
// normal dismount side effects and the tractor is parked off-grid; every
// snapshotted field is restored on all exit paths, including a panicking
// action. This is the only place the rider's mount link and position are
// force-written outside normal game rules.
func RunExclusive(rider *game.Farmer, action func() error) error {
	snap := takeSnapshot(rider)

	rider.Mount = nil
	if snap.mount != nil {
		snap.mount.Position = offGridPosition
	}

	defer snap.restore(rider)

	return action()
}
