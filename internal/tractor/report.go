// internal/tractor/report.go
package tractor

import (
	"time"

	"github.com/karlo195/StardewMods/internal/game"
)

// TileEffect records one attachment claiming one tile during a dispatch cycle.
type TileEffect struct {
	Tile       game.Tile
	Attachment string
	Object     string
	Feature    string
}

// CycleReport summarizes one dispatch cycle for the session journal.
type CycleReport struct {
	Origin        game.Tile
	Eligible      int
	TilesExamined int
	Effects       []TileEffect
	Duration      time.Duration
}
