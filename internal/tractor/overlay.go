// internal/tractor/overlay.go
package tractor

import (
	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/karlo195/StardewMods/internal/game"
	"github.com/karlo195/StardewMods/internal/grid"
)

// Overlay is the coverage data the host renderer draws each frame: one
// rectangle per tile in the current grid, colored by Active.
type Overlay struct {
	// Active selects the "will act" color over the "inactive" color.
	Active bool
	Tiles  []game.Tile
	Bounds []geom.Envelope
}

// Coverage computes the overlay from the rider's position (not the
// tractor's), matching where dispatch would actually act. Pure query, no
// state mutation.
func (c *Controller) Coverage() Overlay {
	tiles := grid.Generate(c.deps.Rider.Tile(), c.cfg.Distance)
	return Overlay{
		Active: c.IsEnabled(),
		Tiles:  tiles,
		Bounds: grid.Envelopes(tiles),
	}
}
