// internal/grid/grid.go

// Package grid computes the tile coverage square around the rider and the
// geometry dispatch needs to orient the rider toward each tile.
package grid

import (
	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/karlo195/StardewMods/internal/game"
)

// Generate returns every tile within Chebyshev distance d of origin,
// inclusive, in row-major order (y outer, x inner). The result always
// contains origin and has exactly (2d+1)² tiles. Negative distances are
// treated as zero.
func Generate(origin game.Tile, distance int) []game.Tile {
	if distance < 0 {
		distance = 0
	}

	side := 2*distance + 1
	tiles := make([]game.Tile, 0, side*side)
	for y := origin.Y - distance; y <= origin.Y+distance; y++ {
		for x := origin.X - distance; x <= origin.X+distance; x++ {
			tiles = append(tiles, game.Tile{X: x, Y: y})
		}
	}
	return tiles
}

// DirectionToward returns the facing from one tile toward another, using the
// dominant axis and breaking ties vertically. A tile faces Down toward itself
// so the rider's tool still points at the tile they stand on.
func DirectionToward(from, to game.Tile) game.Direction {
	dx := to.X - from.X
	dy := to.Y - from.Y

	abs := func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	}

	if abs(dx) > abs(dy) {
		if dx > 0 {
			return game.Right
		}
		return game.Left
	}
	if dy < 0 {
		return game.Up
	}
	return game.Down
}

// ApproachPosition returns the pixel position one tile away from the target on
// the side opposite the facing, so that interaction rules see the rider
// standing adjacent and facing the tile.
func ApproachPosition(tile game.Tile, facing game.Direction) game.Position {
	dx, dy := facing.Opposite().Offset()
	return game.Tile{X: tile.X + dx, Y: tile.Y + dy}.Center()
}

// Envelope returns the pixel-space bounding box of a tile, used by the host
// renderer to draw the coverage overlay.
func Envelope(t game.Tile) geom.Envelope {
	env, _ := geom.NewEnvelope([]geom.XY{
		{X: float64(t.X) * game.TileSize, Y: float64(t.Y) * game.TileSize},
		{X: float64(t.X+1) * game.TileSize, Y: float64(t.Y+1) * game.TileSize},
	})
	return env
}

// Envelopes maps each tile to its pixel-space bounding box.
func Envelopes(tiles []game.Tile) []geom.Envelope {
	out := make([]geom.Envelope, len(tiles))
	for i, t := range tiles {
		out[i] = Envelope(t)
	}
	return out
}
