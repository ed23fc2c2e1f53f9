// internal/game/types.go
package game

import "fmt"

// TileSize is the edge length of one tile in world-pixel units.
const TileSize = 64

// Tile is an integer tile coordinate on a location's grid.
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (t Tile) String() string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Y)
}

// Position is a world-pixel coordinate within a location.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tile returns the tile containing this position.
func (p Position) Tile() Tile {
	return Tile{X: int(p.X) / TileSize, Y: int(p.Y) / TileSize}
}

// Center returns the pixel position at the center of a tile.
func (t Tile) Center() Position {
	return Position{
		X: float64(t.X)*TileSize + TileSize/2,
		Y: float64(t.Y)*TileSize + TileSize/2,
	}
}

// Direction is a cardinal facing, using the host's sprite ordering.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return "unknown"
}

// Offset returns the tile delta one step in this direction.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	}
	return 0, 0
}

// Opposite returns the reverse facing.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	}
	return Down
}
