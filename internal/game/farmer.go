// internal/game/farmer.go
package game

// Tool is a held tool. WaterLeft is only meaningful when HoldsWater is true.
type Tool struct {
	Name       string
	HoldsWater bool
	WaterLeft  int
}

// Item is a held stackable item (seeds, fertilizer...).
type Item struct {
	Name  string
	Stack int
}

// Farmer is the rider entity. Its fields are read and written by unrelated
// host-simulation code every tick, so dispatch must never leave them dirty.
type Farmer struct {
	Name     string
	Location Location
	Position Position
	Facing   Direction

	Stamina   float64
	Health    int
	MaxHealth int

	// Post-damage mercy-invincibility state managed by the host.
	TemporarilyInvincible bool
	InvincibilityTimer    int

	CurrentToolIndex int // -1 when no tool is held
	Tools            []*Tool
	ActiveItem       *Item

	CanMove bool
	Mount   *Tractor
}

// CurrentTool returns the held tool, or nil.
func (f *Farmer) CurrentTool() *Tool {
	if f.CurrentToolIndex < 0 || f.CurrentToolIndex >= len(f.Tools) {
		return nil
	}
	return f.Tools[f.CurrentToolIndex]
}

// Tile returns the tile the farmer is standing on.
func (f *Farmer) Tile() Tile {
	return f.Position.Tile()
}

// IsRiding reports whether the farmer is mounted on the given tractor.
func (f *Farmer) IsRiding(t *Tractor) bool {
	return f.Mount != nil && f.Mount == t
}
