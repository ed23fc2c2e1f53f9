// internal/game/tractor.go
package game

// Tractor is the rideable vehicle entity.
type Tractor struct {
	Name     string
	Location Location
	Position Position
}

// Tile returns the tile the tractor occupies.
func (t *Tractor) Tile() Tile {
	return t.Position.Tile()
}

// SetLocation repositions the tractor. The host's standard warp fails in some
// subworlds (festival maps, caves), so the controller calls this directly.
func (t *Tractor) SetLocation(loc Location, tile Tile) {
	t.Location = loc
	t.Position = tile.Center()
}
