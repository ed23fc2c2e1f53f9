// internal/game/location.go
package game

// Object is an item placed on a tile (fence, weed, chest...). The controller
// never inspects objects beyond passing them to attachments.
type Object interface {
	Name() string
}

// TerrainFeature is ground-level state on a tile (tilled dirt, tree, grass...).
type TerrainFeature interface {
	Kind() string
}

// Crop is a planted crop. Raised crops (trellises) normally block movement;
// the pass-through feature flips Impassable while the tractor is ridden.
type Crop struct {
	Kind       string
	Raised     bool
	Impassable bool
}

// Location is the host's view of one in-game map.
type Location interface {
	Name() string

	// ObjectAt returns the object on the tile, or nil.
	ObjectAt(t Tile) Object

	// FeatureAt returns the terrain feature on the tile, or nil.
	FeatureAt(t Tile) TerrainFeature

	// Crops enumerates every planted crop in the location.
	Crops() []*Crop
}
