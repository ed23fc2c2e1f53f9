// internal/game/farm_map.go
package game

import "sync"

// FarmMap is an in-memory Location used by the sim harness and tests.
// Tile lookups are on the dispatch hot path, so contents are kept in maps
// rather than re-scanned per query.
type FarmMap struct {
	name string

	mu       sync.Mutex
	objects  map[Tile]Object
	features map[Tile]TerrainFeature
	crops    []*Crop
}

func NewFarmMap(name string) *FarmMap {
	return &FarmMap{
		name:     name,
		objects:  make(map[Tile]Object),
		features: make(map[Tile]TerrainFeature),
	}
}

func (m *FarmMap) Name() string { return m.name }

func (m *FarmMap) ObjectAt(t Tile) Object {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.objects[t]
}

func (m *FarmMap) FeatureAt(t Tile) TerrainFeature {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.features[t]
}

func (m *FarmMap) Crops() []*Crop {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.crops
}

// PlaceObject puts an object on a tile, replacing any existing one.
func (m *FarmMap) PlaceObject(t Tile, o Object) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[t] = o
}

// RemoveObject clears the object on a tile.
func (m *FarmMap) RemoveObject(t Tile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, t)
}

// SetFeature puts a terrain feature on a tile, replacing any existing one.
func (m *FarmMap) SetFeature(t Tile, f TerrainFeature) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.features[t] = f
}

// AddCrop registers a planted crop.
func (m *FarmMap) AddCrop(c *Crop) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.crops = append(m.crops, c)
}

// ObjectCount returns the number of placed objects.
func (m *FarmMap) ObjectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
