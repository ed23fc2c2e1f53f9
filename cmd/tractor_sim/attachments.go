package main

import (
	"strings"

	"github.com/karlo195/StardewMods/internal/game"
)

// The demo attachments act on the concrete FarmMap so their effects are
// visible in the journal. Each one exercises a different eligibility rule:
// the scythe is unconditional, the axe is rate limited, and the watering can
// requires the matching tool.

// scytheAttachment mows grass and weeds.
type scytheAttachment struct{}

func (a *scytheAttachment) Name() string    { return "scythe" }
func (a *scytheAttachment) RateLimit() uint { return 0 }

func (a *scytheAttachment) IsEnabled(rider *game.Farmer, tool *game.Tool, item *game.Item, loc game.Location) bool {
	return true
}

func (a *scytheAttachment) Apply(tile game.Tile, obj game.Object, feature game.TerrainFeature, rider *game.Farmer, tool *game.Tool, item *game.Item, loc game.Location) bool {
	farm, ok := loc.(*game.FarmMap)
	if !ok {
		return false
	}
	if feature != nil && feature.Kind() == "grass" {
		farm.SetFeature(tile, nil)
		return true
	}
	if obj != nil && strings.HasPrefix(obj.Name(), "Weeds") {
		farm.RemoveObject(tile)
		return true
	}
	return false
}

// axeAttachment clears twigs and stumps, at most once per second of ticks.
type axeAttachment struct{}

func (a *axeAttachment) Name() string    { return "axe" }
func (a *axeAttachment) RateLimit() uint { return 60 }

func (a *axeAttachment) IsEnabled(rider *game.Farmer, tool *game.Tool, item *game.Item, loc game.Location) bool {
	return true
}

func (a *axeAttachment) Apply(tile game.Tile, obj game.Object, feature game.TerrainFeature, rider *game.Farmer, tool *game.Tool, item *game.Item, loc game.Location) bool {
	if obj == nil {
		return false
	}
	farm, ok := loc.(*game.FarmMap)
	if !ok {
		return false
	}
	switch obj.Name() {
	case "Twig", "Stump":
		farm.RemoveObject(tile)
		return true
	}
	return false
}

// wateringAttachment waters dry dirt while the watering can is held. The
// interaction transaction restores the can's water level afterwards, so
// riding waters for free.
type wateringAttachment struct{}

func (a *wateringAttachment) Name() string    { return "watering can" }
func (a *wateringAttachment) RateLimit() uint { return 0 }

func (a *wateringAttachment) IsEnabled(rider *game.Farmer, tool *game.Tool, item *game.Item, loc game.Location) bool {
	return tool != nil && tool.HoldsWater
}

func (a *wateringAttachment) Apply(tile game.Tile, obj game.Object, feature game.TerrainFeature, rider *game.Farmer, tool *game.Tool, item *game.Item, loc game.Location) bool {
	if feature == nil || feature.Kind() != "dirt:dry" || tool.WaterLeft <= 0 {
		return false
	}
	farm, ok := loc.(*game.FarmMap)
	if !ok {
		return false
	}
	tool.WaterLeft--
	farm.SetFeature(tile, soil{watered: true})
	return true
}

// soil is the tilled-dirt terrain feature.
type soil struct {
	watered bool
}

func (s soil) Kind() string {
	if s.watered {
		return "dirt:watered"
	}
	return "dirt:dry"
}

// prop is a named map object (twig, stump, weeds).
type prop struct {
	name string
}

func (p prop) Name() string { return p.name }

// grass is a mowable terrain feature.
type grass struct{}

func (grass) Kind() string { return "grass" }

const (
	farmWidth  = 30
	farmHeight = 20
)

// buildDemoFarm scatters debris, grass, and dry soil deterministically so
// runs are comparable.
func buildDemoFarm(name string) *game.FarmMap {
	farm := game.NewFarmMap(name)

	for y := 0; y < farmHeight; y++ {
		for x := 0; x < farmWidth; x++ {
			tile := game.Tile{X: x, Y: y}
			switch (x*7 + y*13) % 11 {
			case 0:
				farm.SetFeature(tile, grass{})
			case 1:
				farm.SetFeature(tile, soil{})
			case 2:
				farm.PlaceObject(tile, prop{name: "Twig"})
			case 3:
				farm.PlaceObject(tile, prop{name: "Weeds"})
			case 4:
				if (x+y)%3 == 0 {
					farm.PlaceObject(tile, prop{name: "Stump"})
				}
			}
		}
	}

	// A few trellis crops for the passthrough feature.
	for i := 0; i < 5; i++ {
		farm.AddCrop(&game.Crop{Kind: "Green Bean", Raised: true, Impassable: true})
	}
	return farm
}
