package tractor

import (
	"github.com/karlo195/StardewMods/internal/game"
)

// stubAttachment is a scriptable attachment for dispatch tests.
type stubAttachment struct {
	name      string
	rateLimit uint
	enabled   bool

	// applyFn decides whether a tile is claimed; nil means never.
	applyFn func(tile game.Tile) bool

	applied []game.Tile
}

func (a *stubAttachment) Name() string    { return a.name }
func (a *stubAttachment) RateLimit() uint { return a.rateLimit }

func (a *stubAttachment) IsEnabled(*game.Farmer, *game.Tool, *game.Item, game.Location) bool {
	return a.enabled
}

func (a *stubAttachment) Apply(tile game.Tile, _ game.Object, _ game.TerrainFeature, _ *game.Farmer, _ *game.Tool, _ *game.Item, _ game.Location) bool {
	if a.applyFn == nil || !a.applyFn(tile) {
		return false
	}
	a.applied = append(a.applied, tile)
	return true
}

// claimAll makes every tile a hit.
func claimAll(game.Tile) bool { return true }

type stubInput struct {
	down map[string]bool
}

func (i *stubInput) IsDown(key string) bool { return i.down[key] }

type stubUI struct {
	menuOpen bool
}

func (u *stubUI) IsBlockingMenuOpen() bool { return u.menuOpen }

type stubBuffs struct {
	buffs map[string]*game.Buff
}

func newStubBuffs() *stubBuffs {
	return &stubBuffs{buffs: make(map[string]*game.Buff)}
}

func (b *stubBuffs) Find(id string) *game.Buff { return b.buffs[id] }
func (b *stubBuffs) Apply(buff *game.Buff)     { b.buffs[buff.ID] = buff }

type stubObject struct{ name string }

func (o *stubObject) Name() string { return o.name }

type stubFeature struct{ kind string }

func (f *stubFeature) Kind() string { return f.kind }

// newTestRig builds a mounted farmer on a farm map with the given attachments.
func newTestRig(cfg Config, attachments ...Attachment) (*Controller, *game.Farmer, *game.Tractor, *game.FarmMap) {
	farm := game.NewFarmMap("Farm")
	tractorEntity := &game.Tractor{Name: "Tractor", Location: farm, Position: game.Tile{X: 5, Y: 5}.Center()}
	rider := &game.Farmer{
		Name:             "Rider",
		Location:         farm,
		Position:         game.Tile{X: 5, Y: 5}.Center(),
		Stamina:          270,
		Health:           100,
		MaxHealth:        100,
		CurrentToolIndex: 0,
		Tools:            []*game.Tool{{Name: "Watering Can", HoldsWater: true, WaterLeft: 40}},
		CanMove:          true,
		Mount:            tractorEntity,
	}

	ctrl := NewController(cfg, tractorEntity, attachments, Dependencies{
		Rider: rider,
		Input: &stubInput{down: map[string]bool{}},
		UI:    &stubUI{},
		Buffs: newStubBuffs(),
	})
	return ctrl, rider, tractorEntity, farm
}
