// internal/tractor/attachment.go

// Package tractor implements the tick-driven controller that fires attachment
// behaviors across the tile grid around the rider.
package tractor

import "github.com/karlo195/StardewMods/internal/game"

// Attachment is a pluggable per-tile behavior mounted on the tractor. The
// controller holds attachments in configured priority order and never
// inspects their concrete type.
type Attachment interface {
	// Name identifies the attachment in logs and the session journal.
	Name() string

	// RateLimit is the minimum number of ticks between successful
	// applications. Zero means the attachment may fire every dispatch cycle.
	RateLimit() uint

	// IsEnabled reports whether the attachment applies to the rider's current
	// tool, held item, and location.
	IsEnabled(rider *game.Farmer, tool *game.Tool, item *game.Item, loc game.Location) bool

	// Apply acts on one tile and reports whether it claimed it. Object and
	// feature may both be nil; that is a normal case, not an error.
	Apply(tile game.Tile, obj game.Object, feature game.TerrainFeature, rider *game.Farmer, tool *game.Tool, item *game.Item, loc game.Location) bool
}
