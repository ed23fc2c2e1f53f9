// internal/game/buffs.go
package game

import "time"

// Buff is a timed status effect on the rider.
type Buff struct {
	ID             string
	MagneticRadius int
	Speed          int
	Duration       time.Duration
	Source         string
}

// BuffRegistry is the host's active-buff collection.
type BuffRegistry interface {
	// Find returns the active buff with the given ID, or nil.
	Find(id string) *Buff

	// Apply adds a buff, replacing any existing buff with the same ID.
	Apply(b *Buff)
}

// Input exposes the host's pressed-key query.
type Input interface {
	IsDown(key string) bool
}

// UI exposes the host's menu state.
type UI interface {
	// IsBlockingMenuOpen reports whether a menu that suspends gameplay is open.
	IsBlockingMenuOpen() bool
}
