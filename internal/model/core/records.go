// internal/model/core/records.go
package core

import "time"

// DispatchCycle summarizes one firing of the attachment dispatch loop.
type DispatchCycle struct {
	ID             uint
	SessionID      string
	Tick           uint64
	Time           time.Time
	OriginX        int
	OriginY        int
	Eligible       int
	TilesExamined  int
	EffectsApplied int
	Duration       time.Duration
}

// TileEffect records one attachment claiming one tile.
type TileEffect struct {
	ID         uint
	SessionID  string
	Tick       uint64
	Time       time.Time
	TileX      int
	TileY      int
	Attachment string
	Object     string
	Feature    string
}

// RiderState is a periodic sample of the rider while mounted.
type RiderState struct {
	ID        uint
	SessionID string
	Tick      uint64
	Time      time.Time
	X         float64
	Y         float64
	Facing    uint8
	Stamina   float64
	Health    int
	Location  string
	Riding    bool
}
