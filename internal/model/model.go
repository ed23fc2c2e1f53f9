// Package model defines the gorm table schema for the session journal.
package model

import (
	"time"

	"gorm.io/datatypes"
)

// DatabaseModels lists every struct migrated into the database schema.
var DatabaseModels = []interface{}{
	&Session{},
	&DispatchCycle{},
	&TileEffect{},
	&RiderState{},
}

// Session is one sitting of the mod.
type Session struct {
	ID          string `gorm:"primaryKey"`
	FarmName    string
	StartedAt   time.Time
	EndedAt     time.Time
	Distance    int
	Interval    uint
	Attachments datatypes.JSON // configured attachment names, in priority order
}

// DispatchCycle is one firing of the dispatch loop.
type DispatchCycle struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	SessionID      string `gorm:"index"`
	Tick           uint64
	Time           time.Time
	OriginX        int
	OriginY        int
	Eligible       int
	TilesExamined  int
	EffectsApplied int
	DurationMicros int64
}

// TileEffect is one attachment claiming one tile.
type TileEffect struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	SessionID  string `gorm:"index"`
	Tick       uint64
	Time       time.Time
	TileX      int
	TileY      int
	Attachment string `gorm:"index"`
	Object     string
	Feature    string
}

// RiderState is a periodic rider sample.
type RiderState struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	SessionID string `gorm:"index"`
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
