// internal/model/core/session.go

// Package core holds the plain journal record types shared by all storage
// backends. They carry no persistence tags; the gorm mappings live in the
// parent model package.
package core

import "time"

// Session describes one sitting of the mod, from host launch to shutdown.
type Session struct {
	ID          string
	FarmName    string
	StartedAt   time.Time
	EndedAt     time.Time
	Distance    int
	Interval    uint
	Attachments []string
}
