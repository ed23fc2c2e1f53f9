// Package convert maps core journal records onto gorm models.
package convert

import (
	"encoding/json"

	"github.com/karlo195/StardewMods/internal/model"
	"github.com/karlo195/StardewMods/internal/model/core"
)

// SessionToGorm converts a core session, marshalling the attachment list
// into the JSON column.
func SessionToGorm(s *core.Session) (model.Session, error) {
	attachments, err := json.Marshal(s.Attachments)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{
		ID:          s.ID,
		FarmName:    s.FarmName,
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
		Distance:    s.Distance,
		Interval:    s.Interval,
		Attachments: attachments,
	}, nil
}

// DispatchCycleToGorm converts a core dispatch cycle.
func DispatchCycleToGorm(c *core.DispatchCycle) model.DispatchCycle {
	return model.DispatchCycle{
		SessionID:      c.SessionID,
		Tick:           c.Tick,
		Time:           c.Time,
		OriginX:        c.OriginX,
		OriginY:        c.OriginY,
		Eligible:       c.Eligible,
		TilesExamined:  c.TilesExamined,
		EffectsApplied: c.EffectsApplied,
		DurationMicros: c.Duration.Microseconds(),
	}
}

// TileEffectToGorm converts a core tile effect.
func TileEffectToGorm(e *core.TileEffect) model.TileEffect {
	return model.TileEffect{
		SessionID:  e.SessionID,
		Tick:       e.Tick,
		Time:       e.Time,
		TileX:      e.TileX,
		TileY:      e.TileY,
		Attachment: e.Attachment,
		Object:     e.Object,
		Feature:    e.Feature,
	}
}

// RiderStateToGorm converts a core rider sample.
func RiderStateToGorm(r *core.RiderState) model.RiderState {
	return model.RiderState{
		SessionID: r.SessionID,
		Tick:      r.Tick,
		Time:      r.Time,
		X:         r.X,
		Y:         r.Y,
		Facing:    r.Facing,
		Stamina:   r.Stamina,
		Health:    r.Health,
		Location:  r.Location,
		Riding:    r.Riding,
	}
}
