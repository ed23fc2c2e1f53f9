// Package handlers processes host callbacks: session lifecycle, world ticks,
// warps, and overlay draws.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/karlo195/StardewMods/internal/dispatcher"
	"github.com/karlo195/StardewMods/internal/game"
	"github.com/karlo195/StardewMods/internal/influx"
	"github.com/karlo195/StardewMods/internal/logging"
	"github.com/karlo195/StardewMods/internal/model/core"
	"github.com/karlo195/StardewMods/internal/parse"
	"github.com/karlo195/StardewMods/internal/session"
	"github.com/karlo195/StardewMods/internal/storage"
	"github.com/karlo195/StardewMods/internal/tractor"
	"github.com/karlo195/StardewMods/internal/util"
)

// Flusher is implemented by backends that can drain their write queues on
// demand.
type Flusher interface {
	Flush()
}

// Dependencies holds all dependencies needed by handlers.
type Dependencies struct {
	Controller *tractor.Controller
	Backend    storage.Backend
	Session    *session.Context
	LogManager *logging.SlogManager
	Influx     *influx.Manager

	// Locations resolves a host location name for warp handling. May be nil
	// when the host never warps.
	Locations func(name string) game.Location
}

// Service provides handler methods for processing host callbacks.
type Service struct {
	deps         Dependencies
	tick         atomic.Uint64
	writeLogFunc func(functionName, data, level string)
}

// NewService creates a new handler service.
func NewService(deps Dependencies) *Service {
	s := &Service{
		deps: deps,
	}
	s.writeLogFunc = func(functionName, data, level string) {
		if deps.LogManager != nil {
			deps.LogManager.WriteLog(functionName, data, level)
		}
	}
	return s
}

func (s *Service) writeLog(functionName, data, level string) {
	s.writeLogFunc(functionName, data, level)
}

// Register wires the handler methods into the dispatcher. Tick and draw stay
// synchronous; the host blocks on them every frame.
func (s *Service) Register(d *dispatcher.Dispatcher) {
	d.Register(":NEW:SESSION:", func(e dispatcher.Event) (any, error) {
		return s.HandleNewSession(e.Args)
	}, dispatcher.Logged())
	d.Register(":TICK:", func(e dispatcher.Event) (any, error) {
		return s.HandleTick(e.Args)
	})
	d.Register(":WARP:", func(e dispatcher.Event) (any, error) {
		return s.HandleWarp(e.Args)
	}, dispatcher.Logged())
	d.Register(":DRAW:", func(e dispatcher.Event) (any, error) {
		return s.HandleDraw(e.Args)
	})
	d.Register(":END:SESSION:", func(e dispatcher.Event) (any, error) {
		return s.HandleEndSession(e.Args)
	}, dispatcher.Logged())
	d.Register(":METRIC:", func(e dispatcher.Event) (any, error) {
		return s.HandleMetric(e.Args)
	}, dispatcher.Buffered(64))
	d.Register(":JOURNAL:FLUSH:", func(e dispatcher.Event) (any, error) {
		if f, ok := s.deps.Backend.(Flusher); ok {
			f.Flush()
		}
		return "flushed", nil
	}, dispatcher.Buffered(16))
}

// HandleNewSession begins a journal session.
// data[0] is the farm name, data[1] an optional attachment name array.
func (s *Service) HandleNewSession(data []string) (string, error) {
	functionName := ":NEW:SESSION:"

	if len(data) < 1 {
		return "", fmt.Errorf("%s: missing farm name", functionName)
	}
	farmName := util.FixEscapeQuotes(util.TrimQuotes(data[0]))

	var attachments []string
	if len(data) > 1 {
		var err error
		attachments, err = parse.StringArray(data[1])
		if err != nil {
			s.writeLog(functionName, fmt.Sprintf("Error parsing attachment list: %v", err), "ERROR")
			return "", err
		}
	}

	cfg := s.deps.Controller.Config()
	sess := s.deps.Session.Begin(farmName, cfg.Distance, cfg.TicksPerAction, attachments)
	s.tick.Store(0)

	if err := s.deps.Backend.StartSession(sess); err != nil {
		s.writeLog(functionName, fmt.Sprintf("Error starting session: %v", err), "ERROR")
		return "", err
	}

	s.writeLog(functionName, fmt.Sprintf("Session %s started on %q", sess.ID, farmName), "INFO")
	return sess.ID, nil
}

// HandleTick advances the controller one world tick and journals the dispatch
// cycle when one fires. Returns the number of effects applied.
func (s *Service) HandleTick(data []string) (int, error) {
	functionName := ":TICK:"

	tick := s.tick.Add(1)
	if len(data) > 0 {
		if v, err := parse.UintFromFloat(util.TrimQuotes(data[0])); err == nil {
			tick = v
			s.tick.Store(v)
		}
	}

	report := s.deps.Controller.Update()
	if report == nil {
		return 0, nil
	}

	now := time.Now()
	sessionID := s.deps.Session.ID()

	if err := s.deps.Backend.RecordDispatchCycle(&core.DispatchCycle{
		SessionID:      sessionID,
		Tick:           tick,
		Time:           now,
		OriginX:        report.Origin.X,
		OriginY:        report.Origin.Y,
		Eligible:       report.Eligible,
		TilesExamined:  report.TilesExamined,
		EffectsApplied: len(report.Effects),
		Duration:       report.Duration,
	}); err != nil {
		s.writeLog(functionName, fmt.Sprintf("Error recording dispatch cycle: %v", err), "ERROR")
	}

	for _, effect := range report.Effects {
		if err := s.deps.Backend.RecordTileEffect(&core.TileEffect{
			SessionID:  sessionID,
			Tick:       tick,
			Time:       now,
			TileX:      effect.Tile.X,
			TileY:      effect.Tile.Y,
			Attachment: effect.Attachment,
			Object:     effect.Object,
			Feature:    effect.Feature,
		}); err != nil {
			s.writeLog(functionName, fmt.Sprintf("Error recording tile effect: %v", err), "ERROR")
		}
	}

	s.recordRiderState(tick, now, sessionID)

	if s.deps.Influx != nil {
		err := s.deps.Influx.WriteCycleReport(context.Background(), sessionID, s.deps.Session.FarmName(), tick, report)
		if err != nil {
			s.writeLog(functionName, fmt.Sprintf("Error writing cycle metrics: %v", err), "ERROR")
		}
	}

	return len(report.Effects), nil
}

func (s *Service) recordRiderState(tick uint64, now time.Time, sessionID string) {
	rider := s.deps.Controller.Rider()
	state := &core.RiderState{
		SessionID: sessionID,
		Tick:      tick,
		Time:      now,
		X:         rider.Position.X,
		Y:         rider.Position.Y,
		Facing:    uint8(rider.Facing),
		Stamina:   rider.Stamina,
		Health:    rider.Health,
		Riding:    s.deps.Controller.IsRiding(),
	}
	if rider.Location != nil {
		state.Location = rider.Location.Name()
	}
	if err := s.deps.Backend.RecordRiderState(state); err != nil {
		s.writeLog(":TICK:", fmt.Sprintf("Error recording rider state: %v", err), "ERROR")
	}
}

// HandleWarp moves the tractor to a new location.
// data[0] is the old location name, data[1] the new one, data[2] the
// destination tile "x,y".
func (s *Service) HandleWarp(data []string) (string, error) {
	functionName := ":WARP:"

	if len(data) < 3 {
		return "", fmt.Errorf("%s: want old location, new location, tile", functionName)
	}
	if s.deps.Locations == nil {
		return "", fmt.Errorf("%s: no location resolver configured", functionName)
	}

	oldName := util.TrimQuotes(data[0])
	newName := util.TrimQuotes(data[1])
	tile, err := parse.Tile(data[2])
	if err != nil {
		s.writeLog(functionName, fmt.Sprintf("Error parsing warp tile: %v", err), "ERROR")
		return "", err
	}

	oldLoc := s.deps.Locations(oldName)
	newLoc := s.deps.Locations(newName)
	if newLoc == nil {
		return "", fmt.Errorf("%s: unknown location %q", functionName, newName)
	}

	s.deps.Controller.OnLocationChanged(oldLoc, newLoc)
	s.deps.Controller.SetLocation(newLoc, tile)

	s.writeLog(functionName, fmt.Sprintf("Warped %s -> %s at %s", oldName, newName, tile), "DEBUG")
	return "ok", nil
}

// HandleMetric forwards a host-sent metric to InfluxDB.
// data[0] is the bucket, data[1] the measurement; the rest are tag::name::value
// and field::type::name::value entries.
func (s *Service) HandleMetric(data []string) (string, error) {
	functionName := ":METRIC:"

	if s.deps.Influx == nil {
		return "", nil
	}

	bucket, point, err := influx.ProcessMetricData(data, util.FixEscapeQuotes, util.TrimQuotes)
	if err != nil {
		s.writeLog(functionName, fmt.Sprintf("Error parsing metric: %v", err), "ERROR")
		return "", err
	}

	if err := s.deps.Influx.WritePoint(context.Background(), bucket, point); err != nil {
		s.writeLog(functionName, fmt.Sprintf("Error writing metric: %v", err), "ERROR")
		return "", err
	}
	return "ok", nil
}

// drawResponse is the JSON payload returned to the host renderer.
type drawResponse struct {
	Active bool         `json:"active"`
	Rects  [][4]float64 `json:"rects"`
}

// HandleDraw returns the coverage overlay as JSON rectangles in world pixels.
func (s *Service) HandleDraw(_ []string) (string, error) {
	overlay := s.deps.Controller.Coverage()

	resp := drawResponse{
		Active: overlay.Active,
		Rects:  make([][4]float64, 0, len(overlay.Bounds)),
	}
	for _, env := range overlay.Bounds {
		min, max, ok := env.MinMaxXYs()
		if !ok {
			continue
		}
		resp.Rects = append(resp.Rects, [4]float64{min.X, min.Y, max.X, max.Y})
	}

	out, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf(":DRAW: marshalling overlay: %w", err)
	}
	return string(out), nil
}

// HandleEndSession flushes and exports the session journal. Returns the
// exported file path when the backend produces one.
func (s *Service) HandleEndSession(_ []string) (string, error) {
	functionName := ":END:SESSION:"

	s.deps.Session.End()
	if err := s.deps.Backend.EndSession(); err != nil {
		s.writeLog(functionName, fmt.Sprintf("Error ending session: %v", err), "ERROR")
		return "", err
	}

	path := ""
	if u, ok := s.deps.Backend.(storage.Uploadable); ok {
		path = u.GetExportedFilePath()
	}

	s.writeLog(functionName, fmt.Sprintf("Session %s ended", s.deps.Session.ID()), "INFO")
	return path, nil
}
