// internal/tractor/controller.go
package tractor

import (
	"log/slog"
	"time"

	"github.com/karlo195/StardewMods/internal/game"
	"github.com/karlo195/StardewMods/internal/grid"
)

const (
	// DefaultTicksPerAction fires a dispatch cycle roughly five times per
	// second at the host's 60 ticks/second.
	DefaultTicksPerAction = 12

	// BuffID identifies the riding buff in the host's buff registry.
	BuffID = "karlo195.tractor"

	// buffDuration keeps the buff alive barely longer than one tick, so it
	// expires on its own within a tick of dismounting.
	buffDuration = 100 * time.Millisecond
)

// Config is the controller's slice of the mod configuration.
type Config struct {
	Distance           int
	TicksPerAction     uint
	Invincibility      bool
	PassThroughTrellis bool
	MagneticRadius     int
	TractorSpeed       int
	HoldToActivate     []string
}

// Dependencies holds the host collaborators the controller consumes.
type Dependencies struct {
	Rider  *game.Farmer
	Input  game.Input
	UI     game.UI
	Buffs  game.BuffRegistry
	Logger *slog.Logger
}

// Controller animates one tractor: it maintains the riding buff and optional
// invincibility every tick, and every TicksPerAction ticks dispatches the
// eligible attachments over the tile grid around the rider.
type Controller struct {
	cfg      Config
	deps     Dependencies
	tractor  *game.Tractor
	selector *Selector

	skippedTicks uint
	wasRiding    bool
	cachedHealth int

	// Crop kinds whose passability was flipped by the trellis feature, so
	// the warp handler knows which crops to revert.
	raisedCropKinds map[string]struct{}
}

func NewController(cfg Config, t *game.Tractor, attachments []Attachment, deps Dependencies) *Controller {
	if cfg.TicksPerAction == 0 {
		cfg.TicksPerAction = DefaultTicksPerAction
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Controller{
		cfg:             cfg,
		deps:            deps,
		tractor:         t,
		selector:        NewSelector(attachments, cfg.TicksPerAction),
		raisedCropKinds: make(map[string]struct{}),
	}
}

// Config returns the controller's effective configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Rider returns the farmer this controller serves.
func (c *Controller) Rider() *game.Farmer {
	return c.deps.Rider
}

// IsRiding reports whether the rider is currently mounted on this tractor.
func (c *Controller) IsRiding() bool {
	return c.deps.Rider.IsRiding(c.tractor)
}

// IsEnabled reports whether dispatch may fire. With no hold-to-activate keys
// configured the controller is automatic: always enabled while riding.
func (c *Controller) IsEnabled() bool {
	if !c.IsRiding() {
		return false
	}
	if len(c.cfg.HoldToActivate) == 0 {
		return true
	}
	for _, key := range c.cfg.HoldToActivate {
		if c.deps.Input.IsDown(key) {
			return true
		}
	}
	return false
}

// Update runs once per world tick while the tractor exists, regardless of
// riding state. It returns a report when a dispatch cycle fired, else nil.
func (c *Controller) Update() *CycleReport {
	rider := c.deps.Rider

	riding := c.IsRiding()
	if riding && !c.wasRiding {
		c.cachedHealth = rider.Health
	}
	c.wasRiding = riding

	if !riding || c.deps.UI.IsBlockingMenuOpen() {
		return nil
	}

	if c.cfg.Invincibility {
		c.suppressDamage(rider)
	}
	c.maintainBuff()
	if c.cfg.PassThroughTrellis {
		c.applyTrellisPassthrough(rider.Location)
	}

	// Action-interval state machine: the counter lives in [0, ticksPerAction)
	// and resets only on reaching the interval, so a dispatch opportunity is
	// never dropped.
	c.skippedTicks++
	if c.skippedTicks < c.cfg.TicksPerAction {
		return nil
	}
	c.skippedTicks = 0

	if !c.IsEnabled() {
		return nil
	}
	return c.dispatch()
}

// suppressDamage clamps rider health to the value cached when mounting and
// clears the host's mercy-invincibility state every tick, so damage taken
// while riding is continuously undone rather than merely reduced.
func (c *Controller) suppressDamage(rider *game.Farmer) {
	if rider.Health > c.cachedHealth {
		c.cachedHealth = rider.Health
	} else if rider.Health < c.cachedHealth {
		c.deps.Logger.Debug("restoring rider health", "from", rider.Health, "to", c.cachedHealth)
		rider.Health = c.cachedHealth
	}
	rider.TemporarilyInvincible = false
	rider.InvincibilityTimer = 0
}

// maintainBuff creates the riding buff once and then re-arms its short
// duration every tick while mounted.
func (c *Controller) maintainBuff() {
	if buff := c.deps.Buffs.Find(BuffID); buff != nil {
		buff.Duration = buffDuration
		return
	}
	c.deps.Buffs.Apply(&game.Buff{
		ID:             BuffID,
		MagneticRadius: c.cfg.MagneticRadius,
		Speed:          c.cfg.TractorSpeed,
		Duration:       buffDuration,
		Source:         c.tractor.Name,
	})
}

// applyTrellisPassthrough makes raised crops in the current location passable
// and remembers their kinds so OnLocationChanged can revert them.
func (c *Controller) applyTrellisPassthrough(loc game.Location) {
	if loc == nil {
		return
	}
	for _, crop := range loc.Crops() {
		if crop.Raised && crop.Impassable {
			crop.Impassable = false
			c.raisedCropKinds[crop.Kind] = struct{}{}
		}
	}
}

// OnLocationChanged reverts the trellis passthrough in the location being
// left. Crops in the new location are deliberately left alone; they are
// re-flagged lazily by the next Update in that location.
func (c *Controller) OnLocationChanged(old, _ game.Location) {
	if !c.cfg.PassThroughTrellis || !c.IsRiding() || old == nil {
		return
	}
	for _, crop := range old.Crops() {
		if !crop.Raised {
			continue
		}
		if _, ok := c.raisedCropKinds[crop.Kind]; ok {
			crop.Impassable = true
		}
	}
}

// SetLocation warps the tractor entity directly.
func (c *Controller) SetLocation(loc game.Location, tile game.Tile) {
	c.tractor.SetLocation(loc, tile)
}

// dispatch runs one cycle: resolve the eligible attachments, walk the tile
// grid around the rider inside an interaction transaction, and let the first
// attachment that claims each tile win it.
func (c *Controller) dispatch() *CycleReport {
	rider := c.deps.Rider
	loc := rider.Location
	tool := rider.CurrentTool()
	item := rider.ActiveItem

	eligible := c.selector.ResolveEligible(rider, tool, item, loc)
	if len(eligible) == 0 {
		return nil
	}

	origin := rider.Tile()
	tiles := grid.Generate(origin, c.cfg.Distance)

	report := &CycleReport{
		Origin:        origin,
		Eligible:      len(eligible),
		TilesExamined: len(tiles),
	}

	start := time.Now()
	_ = RunExclusive(rider, func() error {
		for _, tile := range tiles {
			obj := loc.ObjectAt(tile)
			feature := loc.FeatureAt(tile)
			facing := grid.DirectionToward(origin, tile)

			for _, cand := range eligible {
				// Many interaction rules only trigger toward the faced
				// tile; stand the rider one tile back and face it. Not
				// restored between tiles, only by the transaction.
				rider.Facing = facing
				rider.Position = grid.ApproachPosition(tile, facing)

				if cand.attachment.Apply(tile, obj, feature, rider, tool, item, loc) {
					c.selector.Ledger().Reset(cand.index, cand.attachment.RateLimit())
					report.Effects = append(report.Effects, TileEffect{
						Tile:       tile,
						Attachment: cand.attachment.Name(),
						Object:     objectName(obj),
						Feature:    featureKind(feature),
					})
					break
				}
			}
		}
		return nil
	})
	report.Duration = time.Since(start)

	if len(report.Effects) > 0 {
		c.deps.Logger.Debug("dispatch cycle complete",
			"origin", origin, "tiles", len(tiles), "effects", len(report.Effects))
	}
	return report
}

func objectName(o game.Object) string {
	if o == nil {
		return ""
	}
	return o.Name()
}

func featureKind(f game.TerrainFeature) string {
	if f == nil {
		return ""
	}
	return f.Kind()
}
