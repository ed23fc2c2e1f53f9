// Command tractor_sim drives the extension the way the host game would: it
// loads the config, wires logging, storage, and the dispatcher, then feeds
// tick, warp, and draw callbacks over a generated farm.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/karlo195/StardewMods/internal/config"
	"github.com/karlo195/StardewMods/internal/dispatcher"
	"github.com/karlo195/StardewMods/internal/game"
	"github.com/karlo195/StardewMods/internal/handlers"
	"github.com/karlo195/StardewMods/internal/influx"
	"github.com/karlo195/StardewMods/internal/logging"
	intOtel "github.com/karlo195/StardewMods/internal/otel"
	"github.com/karlo195/StardewMods/internal/session"
	"github.com/karlo195/StardewMods/internal/storage"
	"github.com/karlo195/StardewMods/internal/tractor"
)

var (
	CurrentExtensionVersion string = "0.0.1"
	BuildDate               string = "unknown"

	ExtensionName string = "tractor_sim"
)

var (
	SlogManager  *logging.SlogManager
	Logger       *slog.Logger
	OTelProvider *intOtel.Provider

	SessionStartTime time.Time = time.Now()

	sessionCtx      *session.Context
	storageBackend  storage.Backend
	handlerService  *handlers.Service
	eventDispatcher *dispatcher.Dispatcher
)

func main() {
	configDir := flag.String("config", ".", "directory containing tractor.cfg.json")
	ticks := flag.Int("ticks", 600, "number of world ticks to simulate")
	farmName := flag.String("farm", "Sunrise Farm", "farm name for the session")
	flag.Parse()

	// Logging starts on stdout only; the file handler is added once the
	// config names the logs directory.
	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(nil, viper.GetString("logLevel"), nil)
	Logger = SlogManager.Logger()

	if err := config.Load(*configDir); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config")
	}

	logsDir := viper.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		os.Mkdir(logsDir, 0755)
	}

	logFilePath := logging.LogFilePath(logsDir, ExtensionName, SessionStartTime)
	logFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", logFilePath)
	}

	// Initialize OTel provider if enabled (after log file is created)
	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    logFile,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
		}
	}

	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
	}
	SlogManager.Setup(logFile, viper.GetString("logLevel"), otelLogProvider)
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", logFilePath, "version", CurrentExtensionVersion, "buildDate", BuildDate)

	sessionCtx = session.NewContext()
	SlogManager.GetSessionID = func() string { return sessionCtx.ID() }
	SlogManager.GetFarmName = func() string { return sessionCtx.FarmName() }

	if err := run(*ticks, *farmName); err != nil {
		Logger.Error("Simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(ticks int, farmName string) error {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	storageCfg := config.GetStorageConfig()
	backend, err := createStorageBackend(storageCfg, zlog)
	if err != nil {
		return fmt.Errorf("creating storage backend: %w", err)
	}
	storageBackend = backend
	if err := storageBackend.Init(); err != nil {
		return fmt.Errorf("initializing storage backend: %w", err)
	}
	defer storageBackend.Close()

	if local, ok := storageBackend.(storage.LocalAware); ok {
		SlogManager.IsUsingLocalDB = local.UsingLocalDB
	}

	var influxManager *influx.Manager
	if viper.GetBool("influx.enabled") {
		backupPath := filepath.Join(viper.GetString("logsDir"), "influx_backup.log.gz")
		influxManager = influx.NewManager(zlog, backupPath)
		if err := influxManager.Connect(); err != nil {
			Logger.Warn("InfluxDB disabled", "error", err)
			influxManager = nil
		}
	}

	// World setup: a farm with mowable, choppable, and waterable tiles, and
	// a barn to warp into.
	farm := buildDemoFarm(farmName)
	barn := game.NewFarmMap("Barn")
	locations := map[string]game.Location{farmName: farm, "Barn": barn}

	entity := &game.Tractor{Name: "Tractor", Location: farm, Position: game.Tile{X: 8, Y: 8}.Center()}
	rider := &game.Farmer{
		Name:             "Rider",
		Location:         farm,
		Position:         game.Tile{X: 8, Y: 8}.Center(),
		Stamina:          270,
		Health:           100,
		MaxHealth:        100,
		CurrentToolIndex: 0,
		Tools: []*game.Tool{
			{Name: "Watering Can", HoldsWater: true, WaterLeft: 40},
		},
		CanMove: true,
		Mount:   entity,
	}

	world := &simWorld{}
	ctrl := tractor.NewController(
		config.GetTractorConfig(),
		entity,
		[]tractor.Attachment{
			&scytheAttachment{},
			&axeAttachment{},
			&wateringAttachment{},
		},
		tractor.Dependencies{
			Rider:  rider,
			Input:  world,
			UI:     world,
			Buffs:  world,
			Logger: Logger,
		},
	)

	dispatcherLogger := logging.NewDispatcherLogger(zlog)
	eventDispatcher, err = dispatcher.New(dispatcherLogger)
	if err != nil {
		return fmt.Errorf("creating dispatcher: %w", err)
	}

	handlerService = handlers.NewService(handlers.Dependencies{
		Controller: ctrl,
		Backend:    storageBackend,
		Session:    sessionCtx,
		LogManager: SlogManager,
		Influx:     influxManager,
		Locations:  func(name string) game.Location { return locations[name] },
	})
	handlerService.Register(eventDispatcher)

	if _, err := eventDispatcher.Dispatch(dispatcher.Event{
		Command: ":NEW:SESSION:",
		Args:    []string{fmt.Sprintf("%q", farmName), `["scythe","axe","watering can"]`},
	}); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	start := time.Now()
	for tick := 1; tick <= ticks; tick++ {
		driveRider(rider, farm, tick)

		if _, err := eventDispatcher.Dispatch(dispatcher.Event{Command: ":TICK:"}); err != nil {
			Logger.Error("Tick failed", "tick", tick, "error", err)
		}

		// The host redraws the overlay every frame; sampling once a second
		// keeps the sim output readable.
		if tick%60 == 0 {
			if out, err := eventDispatcher.Dispatch(dispatcher.Event{Command: ":DRAW:"}); err == nil {
				Logger.Debug("Overlay", "tick", tick, "payload", out)
			}

			avgTickMs := float64(time.Since(start).Microseconds()) / float64(tick) / 1000
			if _, err := eventDispatcher.Dispatch(dispatcher.Event{
				Command: ":METRIC:",
				Args: []string{
					fmt.Sprintf("%q", influx.BucketHost),
					`"host_frame"`,
					fmt.Sprintf(`"tag::farm::%s"`, farmName),
					fmt.Sprintf(`"field::float::avgTickMs::%0.3f"`, avgTickMs),
				},
			}); err != nil {
				Logger.Debug("Metric dropped", "tick", tick, "error", err)
			}
		}

		// Detour through the barn partway in to exercise the warp path.
		if tick == ticks/2 {
			warp(farmName, "Barn", game.Tile{X: 2, Y: 2})
			rider.Location = barn
			rider.Position = game.Tile{X: 2, Y: 2}.Center()
		}
		if tick == ticks/2+60 {
			warp("Barn", farmName, game.Tile{X: 8, Y: 8})
			rider.Location = farm
			rider.Position = game.Tile{X: 8, Y: 8}.Center()
		}
	}
	Logger.Info("Simulation complete",
		"ticks", ticks,
		"duration", time.Since(start),
		"objectsLeft", farm.ObjectCount())

	out, err := eventDispatcher.Dispatch(dispatcher.Event{Command: ":END:SESSION:"})
	if err != nil {
		return fmt.Errorf("ending session: %w", err)
	}
	if path, ok := out.(string); ok && path != "" {
		Logger.Info("Session journal exported", "path", path)
	}

	if OTelProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := OTelProvider.Shutdown(ctx); err != nil {
			Logger.Error("OTel shutdown failed", "error", err)
		}
	}
	return nil
}

func warp(from, to string, tile game.Tile) {
	_, err := eventDispatcher.Dispatch(dispatcher.Event{
		Command: ":WARP:",
		Args:    []string{fmt.Sprintf("%q", from), fmt.Sprintf("%q", to), fmt.Sprintf("%q", tile)},
	})
	if err != nil {
		Logger.Error("Warp failed", "from", from, "to", to, "error", err)
	}
}

// driveRider sweeps the rider across the farm row by row, four pixels per
// tick, so dispatch cycles cover fresh tiles.
func driveRider(rider *game.Farmer, farm *game.FarmMap, tick int) {
	if rider.Location != farm {
		return
	}
	rider.Position.X += 4
	if rider.Position.X > farmWidth*game.TileSize {
		rider.Position.X = 0
		rider.Position.Y += game.TileSize
		if rider.Position.Y > farmHeight*game.TileSize {
			rider.Position.Y = 0
		}
	}
	if rider.Mount != nil {
		rider.Mount.Position = rider.Position
	}
}

// simWorld is the host stand-in: no keys held, no menus open, and a plain
// map-backed buff collection.
type simWorld struct {
	buffs []*game.Buff
}

func (w *simWorld) IsDown(string) bool       { return false }
func (w *simWorld) IsBlockingMenuOpen() bool { return false }

func (w *simWorld) Find(id string) *game.Buff {
	for _, b := range w.buffs {
		if b.ID == id {
			return b
		}
	}
	return nil
}
func (w *simWorld) Apply(b *game.Buff) {
	w.buffs = append(w.buffs, b)
}
