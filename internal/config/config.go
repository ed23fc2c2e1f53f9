package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/karlo195/StardewMods/internal/tractor"
)

// StorageConfig holds journal storage backend settings
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
	Sqlite SqliteConfig `json:"sqlite" mapstructure:"sqlite"`
}

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SqliteConfig holds SQLite storage backend settings
type SqliteConfig struct {
	DumpInterval string `json:"dumpInterval" mapstructure:"dumpInterval"`
	DumpPath     string `json:"dumpPath" mapstructure:"dumpPath"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./tractorlogs")

	// controller behavior
	viper.SetDefault("tractor.distance", 1)
	viper.SetDefault("tractor.ticksPerAction", tractor.DefaultTicksPerAction)
	viper.SetDefault("tractor.invincibility", false)
	viper.SetDefault("tractor.passThroughTrellis", false)
	viper.SetDefault("tractor.magneticRadius", 384)
	viper.SetDefault("tractor.speed", 2)
	viper.SetDefault("tractor.holdToActivate", []string{})

	// session journal
	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./sessions")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.sqlite.dumpInterval", "3m")
	viper.SetDefault("storage.sqlite.dumpPath", "./sessions")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "tractor")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "tractor-metrics")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "tractor-extension")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetConfigName("tractor.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetTractorConfig returns the controller's slice of the configuration.
func GetTractorConfig() tractor.Config {
	return tractor.Config{
		Distance:           viper.GetInt("tractor.distance"),
		TicksPerAction:     uint(viper.GetUint32("tractor.ticksPerAction")),
		Invincibility:      viper.GetBool("tractor.invincibility"),
		PassThroughTrellis: viper.GetBool("tractor.passThroughTrellis"),
		MagneticRadius:     viper.GetInt("tractor.magneticRadius"),
		TractorSpeed:       viper.GetInt("tractor.speed"),
		HoldToActivate:     viper.GetStringSlice("tractor.holdToActivate"),
	}
}

// GetStorageConfig returns the journal storage configuration.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		Sqlite: SqliteConfig{
			DumpInterval: viper.GetString("storage.sqlite.dumpInterval"),
			DumpPath:     viper.GetString("storage.sqlite.dumpPath"),
		},
	}
}

// GetOTelConfig returns the OpenTelemetry configuration.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
