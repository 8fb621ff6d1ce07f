package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete qfox configuration
type Config struct {
	Learning   LearningConfig   `mapstructure:"learning"`
	Scoring    ScoringConfig    `mapstructure:"scoring"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Devices    DeviceConfig     `mapstructure:"devices"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// LearningConfig controls how confidence models learn from outcomes
type LearningConfig struct {
	// DefaultRate is the learning rate applied in normal operation
	DefaultRate float64 `mapstructure:"default_rate"`
	// TrainingRate is the elevated learning rate used in training mode
	TrainingRate float64 `mapstructure:"training_rate"`
	// TrainingMode starts the system with accelerated learning enabled
	TrainingMode bool `mapstructure:"training_mode"`
}

// ScoringConfig controls assignment scoring behavior.
// The factor weights themselves are fixed by the scoring contract; this
// only tunes what is reported around them.
type ScoringConfig struct {
	// LogBreakdowns emits a per-factor score breakdown at DEBUG level for
	// every ranked agent during assignment
	LogBreakdowns bool `mapstructure:"log_breakdowns"`
}

// SimulationConfig controls the workload simulator
type SimulationConfig struct {
	// TickIntervalMs is how often the simulator generates and assigns work
	// (in milliseconds)
	TickIntervalMs int `mapstructure:"tick_interval_ms"`
	// Seed seeds the outcome generator; 0 means seed from the clock
	Seed int64 `mapstructure:"seed"`
	// AgentCount is the number of demo agents registered at startup
	AgentCount int `mapstructure:"agent_count"`
	// MaxTasks stops the run after this many tasks complete (0 = run until
	// interrupted)
	MaxTasks int `mapstructure:"max_tasks"`
	// TasksPerTick is how many tasks the simulator creates each tick
	TasksPerTick int `mapstructure:"tasks_per_tick"`
}

// DeviceConfig controls the simulated device fleet
type DeviceConfig struct {
	// Enabled attaches a fleet of simulated devices to the run
	Enabled bool `mapstructure:"enabled"`
	// CountPerType is how many devices of each type to create
	CountPerType int `mapstructure:"count_per_type"`
	// ReadingIntervalMs is how often each device emits a reading
	// (in milliseconds)
	ReadingIntervalMs int `mapstructure:"reading_interval_ms"`
}

// VocabularyConfig extends the capability vocabulary
type VocabularyConfig struct {
	// Extra lists capability names added on top of the recommended
	// vocabulary. Any non-empty string is a valid capability.
	Extra []string `mapstructure:"extra"`
}

// LoggingConfig controls structured log output
type LoggingConfig struct {
	// Dir is the directory for the JSON log file; empty logs to stderr
	Dir string `mapstructure:"dir"`
	// Level is the minimum level to log: debug, info, warn, error
	Level string `mapstructure:"level"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Learning: LearningConfig{
			DefaultRate:  0.1,
			TrainingRate: 0.3,
			TrainingMode: false,
		},
		Scoring: ScoringConfig{
			LogBreakdowns: false,
		},
		Simulation: SimulationConfig{
			TickIntervalMs: 500,
			Seed:           0,
			AgentCount:     4,
			MaxTasks:       0,
			TasksPerTick:   1,
		},
		Devices: DeviceConfig{
			Enabled:           false,
			CountPerType:      1,
			ReadingIntervalMs: 2000,
		},
		Vocabulary: VocabularyConfig{
			Extra: []string{},
		},
		Logging: LoggingConfig{
			Dir:   "",
			Level: "info",
		},
	}
}

// TickInterval returns the simulator tick interval as a time.Duration
func (c *SimulationConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// ReadingInterval returns the device reading interval as a time.Duration
func (c *DeviceConfig) ReadingInterval() time.Duration {
	return time.Duration(c.ReadingIntervalMs) * time.Millisecond
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Learning defaults
	viper.SetDefault("learning.default_rate", defaults.Learning.DefaultRate)
	viper.SetDefault("learning.training_rate", defaults.Learning.TrainingRate)
	viper.SetDefault("learning.training_mode", defaults.Learning.TrainingMode)

	// Scoring defaults
	viper.SetDefault("scoring.log_breakdowns", defaults.Scoring.LogBreakdowns)

	// Simulation defaults
	viper.SetDefault("simulation.tick_interval_ms", defaults.Simulation.TickIntervalMs)
	viper.SetDefault("simulation.seed", defaults.Simulation.Seed)
	viper.SetDefault("simulation.agent_count", defaults.Simulation.AgentCount)
	viper.SetDefault("simulation.max_tasks", defaults.Simulation.MaxTasks)
	viper.SetDefault("simulation.tasks_per_tick", defaults.Simulation.TasksPerTick)

	// Device defaults
	viper.SetDefault("devices.enabled", defaults.Devices.Enabled)
	viper.SetDefault("devices.count_per_type", defaults.Devices.CountPerType)
	viper.SetDefault("devices.reading_interval_ms", defaults.Devices.ReadingIntervalMs)

	// Vocabulary defaults
	viper.SetDefault("vocabulary.extra", defaults.Vocabulary.Extra)

	// Logging defaults
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "qfox")
	}
	// Fall back to ~/.config/qfox
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qfox"
	}
	return filepath.Join(home, ".config", "qfox")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
