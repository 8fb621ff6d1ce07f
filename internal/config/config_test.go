package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	// Verify default learning config
	if cfg.Learning.DefaultRate != 0.1 {
		t.Errorf("Learning.DefaultRate = %v, want 0.1", cfg.Learning.DefaultRate)
	}
	if cfg.Learning.TrainingRate != 0.3 {
		t.Errorf("Learning.TrainingRate = %v, want 0.3", cfg.Learning.TrainingRate)
	}
	if cfg.Learning.TrainingMode {
		t.Error("Learning.TrainingMode should be false by default")
	}

	// Verify default simulation config
	if cfg.Simulation.TickIntervalMs != 500 {
		t.Errorf("Simulation.TickIntervalMs = %d, want 500", cfg.Simulation.TickIntervalMs)
	}
	if cfg.Simulation.AgentCount != 4 {
		t.Errorf("Simulation.AgentCount = %d, want 4", cfg.Simulation.AgentCount)
	}
	if cfg.Simulation.TasksPerTick != 1 {
		t.Errorf("Simulation.TasksPerTick = %d, want 1", cfg.Simulation.TasksPerTick)
	}

	// Verify default device config
	if cfg.Devices.Enabled {
		t.Error("Devices.Enabled should be false by default")
	}
	if cfg.Devices.CountPerType != 1 {
		t.Errorf("Devices.CountPerType = %d, want 1", cfg.Devices.CountPerType)
	}

	// Verify default logging config
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Dir != "" {
		t.Errorf("Logging.Dir = %q, want empty (stderr)", cfg.Logging.Dir)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if errs := Default().Validate(); len(errs) > 0 {
		t.Errorf("Default().Validate() = %v, want no errors", errs)
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := Default()
	if got := cfg.Simulation.TickInterval(); got != 500*time.Millisecond {
		t.Errorf("TickInterval() = %v, want 500ms", got)
	}
	if got := cfg.Devices.ReadingInterval(); got != 2*time.Second {
		t.Errorf("ReadingInterval() = %v, want 2s", got)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "learning rate above one",
			mutate: func(c *Config) { c.Learning.DefaultRate = 1.5 },
			field:  "learning.default_rate",
		},
		{
			name:   "negative training rate",
			mutate: func(c *Config) { c.Learning.TrainingRate = -0.1 },
			field:  "learning.training_rate",
		},
		{
			name:   "zero tick interval",
			mutate: func(c *Config) { c.Simulation.TickIntervalMs = 0 },
			field:  "simulation.tick_interval_ms",
		},
		{
			name:   "zero agent count",
			mutate: func(c *Config) { c.Simulation.AgentCount = 0 },
			field:  "simulation.agent_count",
		},
		{
			name:   "negative max tasks",
			mutate: func(c *Config) { c.Simulation.MaxTasks = -1 },
			field:  "simulation.max_tasks",
		},
		{
			name:   "zero devices per type",
			mutate: func(c *Config) { c.Devices.CountPerType = 0 },
			field:  "devices.count_per_type",
		},
		{
			name:   "blank extra capability",
			mutate: func(c *Config) { c.Vocabulary.Extra = []string{"  "} },
			field:  "vocabulary.extra[0]",
		},
		{
			name:   "unknown log level",
			mutate: func(c *Config) { c.Logging.Level = "verbose" },
			field:  "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			if len(errs) == 0 {
				t.Fatal("Validate() = no errors, want at least one")
			}
			found := false
			for _, e := range errs {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() = %v, want error on field %s", errs, tt.field)
			}
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("empty ValidationErrors.Error() = %q, want empty", errs.Error())
		}
	})

	t.Run("single", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "learning.default_rate", Value: 1.5, Message: "must be between 0.0 and 1.0"},
		}
		want := "learning.default_rate: must be between 0.0 and 1.0 (got: 1.5)"
		if got := errs.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("multiple mentions count", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "a", Value: 1, Message: "bad"},
			{Field: "b", Value: 2, Message: "worse"},
		}
		got := errs.Error()
		if got == "" || got[0] != '2' {
			t.Errorf("Error() = %q, want message starting with the error count", got)
		}
	})
}

func TestLoadFromViperDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	SetDefaults()
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults: %v", err)
	}
	if cfg.Learning.DefaultRate != 0.1 {
		t.Errorf("Learning.DefaultRate = %v, want 0.1", cfg.Learning.DefaultRate)
	}
	if cfg.Simulation.TickIntervalMs != 500 {
		t.Errorf("Simulation.TickIntervalMs = %d, want 500", cfg.Simulation.TickIntervalMs)
	}
}

func TestLoadRejectsInvalidOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	SetDefaults()
	viper.Set("learning.default_rate", 2.0)

	if _, err := Load(); err == nil {
		t.Error("Load() with out-of-range learning rate = nil error, want validation failure")
	}
}

func TestConfigDirNotEmpty(t *testing.T) {
	if ConfigDir() == "" {
		t.Error("ConfigDir() = empty string")
	}
	if ConfigFile() == "" {
		t.Error("ConfigFile() = empty string")
	}
}
