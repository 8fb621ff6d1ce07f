package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qfoxlabs/qfox/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify qfox configuration",
	Long: `View or modify qfox configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  qfox config set learning.default_rate 0.2
  qfox config set simulation.tick_interval_ms 250
  qfox config set devices.enabled true

Valid keys:
  learning.default_rate         - Learning rate in normal operation (0.0-1.0)
  learning.training_rate        - Learning rate in training mode (0.0-1.0)
  learning.training_mode        - Start with training mode enabled (true/false)
  scoring.log_breakdowns        - Log per-candidate score breakdowns (true/false)
  simulation.tick_interval_ms   - Simulator tick interval in milliseconds
  simulation.seed               - Outcome generator seed (0 = from the clock)
  simulation.agent_count        - Number of demo agents
  simulation.max_tasks          - Task outcome budget (0 = unlimited)
  simulation.tasks_per_tick     - Tasks generated per tick
  devices.enabled               - Attach the simulated device fleet (true/false)
  devices.count_per_type        - Devices per type
  devices.reading_interval_ms   - Device reading interval in milliseconds
  logging.dir                   - Log directory (empty logs to stderr)
  logging.level                 - Log level: debug, info, warn, error`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	fmt.Println("Current configuration:")
	fmt.Println()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Config file: (none - using defaults)\n")
	}
	fmt.Println()

	fmt.Println("learning:")
	fmt.Printf("  default_rate: %g\n", cfg.Learning.DefaultRate)
	fmt.Printf("  training_rate: %g\n", cfg.Learning.TrainingRate)
	fmt.Printf("  training_mode: %v\n", cfg.Learning.TrainingMode)

	fmt.Println("scoring:")
	fmt.Printf("  log_breakdowns: %v\n", cfg.Scoring.LogBreakdowns)

	fmt.Println("simulation:")
	fmt.Printf("  tick_interval_ms: %d\n", cfg.Simulation.TickIntervalMs)
	fmt.Printf("  seed: %d\n", cfg.Simulation.Seed)
	fmt.Printf("  agent_count: %d\n", cfg.Simulation.AgentCount)
	fmt.Printf("  max_tasks: %d\n", cfg.Simulation.MaxTasks)
	fmt.Printf("  tasks_per_tick: %d\n", cfg.Simulation.TasksPerTick)

	fmt.Println("devices:")
	fmt.Printf("  enabled: %v\n", cfg.Devices.Enabled)
	fmt.Printf("  count_per_type: %d\n", cfg.Devices.CountPerType)
	fmt.Printf("  reading_interval_ms: %d\n", cfg.Devices.ReadingIntervalMs)

	fmt.Println("logging:")
	fmt.Printf("  dir: %s\n", cfg.Logging.Dir)
	fmt.Printf("  level: %s\n", cfg.Logging.Level)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	// Validate the key exists
	validKeys := map[string]string{
		"learning.default_rate":       "float",
		"learning.training_rate":      "float",
		"learning.training_mode":      "bool",
		"scoring.log_breakdowns":      "bool",
		"simulation.tick_interval_ms": "int",
		"simulation.seed":             "int",
		"simulation.agent_count":      "int",
		"simulation.max_tasks":        "int",
		"simulation.tasks_per_tick":   "int",
		"devices.enabled":             "bool",
		"devices.count_per_type":      "int",
		"devices.reading_interval_ms": "int",
		"logging.dir":                 "string",
		"logging.level":               "string",
	}

	keyType, ok := validKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'qfox config set --help' to see valid keys", key)
	}

	// Validate the value based on type
	var typedValue interface{}
	switch keyType {
	case "string":
		if key == "logging.level" && !slices.Contains(config.ValidLogLevels(), strings.ToLower(value)) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(config.ValidLogLevels(), ", "))
		}
		typedValue = value
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = value == "true"
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal < 0 {
			return fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		typedValue = intVal
	case "float":
		floatVal, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected number", key)
		}
		if floatVal < 0 || floatVal > 1 {
			return fmt.Errorf("invalid value for %s: must be between 0.0 and 1.0", key)
		}
		typedValue = floatVal
	}

	// Ensure config directory exists
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set the value in viper
	viper.Set(key, typedValue)

	// Write to config file
	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Set %s = %v\n", key, typedValue)
	fmt.Printf("Config saved to %s\n", configFile)

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Println(config.ConfigFile())
	return nil
}
