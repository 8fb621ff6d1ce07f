package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "learning.default_rate")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateLearning()...)
	errors = append(errors, c.validateSimulation()...)
	errors = append(errors, c.validateDevices()...)
	errors = append(errors, c.validateVocabulary()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateLearning validates the LearningConfig
func (c *Config) validateLearning() []ValidationError {
	var errors []ValidationError

	if c.Learning.DefaultRate < 0 || c.Learning.DefaultRate > 1 {
		errors = append(errors, ValidationError{
			Field:   "learning.default_rate",
			Value:   c.Learning.DefaultRate,
			Message: "must be between 0.0 and 1.0",
		})
	}

	if c.Learning.TrainingRate < 0 || c.Learning.TrainingRate > 1 {
		errors = append(errors, ValidationError{
			Field:   "learning.training_rate",
			Value:   c.Learning.TrainingRate,
			Message: "must be between 0.0 and 1.0",
		})
	}

	return errors
}

// validateSimulation validates the SimulationConfig
func (c *Config) validateSimulation() []ValidationError {
	var errors []ValidationError

	if c.Simulation.TickIntervalMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "simulation.tick_interval_ms",
			Value:   c.Simulation.TickIntervalMs,
			Message: "must be positive",
		})
	}

	if c.Simulation.AgentCount <= 0 {
		errors = append(errors, ValidationError{
			Field:   "simulation.agent_count",
			Value:   c.Simulation.AgentCount,
			Message: "must be positive",
		})
	}

	if c.Simulation.MaxTasks < 0 {
		errors = append(errors, ValidationError{
			Field:   "simulation.max_tasks",
			Value:   c.Simulation.MaxTasks,
			Message: "must be non-negative (0 runs until interrupted)",
		})
	}

	if c.Simulation.TasksPerTick <= 0 {
		errors = append(errors, ValidationError{
			Field:   "simulation.tasks_per_tick",
			Value:   c.Simulation.TasksPerTick,
			Message: "must be positive",
		})
	}

	return errors
}

// validateDevices validates the DeviceConfig
func (c *Config) validateDevices() []ValidationError {
	var errors []ValidationError

	if c.Devices.CountPerType <= 0 {
		errors = append(errors, ValidationError{
			Field:   "devices.count_per_type",
			Value:   c.Devices.CountPerType,
			Message: "must be positive",
		})
	}

	if c.Devices.ReadingIntervalMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "devices.reading_interval_ms",
			Value:   c.Devices.ReadingIntervalMs,
			Message: "must be positive",
		})
	}

	return errors
}

// validateVocabulary validates the VocabularyConfig
func (c *Config) validateVocabulary() []ValidationError {
	var errors []ValidationError

	for i, name := range c.Vocabulary.Extra {
		if strings.TrimSpace(name) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("vocabulary.extra[%d]", i),
				Value:   name,
				Message: "capability name must not be blank",
			})
		}
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
