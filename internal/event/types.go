// Package event defines the events the assignment core emits while it runs.
// Events decouple the core from its observers: loggers, dashboards, and the
// simulator subscribe to the bus instead of being called directly, keeping
// the learning and scoring paths pure with respect to their contracts.
package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "task.assigned", "confidence.updated")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Task Lifecycle Events
// -----------------------------------------------------------------------------

// TaskAssignedEvent is emitted when the controller assigns a task to an agent.
type TaskAssignedEvent struct {
	baseEvent
	TaskID  string  // Assigned task
	AgentID string  // Winning agent
	Score   float64 // Fitness score the agent won with
}

// NewTaskAssignedEvent creates a TaskAssignedEvent.
func NewTaskAssignedEvent(taskID, agentID string, score float64) TaskAssignedEvent {
	return TaskAssignedEvent{
		baseEvent: newBaseEvent("task.assigned"),
		TaskID:    taskID,
		AgentID:   agentID,
		Score:     score,
	}
}

// TaskUnassignableEvent is emitted when no registered agent is eligible for
// a task. This is a defined outcome, not an error.
type TaskUnassignableEvent struct {
	baseEvent
	TaskID string // Task that could not be placed
	Reason string // Why no agent was eligible
}

// NewTaskUnassignableEvent creates a TaskUnassignableEvent.
func NewTaskUnassignableEvent(taskID, reason string) TaskUnassignableEvent {
	return TaskUnassignableEvent{
		baseEvent: newBaseEvent("task.unassignable"),
		TaskID:    taskID,
		Reason:    reason,
	}
}

// TaskCompletedEvent is emitted when a task outcome is reported.
type TaskCompletedEvent struct {
	baseEvent
	TaskID  string // Completed task
	AgentID string // Agent that held the assignment
	Success bool   // Reported outcome
}

// NewTaskCompletedEvent creates a TaskCompletedEvent.
func NewTaskCompletedEvent(taskID, agentID string, success bool) TaskCompletedEvent {
	return TaskCompletedEvent{
		baseEvent: newBaseEvent("task.completed"),
		TaskID:    taskID,
		AgentID:   agentID,
		Success:   success,
	}
}

// -----------------------------------------------------------------------------
// Learning Events
// -----------------------------------------------------------------------------

// ConfidenceUpdatedEvent is emitted once per required capability when a task
// outcome is routed back into the assigned agent's confidence model. It is
// an observational side effect of completion, not part of the correctness
// contract.
type ConfidenceUpdatedEvent struct {
	baseEvent
	AgentID    string  // Agent whose model moved
	Capability string  // Capability that was updated
	Before     float64 // Confidence before the update
	After      float64 // Confidence after the update
}

// NewConfidenceUpdatedEvent creates a ConfidenceUpdatedEvent.
func NewConfidenceUpdatedEvent(agentID, cap string, before, after float64) ConfidenceUpdatedEvent {
	return ConfidenceUpdatedEvent{
		baseEvent:  newBaseEvent("confidence.updated"),
		AgentID:    agentID,
		Capability: cap,
		Before:     before,
		After:      after,
	}
}

// Change returns the signed confidence movement.
func (e ConfidenceUpdatedEvent) Change() float64 {
	return e.After - e.Before
}

// TrainingModeChangedEvent is emitted when accelerated learning is toggled.
type TrainingModeChangedEvent struct {
	baseEvent
	Enabled      bool    // New training mode state
	LearningRate float64 // Learning rate now applied to all agents
}

// NewTrainingModeChangedEvent creates a TrainingModeChangedEvent.
func NewTrainingModeChangedEvent(enabled bool, learningRate float64) TrainingModeChangedEvent {
	return TrainingModeChangedEvent{
		baseEvent:    newBaseEvent("training.mode_changed"),
		Enabled:      enabled,
		LearningRate: learningRate,
	}
}

// -----------------------------------------------------------------------------
// Registry Events
// -----------------------------------------------------------------------------

// AgentAddedEvent is emitted when an agent joins the registry.
type AgentAddedEvent struct {
	baseEvent
	AgentID      string   // New agent
	Name         string   // Display name
	Capabilities []string // Declared capability set
}

// NewAgentAddedEvent creates an AgentAddedEvent.
func NewAgentAddedEvent(agentID, name string, capabilities []string) AgentAddedEvent {
	return AgentAddedEvent{
		baseEvent:    newBaseEvent("agent.added"),
		AgentID:      agentID,
		Name:         name,
		Capabilities: capabilities,
	}
}

// AgentRemovedEvent is emitted when an agent leaves the registry. Any task
// the agent held is released back to pending.
type AgentRemovedEvent struct {
	baseEvent
	AgentID       string // Removed agent
	ReleasedTasks int    // In-flight tasks returned to pending
}

// NewAgentRemovedEvent creates an AgentRemovedEvent.
func NewAgentRemovedEvent(agentID string, releasedTasks int) AgentRemovedEvent {
	return AgentRemovedEvent{
		baseEvent:     newBaseEvent("agent.removed"),
		AgentID:       agentID,
		ReleasedTasks: releasedTasks,
	}
}

// -----------------------------------------------------------------------------
// Device Events
// -----------------------------------------------------------------------------

// DeviceReadingEvent is emitted when a simulated device produces a reading.
type DeviceReadingEvent struct {
	baseEvent
	DeviceID   string             // Reporting device
	DeviceType string             // Device type name
	Values     map[string]float64 // Measurement name -> value
}

// NewDeviceReadingEvent creates a DeviceReadingEvent.
func NewDeviceReadingEvent(deviceID, deviceType string, values map[string]float64) DeviceReadingEvent {
	return DeviceReadingEvent{
		baseEvent:  newBaseEvent("device.reading"),
		DeviceID:   deviceID,
		DeviceType: deviceType,
		Values:     values,
	}
}
