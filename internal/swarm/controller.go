package swarm

import (
	"context"
	"sync"

	"github.com/qfoxlabs/qfox/internal/capability"
	"github.com/qfoxlabs/qfox/internal/confidence"
	"github.com/qfoxlabs/qfox/internal/event"
	"github.com/qfoxlabs/qfox/internal/logging"
	"github.com/qfoxlabs/qfox/internal/scoring"
)

// Controller orchestrates assignment and the learning feedback loop: it
// ranks eligible agents for a pending task, records the winner, and on
// completion routes the outcome back into the assigned agent's confidence
// model for every required capability.
type Controller struct {
	registry *Registry
	bus      *event.Bus
	log      *logging.Logger

	// assignMu serializes select-and-increment across assignment attempts
	// so two tasks can never be ranked against the same stale load
	// snapshot. Scoring reads across agents stay lock-free.
	assignMu sync.Mutex

	// scoreLog emits a per-factor breakdown for every ranked agent at
	// DEBUG level. Guarded by assignMu alongside the ranking it annotates.
	scoreLog bool

	trainingMu sync.Mutex
	training   bool

	// defaultRate and trainingRate are the learning rates applied to every
	// agent's model in the respective mode. Fixed after construction.
	defaultRate  float64
	trainingRate float64
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLearningRates overrides the learning rates applied outside and
// inside training mode. Rates outside (0,1] are ignored.
func WithLearningRates(defaultRate, trainingRate float64) ControllerOption {
	return func(c *Controller) {
		if defaultRate > 0 && defaultRate <= 1 {
			c.defaultRate = defaultRate
		}
		if trainingRate > 0 && trainingRate <= 1 {
			c.trainingRate = trainingRate
		}
	}
}

// Assignment records one assignment decision.
type Assignment struct {
	TaskID  string
	AgentID string
	Score   float64
}

// NewController creates a Controller that owns the given registry.
// A nil bus or logger is replaced with a no-op implementation.
func NewController(registry *Registry, bus *event.Bus, log *logging.Logger, opts ...ControllerOption) *Controller {
	if bus == nil {
		bus = event.NewBus()
	}
	if log == nil {
		log = logging.Nop()
	}
	c := &Controller{
		registry:     registry,
		bus:          bus,
		log:          log.WithComponent("controller"),
		defaultRate:  confidence.DefaultLearningRate,
		trainingRate: confidence.TrainingLearningRate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetScoreLogging toggles per-candidate breakdown logging during
// assignment.
func (c *Controller) SetScoreLogging(enabled bool) {
	c.assignMu.Lock()
	c.scoreLog = enabled
	c.assignMu.Unlock()
}

// Registry returns the repository of agents and tasks the controller owns.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// Bus returns the event bus the controller publishes on.
func (c *Controller) Bus() *event.Bus {
	return c.bus
}

// AddAgent registers a new agent with the given display name and capability
// set, and returns its generated ID.
func (c *Controller) AddAgent(name string, caps []capability.Capability) (string, error) {
	agent := NewAgent(name, caps)
	agent.Model().SetLearningRate(c.learningRate())
	if err := c.registry.AddAgent(agent); err != nil {
		return "", err
	}

	names := make([]string, len(caps))
	for i := range caps {
		names[i] = caps[i].String()
	}
	c.bus.Publish(event.NewAgentAddedEvent(agent.ID, name, names))
	c.log.Info("agent added", "agent_id", agent.ID, "name", name, "capabilities", names)
	return agent.ID, nil
}

// RemoveAgent deregisters an agent, releasing any in-flight task back to
// pending so it can be reassigned.
func (c *Controller) RemoveAgent(agentID string) error {
	released, err := c.registry.RemoveAgent(agentID)
	if err != nil {
		return err
	}
	c.bus.Publish(event.NewAgentRemovedEvent(agentID, len(released)))
	c.log.Info("agent removed", "agent_id", agentID, "released_tasks", released)
	return nil
}

// CreateTask registers a pending task and returns its generated ID.
func (c *Controller) CreateTask(label, description string, required []capability.Capability, priority, complexity float64) (string, error) {
	task := NewTask(label, required)
	task.Description = description
	if priority > 0 {
		task.Priority = priority
	}
	if complexity > 0 {
		task.Complexity = complexity
	}
	if err := c.registry.AddTask(task); err != nil {
		return "", err
	}
	c.log.Debug("task created", "task_id", task.ID, "label", label, "priority", task.Priority)
	return task.ID, nil
}

// Assign selects the best eligible agent for the pending task and records
// the assignment. Eligibility requires at least one overlapping capability;
// agents with zero overlap are excluded so assignments are never won purely
// on confidence or idleness.
//
// An empty eligible set is a defined outcome, not an error: Assign returns
// an empty agent ID. Ties on score break deterministically toward the
// lexically smallest agent ID.
func (c *Controller) Assign(ctx context.Context, taskID string) (string, error) {
	agentID, _, err := c.assign(ctx, taskID)
	return agentID, err
}

// assign ranks, records the assignment, and returns the score the winner
// was selected with, computed before its load was incremented.
func (c *Controller) assign(ctx context.Context, taskID string) (string, float64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	c.assignMu.Lock()
	defer c.assignMu.Unlock()

	task, err := c.registry.Task(taskID)
	if err != nil {
		return "", 0, err
	}

	var (
		best      *Agent
		bestScore float64
	)
	// Agents() is sorted by ID, so keeping the first strict maximum makes
	// the tie-break reproducible.
	for _, agent := range c.registry.Agents() {
		if agent.Capabilities().Overlap(task.Required) == 0 {
			continue
		}
		breakdown := scoring.Score(agent, task.Required)
		total := breakdown.Total()
		if c.scoreLog {
			c.log.Debug("score breakdown",
				"task_id", taskID,
				"agent_id", agent.ID,
				"capability_match", breakdown.CapabilityMatch,
				"confidence", breakdown.Confidence,
				"success_rate", breakdown.SuccessRate,
				"availability", breakdown.Availability,
				"total", total,
			)
		}
		if best == nil || total > bestScore {
			best = agent
			bestScore = total
		}
	}

	if best == nil {
		c.bus.Publish(event.NewTaskUnassignableEvent(taskID, "no agent with overlapping capabilities"))
		c.log.Info("no eligible agent", "task_id", taskID, "required", task.Required)
		return "", 0, nil
	}

	if err := c.registry.markAssigned(taskID, best.ID); err != nil {
		return "", 0, err
	}

	c.bus.Publish(event.NewTaskAssignedEvent(taskID, best.ID, bestScore))
	c.log.Info("task assigned",
		"task_id", taskID,
		"agent_id", best.ID,
		"agent", best.Name,
		"score", bestScore,
	)
	return best.ID, bestScore, nil
}

// AssignPending assigns every pending task in priority order, highest
// first. Tasks with no eligible agent are skipped and stay pending.
func (c *Controller) AssignPending(ctx context.Context) ([]Assignment, error) {
	var assignments []Assignment
	for _, task := range c.registry.PendingTasks() {
		agentID, score, err := c.assign(ctx, task.ID)
		if err != nil {
			return assignments, err
		}
		if agentID == "" {
			continue
		}
		assignments = append(assignments, Assignment{TaskID: task.ID, AgentID: agentID, Score: score})
	}
	return assignments, nil
}

// Complete reports a task outcome. The outcome is routed into the assigned
// agent's confidence model once per required capability, the agent's load is
// released, and a before/after confidence delta is emitted per capability.
//
// Completing a task that was never assigned, or one that already reached a
// terminal state, is a usage error surfaced at the point of misuse.
func (c *Controller) Complete(ctx context.Context, taskID string, success bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	agent, task, err := c.registry.markCompleted(taskID, success)
	if err != nil {
		return err
	}

	log := c.log.WithTask(taskID).WithAgent(agent.ID)
	for _, req := range task.Required {
		delta := agent.Model().Update(req, success)
		c.bus.Publish(event.NewConfidenceUpdatedEvent(agent.ID, req.String(), delta.Before, delta.After))
		log.Debug("confidence updated",
			"capability", req.String(),
			"before", delta.Before,
			"after", delta.After,
			"change", delta.Change(),
		)
	}

	c.bus.Publish(event.NewTaskCompletedEvent(taskID, agent.ID, success))
	log.Info("task completed", "success", success, "label", task.Label)
	return nil
}

// SetTrainingMode toggles accelerated learning: every registered agent's
// learning rate switches between the default and the elevated training
// rate. Agents added later inherit the current mode.
func (c *Controller) SetTrainingMode(enabled bool) {
	c.trainingMu.Lock()
	c.training = enabled
	c.trainingMu.Unlock()

	rate := c.defaultRate
	if enabled {
		rate = c.trainingRate
	}
	for _, agent := range c.registry.Agents() {
		agent.Model().SetLearningRate(rate)
	}

	c.bus.Publish(event.NewTrainingModeChangedEvent(enabled, rate))
	c.log.Info("training mode changed", "enabled", enabled, "learning_rate", rate)
}

// TrainingMode reports whether accelerated learning is active.
func (c *Controller) TrainingMode() bool {
	c.trainingMu.Lock()
	defer c.trainingMu.Unlock()
	return c.training
}

// learningRate returns the rate for the current mode.
func (c *Controller) learningRate() float64 {
	if c.TrainingMode() {
		return c.trainingRate
	}
	return c.defaultRate
}
