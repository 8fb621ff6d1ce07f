package swarm

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qfoxlabs/qfox/internal/capability"
	"github.com/qfoxlabs/qfox/internal/confidence"
)

// TaskStatus represents the current state of a task.
// The lifecycle is Pending -> Assigned -> Completed/Failed; no transition
// skips a state and the terminal states are final.
type TaskStatus string

const (
	// TaskPending indicates the task has not been assigned to an agent.
	TaskPending TaskStatus = "pending"

	// TaskAssigned indicates the task is in flight on exactly one agent.
	TaskAssigned TaskStatus = "assigned"

	// TaskCompleted indicates the task finished with a successful outcome.
	TaskCompleted TaskStatus = "completed"

	// TaskFailed indicates the task finished with a failed outcome.
	TaskFailed TaskStatus = "failed"
)

// String returns the string representation of the task status.
func (s TaskStatus) String() string {
	return string(s)
}

// IsTerminal returns true if this status represents a final state.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// Task is a unit of work requiring one or more capabilities. Once assigned
// and completed it becomes immutable history.
type Task struct {
	// ID uniquely identifies the task.
	ID string

	// Label is a short human-readable name.
	Label string

	// Description elaborates on the work, for logs and snapshots.
	Description string

	// Required is the non-empty set of capabilities the task needs.
	Required []capability.Capability

	// Priority and Complexity are scalar metadata on a 1-10 scale. The
	// scoring contract does not consume them; the simulator uses Complexity
	// to weight outcome probability and Priority to order generated work.
	Priority   float64
	Complexity float64

	// Status is the current lifecycle state.
	Status TaskStatus

	// AssignedAgent is the agent holding the assignment, set exactly once.
	AssignedAgent string

	// Outcome is nil until completion is reported, then the success flag.
	Outcome *bool

	CreatedAt   time.Time
	AssignedAt  *time.Time
	CompletedAt *time.Time
}

// NewTask creates a pending task with a generated ID.
func NewTask(label string, required []capability.Capability) *Task {
	return &Task{
		ID:         uuid.NewString(),
		Label:      label,
		Required:   required,
		Priority:   1.0,
		Complexity: 1.0,
		Status:     TaskPending,
		CreatedAt:  time.Now(),
	}
}

// clone returns a deep copy safe to hand to callers.
func (t *Task) clone() *Task {
	cp := *t
	cp.Required = make([]capability.Capability, len(t.Required))
	copy(cp.Required, t.Required)
	if t.Outcome != nil {
		outcome := *t.Outcome
		cp.Outcome = &outcome
	}
	if t.AssignedAt != nil {
		at := *t.AssignedAt
		cp.AssignedAt = &at
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		cp.CompletedAt = &at
	}
	return &cp
}

// Agent is a schedulable worker with a declared capability set and a learned
// confidence model. Load and outcome counters are guarded by the agent's own
// mutex; the confidence model carries its own lock, so completion feedback
// for different agents never contends.
type Agent struct {
	// ID uniquely identifies the agent.
	ID string

	// Name is the display name.
	Name string

	capabilities capability.Set
	model        *confidence.Model

	mu           sync.Mutex
	load         int
	completed    int
	failed       int
	createdAt    time.Time
	lastActivity time.Time
}

// NewAgent creates an idle agent with the given capability set and an empty
// confidence model.
func NewAgent(name string, caps []capability.Capability, opts ...confidence.Option) *Agent {
	now := time.Now()
	return &Agent{
		ID:           uuid.NewString(),
		Name:         name,
		capabilities: capability.NewSet(caps...),
		model:        confidence.NewModel(opts...),
		createdAt:    now,
		lastActivity: now,
	}
}

// Capabilities returns the agent's declared capability set.
// The set is fixed at creation and safe to read concurrently.
func (a *Agent) Capabilities() capability.Set {
	return a.capabilities
}

// Confidence returns the learned confidence for a capability, materializing
// the neutral prior on first access.
func (a *Agent) Confidence(c capability.Capability) float64 {
	return a.model.Confidence(c)
}

// SuccessRate returns the recent success rate for a capability.
func (a *Agent) SuccessRate(c capability.Capability) float64 {
	return a.model.SuccessRate(c)
}

// Model exposes the agent's confidence model for the feedback path.
func (a *Agent) Model() *confidence.Model {
	return a.model
}

// Load returns the number of in-flight tasks assigned to the agent.
func (a *Agent) Load() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.load
}

// incrementLoad records a new in-flight assignment.
func (a *Agent) incrementLoad() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.load++
	a.lastActivity = time.Now()
}

// decrementLoad releases an in-flight assignment and, when outcome is
// non-nil, folds the result into the aggregate counters.
func (a *Agent) decrementLoad(outcome *bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.load > 0 {
		a.load--
	}
	if outcome != nil {
		if *outcome {
			a.completed++
		} else {
			a.failed++
		}
	}
	a.lastActivity = time.Now()
}

// Totals returns the lifetime completed and failed task counts.
func (a *Agent) Totals() (completed, failed int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.completed, a.failed
}

// AverageSuccessRate returns the lifetime fraction of successful tasks,
// or zero before any task has completed.
func (a *Agent) AverageSuccessRate() float64 {
	completed, failed := a.Totals()
	total := completed + failed
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

// OverallScore summarizes the agent as a blend of proven results and
// learned confidence: 60% lifetime success rate, 40% mean confidence over
// the capabilities observed so far.
func (a *Agent) OverallScore() float64 {
	snap := a.model.Snapshot()
	if len(snap.Scores) == 0 {
		return a.AverageSuccessRate() * 0.6
	}
	sum := 0.0
	for _, score := range snap.Scores {
		sum += score
	}
	avgConfidence := sum / float64(len(snap.Scores))
	return a.AverageSuccessRate()*0.6 + avgConfidence*0.4
}
