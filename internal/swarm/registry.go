package swarm

import (
	"sort"
	"sync"
	"time"

	"github.com/qfoxlabs/qfox/internal/errors"
)

// Registry is the explicit repository of agents and tasks. It is owned by
// the Controller and passed by handle wherever lookups are needed; there is
// no ambient global pool.
//
// The registry mutex guards the maps and all task lifecycle transitions.
// Agent load and confidence state carry their own locks, so scoring reads
// across agents can proceed in parallel.
type Registry struct {
	mu     sync.RWMutex
	agents map[string]*Agent
	tasks  map[string]*Task

	tasksCreated int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		agents: make(map[string]*Agent),
		tasks:  make(map[string]*Task),
	}
}

// AddAgent registers an agent. Registering a duplicate ID is an error.
func (r *Registry) AddAgent(agent *Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.agents[agent.ID]; ok {
		return errors.Wrapf(errors.ErrAgentExists, "agent %s", agent.ID)
	}
	r.agents[agent.ID] = agent
	return nil
}

// RemoveAgent deregisters an agent. Any task the agent held in flight is
// released back to pending so it can be reassigned. Returns the IDs of the
// released tasks.
func (r *Registry) RemoveAgent(agentID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.agents[agentID]; !ok {
		return nil, errors.NewNotFoundError("agent", agentID).WithCause(errors.ErrAgentNotFound)
	}

	var released []string
	for _, task := range r.tasks {
		if task.Status == TaskAssigned && task.AssignedAgent == agentID {
			task.Status = TaskPending
			task.AssignedAgent = ""
			task.AssignedAt = nil
			released = append(released, task.ID)
		}
	}
	sort.Strings(released)

	delete(r.agents, agentID)
	return released, nil
}

// Agent returns the registered agent with the given ID.
func (r *Registry) Agent(agentID string) (*Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agent, ok := r.agents[agentID]
	if !ok {
		return nil, errors.NewNotFoundError("agent", agentID).WithCause(errors.ErrAgentNotFound)
	}
	return agent, nil
}

// Agents returns all registered agents sorted by ID. The slice is a copy;
// the agents themselves are shared handles.
func (r *Registry) Agents() []*Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Agent, 0, len(r.agents))
	for _, agent := range r.agents {
		out = append(out, agent)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AgentCount returns the number of registered agents.
func (r *Registry) AgentCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.agents)
}

// AddTask registers a pending task. A task with required capabilities
// missing is rejected at the door rather than producing undefined scores.
func (r *Registry) AddTask(task *Task) error {
	if len(task.Required) == 0 {
		return errors.NewValidationError("task requires at least one capability").
			WithField("required").WithValue(task.Required)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; ok {
		return errors.NewValidationError("duplicate task ID").
			WithField("id").WithValue(task.ID)
	}
	r.tasks[task.ID] = task
	r.tasksCreated++
	return nil
}

// RemoveTask deletes a task. If the task was in flight, the assigned
// agent's load is released without recording an outcome.
func (r *Registry) RemoveTask(taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return errors.NewNotFoundError("task", taskID).WithCause(errors.ErrTaskNotFound)
	}
	if task.Status == TaskAssigned {
		if agent, ok := r.agents[task.AssignedAgent]; ok {
			agent.decrementLoad(nil)
		}
	}
	delete(r.tasks, taskID)
	return nil
}

// Task returns a copy of the task with the given ID.
func (r *Registry) Task(taskID string) (*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return nil, errors.NewNotFoundError("task", taskID).WithCause(errors.ErrTaskNotFound)
	}
	return task.clone(), nil
}

// Tasks returns copies of all tasks sorted by creation time, oldest first.
func (r *Registry) Tasks() []*Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		out = append(out, task.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// PendingTasks returns copies of unassigned tasks ordered by priority,
// highest first.
func (r *Registry) PendingTasks() []*Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Task
	for _, task := range r.tasks {
		if task.Status == TaskPending {
			out = append(out, task.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority == out[j].Priority {
			return out[i].ID < out[j].ID
		}
		return out[i].Priority > out[j].Priority
	})
	return out
}

// TasksCreated returns the lifetime count of registered tasks.
func (r *Registry) TasksCreated() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tasksCreated
}

// markAssigned transitions a pending task to assigned and increments the
// winning agent's load. The transition and the load increment form one
// critical section so concurrent assignment attempts never rank against a
// stale load snapshot of a task that is already taken.
func (r *Registry) markAssigned(taskID, agentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return errors.NewNotFoundError("task", taskID).WithCause(errors.ErrTaskNotFound)
	}
	agent, ok := r.agents[agentID]
	if !ok {
		return errors.NewNotFoundError("agent", agentID).WithCause(errors.ErrAgentNotFound)
	}
	switch task.Status {
	case TaskPending:
	case TaskAssigned:
		return errors.NewUsageError("assign", errors.ErrTaskAlreadyAssigned).WithTaskID(taskID)
	default:
		return errors.NewUsageError("assign", errors.ErrTaskCompleted).WithTaskID(taskID)
	}

	now := time.Now()
	task.Status = TaskAssigned
	task.AssignedAgent = agentID
	task.AssignedAt = &now
	agent.incrementLoad()
	return nil
}

// markCompleted transitions an assigned task to its terminal state and
// releases the agent's load. Returns the agent that held the assignment.
// Completing an unassigned or already-completed task is a usage error.
func (r *Registry) markCompleted(taskID string, success bool) (*Agent, *Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return nil, nil, errors.NewNotFoundError("task", taskID).WithCause(errors.ErrTaskNotFound)
	}
	switch task.Status {
	case TaskAssigned:
	case TaskPending:
		return nil, nil, errors.NewUsageError("complete", errors.ErrTaskNotAssigned).WithTaskID(taskID)
	default:
		return nil, nil, errors.NewUsageError("complete", errors.ErrTaskCompleted).WithTaskID(taskID)
	}

	agent, ok := r.agents[task.AssignedAgent]
	if !ok {
		// The agent was removed while the task was in flight; the release in
		// RemoveAgent should have returned the task to pending, so reaching
		// here means the registry is inconsistent.
		return nil, nil, errors.NewNotFoundError("agent", task.AssignedAgent).WithCause(errors.ErrAgentNotFound)
	}

	now := time.Now()
	outcome := success
	task.Outcome = &outcome
	task.CompletedAt = &now
	if success {
		task.Status = TaskCompleted
	} else {
		task.Status = TaskFailed
	}
	agent.decrementLoad(&outcome)
	return agent, task.clone(), nil
}
