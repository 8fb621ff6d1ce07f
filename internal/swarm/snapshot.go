package swarm

import (
	"github.com/qfoxlabs/qfox/internal/capability"
)

// expertiseThreshold is the success rate above which a capability counts
// as expertise in an agent's adaptivity profile.
const expertiseThreshold = 0.9

// AgentStatus is a read-only snapshot of one agent, safe to consume while
// the core keeps mutating. Snapshots never block on anything but lock
// acquisition and never mutate state.
type AgentStatus struct {
	ID           string
	Name         string
	Capabilities []capability.Capability

	Confidence        map[capability.Capability]float64
	History           map[capability.Capability][]int
	AdaptabilityScore float64
	LearningRate      float64

	Load               int
	TasksCompleted     int
	TasksFailed        int
	AverageSuccessRate float64
	OverallScore       float64
}

// AgentStatus returns a snapshot of the agent with the given ID.
func (c *Controller) AgentStatus(agentID string) (*AgentStatus, error) {
	agent, err := c.registry.Agent(agentID)
	if err != nil {
		return nil, err
	}
	return snapshotAgent(agent), nil
}

// AgentStatuses returns snapshots for every registered agent, sorted by ID.
func (c *Controller) AgentStatuses() []*AgentStatus {
	agents := c.registry.Agents()
	out := make([]*AgentStatus, 0, len(agents))
	for _, agent := range agents {
		out = append(out, snapshotAgent(agent))
	}
	return out
}

func snapshotAgent(agent *Agent) *AgentStatus {
	snap := agent.Model().Snapshot()
	completed, failed := agent.Totals()
	return &AgentStatus{
		ID:                 agent.ID,
		Name:               agent.Name,
		Capabilities:       agent.Capabilities().Sorted(),
		Confidence:         snap.Scores,
		History:            snap.History,
		AdaptabilityScore:  snap.Adaptability,
		LearningRate:       snap.LearningRate,
		Load:               agent.Load(),
		TasksCompleted:     completed,
		TasksFailed:        failed,
		AverageSuccessRate: agent.AverageSuccessRate(),
		OverallScore:       agent.OverallScore(),
	}
}

// AllAgentsConfidence returns every agent's confidence map keyed by agent
// ID, for bulk tabular display by external collaborators.
func (c *Controller) AllAgentsConfidence() map[string]map[capability.Capability]float64 {
	agents := c.registry.Agents()
	out := make(map[string]map[capability.Capability]float64, len(agents))
	for _, agent := range agents {
		out[agent.ID] = agent.Model().Snapshot().Scores
	}
	return out
}

// CapabilityRecord tallies recent outcomes for one capability.
type CapabilityRecord struct {
	Success     int
	Fail        int
	Total       int
	SuccessRate float64
}

// AdaptivityProfile summarizes how an agent has been learning.
type AdaptivityProfile struct {
	// Expertise lists declared capabilities whose recent success rate
	// exceeds the expertise threshold.
	Expertise []capability.Capability

	// History tallies recent outcomes per declared capability.
	History map[capability.Capability]CapabilityRecord

	AdaptabilityScore float64
	LearningRate      float64
}

// AgentProfile returns the adaptivity profile for the agent with the
// given ID.
func (c *Controller) AgentProfile(agentID string) (*AdaptivityProfile, error) {
	agent, err := c.registry.Agent(agentID)
	if err != nil {
		return nil, err
	}

	snap := agent.Model().Snapshot()
	profile := &AdaptivityProfile{
		History:           make(map[capability.Capability]CapabilityRecord),
		AdaptabilityScore: snap.Adaptability,
		LearningRate:      snap.LearningRate,
	}

	for _, cp := range agent.Capabilities().Sorted() {
		bits := snap.History[cp]
		record := CapabilityRecord{Total: len(bits), SuccessRate: 0.5}
		for _, bit := range bits {
			record.Success += bit
		}
		record.Fail = record.Total - record.Success
		if record.Total > 0 {
			record.SuccessRate = float64(record.Success) / float64(record.Total)
		}
		profile.History[cp] = record

		if record.Total > 0 && record.SuccessRate > expertiseThreshold {
			profile.Expertise = append(profile.Expertise, cp)
		}
	}
	return profile, nil
}

// SystemMetrics aggregates pool-wide counters for dashboards.
type SystemMetrics struct {
	TasksCreated   int
	TasksPending   int
	TasksInFlight  int
	TasksCompleted int
	TasksFailed    int

	// SystemEfficiency is the fraction of finished tasks that succeeded.
	SystemEfficiency float64

	// AgentUtilization is the fraction of agents with at least one
	// in-flight task.
	AgentUtilization float64
}

// Metrics computes current system metrics from the registry.
func (c *Controller) Metrics() SystemMetrics {
	m := SystemMetrics{TasksCreated: c.registry.TasksCreated()}

	for _, task := range c.registry.Tasks() {
		switch task.Status {
		case TaskPending:
			m.TasksPending++
		case TaskAssigned:
			m.TasksInFlight++
		case TaskCompleted:
			m.TasksCompleted++
		case TaskFailed:
			m.TasksFailed++
		}
	}
	if finished := m.TasksCompleted + m.TasksFailed; finished > 0 {
		m.SystemEfficiency = float64(m.TasksCompleted) / float64(finished)
	}

	agents := c.registry.Agents()
	if len(agents) > 0 {
		busy := 0
		for _, agent := range agents {
			if agent.Load() > 0 {
				busy++
			}
		}
		m.AgentUtilization = float64(busy) / float64(len(agents))
	}
	return m
}
