package swarm

import (
	"context"
	"testing"

	"github.com/qfoxlabs/qfox/internal/capability"
	"github.com/qfoxlabs/qfox/internal/errors"
)

func TestAgentStatusSnapshot(t *testing.T) {
	c := newTestController(t)
	ctx := context.Background()

	agentID, err := c.AddAgent("analyst", []capability.Capability{"data_analysis", "visualization"})
	if err != nil {
		t.Fatalf("AddAgent: %v", err)
	}
	taskID, err := c.CreateTask("analysis", "", []capability.Capability{"data_analysis"}, 0, 0)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := c.Assign(ctx, taskID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := c.Complete(ctx, taskID, true); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	status, err := c.AgentStatus(agentID)
	if err != nil {
		t.Fatalf("AgentStatus: %v", err)
	}
	if status.Name != "analyst" {
		t.Errorf("Name = %q, want analyst", status.Name)
	}
	if len(status.Capabilities) != 2 {
		t.Errorf("Capabilities = %v, want 2 entries", status.Capabilities)
	}
	if got := status.Confidence["data_analysis"]; !almostEqual(got, 0.55) {
		t.Errorf("Confidence[data_analysis] = %v, want 0.55", got)
	}
	if status.TasksCompleted != 1 || status.TasksFailed != 0 {
		t.Errorf("counters = %d/%d, want 1/0", status.TasksCompleted, status.TasksFailed)
	}
	if status.AverageSuccessRate != 1.0 {
		t.Errorf("AverageSuccessRate = %v, want 1.0", status.AverageSuccessRate)
	}
	if status.Load != 0 {
		t.Errorf("Load = %d, want 0", status.Load)
	}

	if _, err := c.AgentStatus("no-such-agent"); !errors.IsNotFound(err) {
		t.Errorf("AgentStatus(unknown) = %v, want not-found error", err)
	}
}

func TestAllAgentsConfidence(t *testing.T) {
	c := newTestController(t)
	ctx := context.Background()

	aID, err := c.AddAgent("a", []capability.Capability{"data_analysis"})
	if err != nil {
		t.Fatalf("AddAgent: %v", err)
	}
	bID, err := c.AddAgent("b", []capability.Capability{"prediction"})
	if err != nil {
		t.Fatalf("AddAgent: %v", err)
	}

	taskID, err := c.CreateTask("analysis", "", []capability.Capability{"data_analysis"}, 0, 0)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := c.Assign(ctx, taskID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := c.Complete(ctx, taskID, true); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	all := c.AllAgentsConfidence()
	if len(all) != 2 {
		t.Fatalf("got %d agents, want 2", len(all))
	}
	if got := all[aID]["data_analysis"]; !almostEqual(got, 0.55) {
		t.Errorf("confidence[a][data_analysis] = %v, want 0.55", got)
	}
	if len(all[bID]) != 0 {
		t.Errorf("agent b has observed confidence %v, want none", all[bID])
	}
}

func TestAgentProfileExpertise(t *testing.T) {
	c := newTestController(t)
	ctx := context.Background()

	agentID, err := c.AddAgent("expert", []capability.Capability{"data_analysis", "prediction"})
	if err != nil {
		t.Fatalf("AddAgent: %v", err)
	}

	// Ten straight successes on data_analysis pushes its recent success
	// rate to 1.0, above the expertise threshold. prediction stays unproven.
	for i := 0; i < 10; i++ {
		taskID, err := c.CreateTask("analysis", "", []capability.Capability{"data_analysis"}, 0, 0)
		if err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
		if _, err := c.Assign(ctx, taskID); err != nil {
			t.Fatalf("Assign: %v", err)
		}
		if err := c.Complete(ctx, taskID, true); err != nil {
			t.Fatalf("Complete: %v", err)
		}
	}

	profile, err := c.AgentProfile(agentID)
	if err != nil {
		t.Fatalf("AgentProfile: %v", err)
	}
	if len(profile.Expertise) != 1 || profile.Expertise[0] != "data_analysis" {
		t.Errorf("Expertise = %v, want [data_analysis]", profile.Expertise)
	}

	record := profile.History["data_analysis"]
	if record.Success != 10 || record.Fail != 0 || record.Total != 10 {
		t.Errorf("record = %+v, want 10/0/10", record)
	}
	if record.SuccessRate != 1.0 {
		t.Errorf("SuccessRate = %v, want 1.0", record.SuccessRate)
	}

	unproven := profile.History["prediction"]
	if unproven.Total != 0 || unproven.SuccessRate != 0.5 {
		t.Errorf("unproven record = %+v, want empty with neutral rate", unproven)
	}
}

func TestSystemMetrics(t *testing.T) {
	c := newTestController(t)
	ctx := context.Background()

	if _, err := c.AddAgent("worker", []capability.Capability{"data_analysis"}); err != nil {
		t.Fatalf("AddAgent: %v", err)
	}
	if _, err := c.AddAgent("idle", []capability.Capability{"creativity"}); err != nil {
		t.Fatalf("AddAgent: %v", err)
	}

	newAssigned := func() string {
		t.Helper()
		taskID, err := c.CreateTask("analysis", "", []capability.Capability{"data_analysis"}, 0, 0)
		if err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
		if _, err := c.Assign(ctx, taskID); err != nil {
			t.Fatalf("Assign: %v", err)
		}
		return taskID
	}

	successID := newAssigned()
	if err := c.Complete(ctx, successID, true); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	failedID := newAssigned()
	if err := c.Complete(ctx, failedID, false); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	newAssigned() // stays in flight
	if _, err := c.CreateTask("pending", "", []capability.Capability{"creativity"}, 0, 0); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	m := c.Metrics()
	if m.TasksCreated != 4 {
		t.Errorf("TasksCreated = %d, want 4", m.TasksCreated)
	}
	if m.TasksCompleted != 1 || m.TasksFailed != 1 || m.TasksInFlight != 1 || m.TasksPending != 1 {
		t.Errorf("counts = completed %d, failed %d, in-flight %d, pending %d; want 1 each",
			m.TasksCompleted, m.TasksFailed, m.TasksInFlight, m.TasksPending)
	}
	if !almostEqual(m.SystemEfficiency, 0.5) {
		t.Errorf("SystemEfficiency = %v, want 0.5", m.SystemEfficiency)
	}
	// One of two agents holds in-flight work.
	if !almostEqual(m.AgentUtilization, 0.5) {
		t.Errorf("AgentUtilization = %v, want 0.5", m.AgentUtilization)
	}
}

func TestMetricsEmptySystem(t *testing.T) {
	c := newTestController(t)
	m := c.Metrics()
	if m.SystemEfficiency != 0 || m.AgentUtilization != 0 {
		t.Errorf("empty system metrics = %+v, want zero efficiency and utilization", m)
	}
}
