package sim

import (
	"github.com/qfoxlabs/qfox/internal/capability"
)

// TaskTemplate describes a kind of work the simulator generates.
type TaskTemplate struct {
	Name        string
	Description string
	Required    []capability.Capability
	Complexity  float64
	Priority    float64
}

// AgentTemplate describes a demo agent registered at startup.
type AgentTemplate struct {
	Name         string
	Capabilities []capability.Capability
}

// TaskTemplates returns the built-in workload catalog.
func TaskTemplates() []TaskTemplate {
	return []TaskTemplate{
		{
			Name:        "Data Pattern Analysis",
			Description: "Analyze complex data patterns and identify correlations",
			Required:    []capability.Capability{"data_analysis", "pattern_recognition"},
			Complexity:  7.0,
			Priority:    8.0,
		},
		{
			Name:        "Predictive Modeling",
			Description: "Build predictive models using historical data",
			Required:    []capability.Capability{"machine_learning", "prediction"},
			Complexity:  8.0,
			Priority:    9.0,
		},
		{
			Name:        "Resource Optimization",
			Description: "Optimize resource allocation across multiple parameters",
			Required:    []capability.Capability{"optimization", "resource_management"},
			Complexity:  6.0,
			Priority:    7.0,
		},
		{
			Name:        "Visual Analytics",
			Description: "Create interactive visualizations for complex datasets",
			Required:    []capability.Capability{"visualization", "data_analysis"},
			Complexity:  5.0,
			Priority:    6.0,
		},
		{
			Name:        "Adaptive Decision System",
			Description: "Implement adaptive decision-making algorithms",
			Required:    []capability.Capability{"decision_making", "adaptation"},
			Complexity:  9.0,
			Priority:    10.0,
		},
	}
}

// AgentTemplates returns the built-in demo agent roster.
func AgentTemplates() []AgentTemplate {
	return []AgentTemplate{
		{
			Name:         "Quantum Analyst",
			Capabilities: []capability.Capability{"data_analysis", "pattern_recognition", "visualization"},
		},
		{
			Name:         "ML Optimizer",
			Capabilities: []capability.Capability{"machine_learning", "optimization", "prediction"},
		},
		{
			Name:         "Adaptive Coordinator",
			Capabilities: []capability.Capability{"decision_making", "adaptation", "coordination"},
		},
		{
			Name:         "Resource Manager",
			Capabilities: []capability.Capability{"resource_management", "optimization", "problem_solving"},
		},
	}
}
