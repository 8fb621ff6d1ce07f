// Package scoring computes the fitness score used to rank agents against a
// task. The score is a fixed convex combination of four normalized
// sub-scores; the weights are design constants and are never renormalized,
// so the function is total for any agent/task pair.
package scoring

import "github.com/qfoxlabs/qfox/internal/capability"

// Sub-score weights. They privilege raw capability coverage first, learned
// confidence second, proven track record third, and load balancing last.
// They must sum to 1.0.
const (
	WeightCapabilityMatch = 0.40
	WeightConfidence      = 0.35
	WeightSuccessRate     = 0.15
	WeightAvailability    = 0.10
)

// neutralDefault substitutes for confidence and success-rate terms of
// capabilities the agent has never observed, matching the model's prior.
const neutralDefault = 0.5

// Candidate is the read-only view of an agent the scoring engine needs.
// Confidence and SuccessRate must be total: unknown capabilities return the
// neutral default rather than an error.
type Candidate interface {
	// Capabilities returns the set of capabilities the agent can attempt.
	Capabilities() capability.Set

	// Confidence returns the learned confidence for a capability.
	Confidence(c capability.Capability) float64

	// SuccessRate returns the recent success rate for a capability.
	SuccessRate(c capability.Capability) float64

	// Load returns the number of in-flight tasks assigned to the agent.
	Load() int
}

// Breakdown holds the four normalized sub-scores for one agent/task pair.
// It is returned alongside the total so callers can log why an agent ranked
// where it did.
type Breakdown struct {
	CapabilityMatch float64
	Confidence      float64
	SuccessRate     float64
	Availability    float64
}

// Total combines the sub-scores under the fixed weights.
func (b Breakdown) Total() float64 {
	return b.CapabilityMatch*WeightCapabilityMatch +
		b.Confidence*WeightConfidence +
		b.SuccessRate*WeightSuccessRate +
		b.Availability*WeightAvailability
}

// Score ranks the candidate against the required capabilities. It never
// fails: agents missing capabilities are scored with neutral defaults, and
// an agent with zero overlap simply degrades toward the defaults. Callers
// decide eligibility separately.
func Score(agent Candidate, required []capability.Capability) Breakdown {
	b := Breakdown{
		Confidence:   neutralDefault,
		SuccessRate:  neutralDefault,
		Availability: availability(agent.Load()),
	}
	if len(required) == 0 {
		return b
	}

	owned := agent.Capabilities()
	matched := 0
	confidenceSum := 0.0
	successSum := 0.0
	for _, c := range required {
		if owned.Contains(c) {
			matched++
		}
		confidenceSum += agent.Confidence(c)
		successSum += agent.SuccessRate(c)
	}

	n := float64(len(required))
	b.CapabilityMatch = float64(matched) / n
	b.Confidence = confidenceSum / n
	b.SuccessRate = successSum / n
	return b
}

// availability maps an in-flight task count to [0,1]: 1.0 when idle,
// decreasing monotonically with load.
func availability(load int) float64 {
	if load < 0 {
		load = 0
	}
	return 1.0 / float64(1+load)
}
