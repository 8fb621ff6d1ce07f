// Package confidence implements the per-agent learning model: a confidence
// scalar and a bounded outcome history per capability, updated by an
// exponential-moving-average rule on every observed task outcome.
package confidence

import (
	"sync"

	"github.com/qfoxlabs/qfox/internal/capability"
)

const (
	// DefaultLearningRate is the normal per-update step size.
	DefaultLearningRate = 0.1

	// TrainingLearningRate is the elevated step size used in training mode
	// for accelerated learning.
	TrainingLearningRate = 0.3

	// neutralPrior is the confidence and success-rate value assumed for a
	// capability that has never been observed.
	neutralPrior = 0.5

	// historyWindow bounds the per-capability outcome history. Older
	// outcomes are evicted FIFO.
	historyWindow = 10

	// adaptabilitySmoothing controls how fast the adaptability score tracks
	// the magnitude of recent confidence movements.
	adaptabilitySmoothing = 0.2
)

// Delta records how one update moved a capability's confidence.
type Delta struct {
	Capability capability.Capability
	Before     float64
	After      float64
}

// Change returns the signed confidence movement.
func (d Delta) Change() float64 {
	return d.After - d.Before
}

// Model holds learned per-capability state for a single agent.
// All methods are safe for concurrent use via an internal mutex.
type Model struct {
	mu           sync.Mutex
	learningRate float64
	scores       map[capability.Capability]float64
	history      map[capability.Capability][]int
	adaptability float64
}

// Option configures a Model.
type Option func(*Model)

// WithLearningRate sets the initial learning rate. Values outside [0,1]
// are ignored.
func WithLearningRate(rate float64) Option {
	return func(m *Model) {
		if rate >= 0 && rate <= 1 {
			m.learningRate = rate
		}
	}
}

// NewModel creates a Model with empty confidence and history maps.
// Capabilities are materialized lazily at the neutral prior on first access.
func NewModel(opts ...Option) *Model {
	m := &Model{
		learningRate: DefaultLearningRate,
		scores:       make(map[capability.Capability]float64),
		history:      make(map[capability.Capability][]int),
		adaptability: neutralPrior,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Confidence returns the current confidence for the capability,
// materializing the neutral prior if the capability has never been observed.
func (m *Model) Confidence(c capability.Capability) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.confidenceLocked(c)
}

func (m *Model) confidenceLocked(c capability.Capability) float64 {
	score, ok := m.scores[c]
	if !ok {
		m.scores[c] = neutralPrior
		return neutralPrior
	}
	return score
}

// SuccessRate returns the fraction of recorded successes for the capability,
// or the neutral prior when no outcomes have been recorded.
func (m *Model) SuccessRate(c capability.Capability) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	history := m.history[c]
	if len(history) == 0 {
		return neutralPrior
	}
	sum := 0
	for _, bit := range history {
		sum += bit
	}
	return float64(sum) / float64(len(history))
}

// Update records a task outcome for the capability and applies the learning
// rule. The update is a convex combination of the previous confidence and
// the outcome value, so confidence stays within [0,1] for any learning rate
// in [0,1]. Returns the before/after delta for observers.
func (m *Model) Update(c capability.Capability, outcome bool) Delta {
	m.mu.Lock()
	defer m.mu.Unlock()

	bit, value := 0, 0.0
	if outcome {
		bit, value = 1, 1.0
	}

	history := append(m.history[c], bit)
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	m.history[c] = history

	before := m.confidenceLocked(c)
	after := before + m.learningRate*(value-before)
	m.scores[c] = after

	m.updateAdaptabilityLocked(after - before)

	return Delta{Capability: c, Before: before, After: after}
}

// updateAdaptabilityLocked folds the magnitude of the latest confidence
// movement into the adaptability score. The movement is normalized by the
// learning rate so a full-step update counts as 1.0, keeping the score in
// [0,1] and monotone in how far this update moved confidence.
func (m *Model) updateAdaptabilityLocked(change float64) {
	magnitude := change
	if magnitude < 0 {
		magnitude = -magnitude
	}
	step := 1.0
	if m.learningRate > 0 {
		step = magnitude / m.learningRate
	}
	if step > 1 {
		step = 1
	}
	m.adaptability += adaptabilitySmoothing * (step - m.adaptability)
}

// Adaptability returns the current adaptability score.
func (m *Model) Adaptability() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adaptability
}

// LearningRate returns the current learning rate.
func (m *Model) LearningRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.learningRate
}

// SetLearningRate reconfigures the learning rate. Values outside [0,1]
// are ignored.
func (m *Model) SetLearningRate(rate float64) {
	if rate < 0 || rate > 1 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.learningRate = rate
}

// Snapshot is a read-only copy of a Model's state.
type Snapshot struct {
	Scores       map[capability.Capability]float64
	History      map[capability.Capability][]int
	Adaptability float64
	LearningRate float64
}

// Snapshot returns a deep copy of the model state. The copy is safe to
// read after the model continues to mutate.
func (m *Model) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	scores := make(map[capability.Capability]float64, len(m.scores))
	for c, score := range m.scores {
		scores[c] = score
	}
	history := make(map[capability.Capability][]int, len(m.history))
	for c, bits := range m.history {
		cp := make([]int, len(bits))
		copy(cp, bits)
		history[c] = cp
	}
	return Snapshot{
		Scores:       scores,
		History:      history,
		Adaptability: m.adaptability,
		LearningRate: m.learningRate,
	}
}
