package confidence

import (
	"testing"

	"github.com/qfoxlabs/qfox/internal/capability"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}

func TestConfidenceMaterializesNeutralPrior(t *testing.T) {
	m := NewModel()

	got := m.Confidence("data_analysis")
	if got != 0.5 {
		t.Errorf("Confidence() = %v, want 0.5", got)
	}

	// The prior is now materialized and appears in snapshots.
	snap := m.Snapshot()
	if score, ok := snap.Scores["data_analysis"]; !ok || score != 0.5 {
		t.Errorf("Snapshot().Scores[data_analysis] = %v, %v; want 0.5, true", score, ok)
	}
}

func TestUpdateMovesConfidenceTowardOutcome(t *testing.T) {
	t.Run("success from prior", func(t *testing.T) {
		m := NewModel()
		delta := m.Update("data_analysis", true)

		if !almostEqual(delta.Before, 0.5) {
			t.Errorf("Before = %v, want 0.5", delta.Before)
		}
		if !almostEqual(delta.After, 0.55) {
			t.Errorf("After = %v, want 0.55", delta.After)
		}
	})

	t.Run("failure from prior", func(t *testing.T) {
		m := NewModel()
		delta := m.Update("data_analysis", false)

		if !almostEqual(delta.After, 0.45) {
			t.Errorf("After = %v, want 0.45", delta.After)
		}
	})

	t.Run("success then failure", func(t *testing.T) {
		m := NewModel()
		m.Update("data_analysis", true)
		delta := m.Update("data_analysis", false)

		// 0.55 + 0.1*(0 - 0.55) = 0.495
		if !almostEqual(delta.After, 0.495) {
			t.Errorf("After = %v, want 0.495", delta.After)
		}
	})
}

func TestUpdateStaysWithinBounds(t *testing.T) {
	rates := []float64{0.0, 0.1, 0.3, 0.5, 1.0}
	for _, rate := range rates {
		m := NewModel(WithLearningRate(rate))
		for i := 0; i < 50; i++ {
			m.Update("optimization", true)
		}
		if got := m.Confidence("optimization"); got < 0 || got > 1 {
			t.Errorf("rate %v: confidence %v out of [0,1] after successes", rate, got)
		}
		for i := 0; i < 50; i++ {
			m.Update("optimization", false)
		}
		if got := m.Confidence("optimization"); got < 0 || got > 1 {
			t.Errorf("rate %v: confidence %v out of [0,1] after failures", rate, got)
		}
	}
}

func TestSuccessRate(t *testing.T) {
	m := NewModel()

	if got := m.SuccessRate("prediction"); got != 0.5 {
		t.Errorf("SuccessRate() with no history = %v, want 0.5", got)
	}

	m.Update("prediction", true)
	m.Update("prediction", true)
	m.Update("prediction", false)

	want := 2.0 / 3.0
	if got := m.SuccessRate("prediction"); !almostEqual(got, want) {
		t.Errorf("SuccessRate() = %v, want %v", got, want)
	}
}

func TestHistoryWindowEvictsOldest(t *testing.T) {
	m := NewModel()

	// 11 outcomes: one failure followed by ten successes. The failure
	// must be evicted.
	m.Update("regression", false)
	for i := 0; i < 10; i++ {
		m.Update("regression", true)
	}

	snap := m.Snapshot()
	history := snap.History["regression"]
	if len(history) != 10 {
		t.Fatalf("history length = %d, want 10", len(history))
	}
	for i, bit := range history {
		if bit != 1 {
			t.Errorf("history[%d] = %d, want 1 (failure should be evicted)", i, bit)
		}
	}
	if got := m.SuccessRate("regression"); got != 1.0 {
		t.Errorf("SuccessRate() = %v, want 1.0 over the retained window", got)
	}
}

func TestHistoryIsPerCapability(t *testing.T) {
	m := NewModel()
	m.Update("data_analysis", true)
	m.Update("visualization", false)

	snap := m.Snapshot()
	if got := snap.History["data_analysis"]; len(got) != 1 || got[0] != 1 {
		t.Errorf("data_analysis history = %v, want [1]", got)
	}
	if got := snap.History["visualization"]; len(got) != 1 || got[0] != 0 {
		t.Errorf("visualization history = %v, want [0]", got)
	}
}

func TestSetLearningRate(t *testing.T) {
	m := NewModel()

	m.SetLearningRate(TrainingLearningRate)
	if got := m.LearningRate(); got != TrainingLearningRate {
		t.Errorf("LearningRate() = %v, want %v", got, TrainingLearningRate)
	}

	delta := m.Update("adaptation", true)
	if !almostEqual(delta.After, 0.65) {
		t.Errorf("After = %v, want 0.65 at training rate", delta.After)
	}

	// Out-of-range values are ignored.
	m.SetLearningRate(1.5)
	if got := m.LearningRate(); got != TrainingLearningRate {
		t.Errorf("LearningRate() = %v after invalid set, want %v", got, TrainingLearningRate)
	}
	m.SetLearningRate(-0.1)
	if got := m.LearningRate(); got != TrainingLearningRate {
		t.Errorf("LearningRate() = %v after negative set, want %v", got, TrainingLearningRate)
	}
}

func TestAdaptabilityTracksMovement(t *testing.T) {
	m := NewModel()

	if got := m.Adaptability(); got != 0.5 {
		t.Errorf("initial Adaptability() = %v, want 0.5", got)
	}

	// Repeated identical outcomes shrink each confidence movement, so
	// adaptability should decay from its starting point.
	for i := 0; i < 30; i++ {
		m.Update("classification", true)
	}
	settled := m.Adaptability()
	if settled >= 0.5 {
		t.Errorf("Adaptability() = %v after convergence, want < 0.5", settled)
	}
	if settled < 0 || settled > 1 {
		t.Errorf("Adaptability() = %v out of [0,1]", settled)
	}

	// A surprising outcome produces a large movement and raises the score.
	m.Update("classification", false)
	if got := m.Adaptability(); got <= settled {
		t.Errorf("Adaptability() = %v after surprise, want > %v", got, settled)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	m := NewModel()
	m.Update("coordination", true)

	snap := m.Snapshot()
	snap.Scores["coordination"] = 0.0
	snap.History["coordination"][0] = 0

	if got := m.Confidence("coordination"); almostEqual(got, 0.0) {
		t.Error("mutating a snapshot changed the model's scores")
	}
	if got := m.SuccessRate("coordination"); got != 1.0 {
		t.Errorf("SuccessRate() = %v after snapshot mutation, want 1.0", got)
	}
}

func TestUpdateReturnsCapability(t *testing.T) {
	m := NewModel()
	delta := m.Update("creativity", true)
	if delta.Capability != capability.Capability("creativity") {
		t.Errorf("Delta.Capability = %v, want creativity", delta.Capability)
	}
	if !almostEqual(delta.Change(), 0.05) {
		t.Errorf("Delta.Change() = %v, want 0.05", delta.Change())
	}
}
