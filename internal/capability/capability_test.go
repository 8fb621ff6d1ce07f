package capability

import (
	"testing"
)

func TestSetContains(t *testing.T) {
	s := NewSet("data_analysis", "prediction")

	if !s.Contains("data_analysis") {
		t.Error("Contains(data_analysis) = false, want true")
	}
	if s.Contains("creativity") {
		t.Error("Contains(creativity) = true, want false")
	}
}

func TestSetOverlap(t *testing.T) {
	s := NewSet("data_analysis", "prediction", "optimization")

	tests := []struct {
		name string
		caps []Capability
		want int
	}{
		{"full overlap", []Capability{"data_analysis", "prediction"}, 2},
		{"partial overlap", []Capability{"data_analysis", "creativity"}, 1},
		{"no overlap", []Capability{"creativity", "communication"}, 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Overlap(tt.caps); got != tt.want {
				t.Errorf("Overlap(%v) = %d, want %d", tt.caps, got, tt.want)
			}
		})
	}
}

func TestSetSorted(t *testing.T) {
	s := NewSet("prediction", "adaptation", "data_analysis")
	got := s.Sorted()

	want := []Capability{"adaptation", "data_analysis", "prediction"}
	if len(got) != len(want) {
		t.Fatalf("Sorted() returned %d capabilities, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sorted()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOpenVocabulary(t *testing.T) {
	// Any non-empty string is a valid capability, including names outside
	// the recommended vocabulary.
	s := NewSet("quantum_flux_calibration")
	if !s.Contains("quantum_flux_calibration") {
		t.Error("capabilities outside the recommended vocabulary should be usable")
	}
}

func TestRecommendedVocabulary(t *testing.T) {
	if len(Recommended) != 15 {
		t.Errorf("len(Recommended) = %d, want 15", len(Recommended))
	}
	seen := make(map[Capability]bool)
	for _, c := range Recommended {
		if c == "" {
			t.Error("Recommended contains an empty capability")
		}
		if seen[c] {
			t.Errorf("Recommended contains duplicate %q", c)
		}
		seen[c] = true
	}
}
