package identify

import (
	"math"
	"testing"
)

func TestConfidence(t *testing.T) {
	tests := []struct {
		candidates int
		model      bool
		want       float64
	}{
		{0, false, 0},
		{0, true, 0},
		{1, false, 100},
		{1, true, 100},
		{2, true, 75},
		{2, false, 50},
		{3, true, 58.33},
		{3, false, 33.33},
		{4, true, 50},
	}

	for _, tt := range tests {
		got := Confidence(tt.candidates, tt.model)
		if math.Abs(got-tt.want) > 0.01 {
			t.Errorf("Confidence(%d, %v) = %.2f, want %.2f", tt.candidates, tt.model, got, tt.want)
		}
	}
}

func TestConfidenceNeverIncreasesWithCandidates(t *testing.T) {
	for _, model := range []bool{false, true} {
		prev := Confidence(1, model)
		for n := 2; n <= 10; n++ {
			cur := Confidence(n, model)
			if cur > prev {
				t.Fatalf("Confidence(%d, %v) = %.2f exceeds Confidence(%d) = %.2f", n, model, cur, n-1, prev)
			}
			prev = cur
		}
	}
}

func TestConfidenceThreshold(t *testing.T) {
	// Two model-confirmed candidates clear the threshold, anything
	// weaker prompts for confirmation.
	if Confidence(2, true) < ConfidenceThreshold {
		t.Error("two candidates with model confirmation should clear the threshold")
	}
	if Confidence(2, false) >= ConfidenceThreshold {
		t.Error("two candidates without model confirmation should not clear the threshold")
	}
	if Confidence(3, true) >= ConfidenceThreshold {
		t.Error("three candidates should not clear the threshold even with the model")
	}
}
