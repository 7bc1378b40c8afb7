package interview

import (
	"errors"
	"testing"
)

func entriesWithRelevance(relevant, total int) []Entry {
	entries := make([]Entry, 0, total)
	for i := 0; i < total; i++ {
		entries = append(entries, Entry{Relevant: i < relevant})
	}
	return entries
}

func TestScoreRatios(t *testing.T) {
	t.Parallel()

	agg := NewAggregator(10)

	tests := []struct {
		name     string
		relevant int
		total    int
		expect   int
	}{
		{"seven of ten", 7, 10, 7},
		{"all relevant", 6, 6, 10},
		{"none relevant", 0, 4, 0},
		{"half rounds up", 1, 2, 5},
		{"0.45 rounds half away from zero", 9, 20, 5},
		{"0.44 rounds down", 11, 25, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			score, err := agg.Score(entriesWithRelevance(tt.relevant, tt.total))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if score != tt.expect {
				t.Fatalf("score(%d/%d) = %d, want %d", tt.relevant, tt.total, score, tt.expect)
			}
		})
	}
}

func TestScoreEmptyTranscriptIsNoData(t *testing.T) {
	agg := NewAggregator(10)

	_, err := agg.Score(nil)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestScoreHundredScale(t *testing.T) {
	agg := NewAggregator(100)

	score, err := agg.Score(entriesWithRelevance(7, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if score != 70 {
		t.Fatalf("expected 70 on the 100 scale, got %d", score)
	}
}

func TestScoreDefaultScale(t *testing.T) {
	agg := NewAggregator(0)
	if agg.Scale() != DefaultScoreScale {
		t.Fatalf("expected default scale %d, got %d", DefaultScoreScale, agg.Scale())
	}
}
