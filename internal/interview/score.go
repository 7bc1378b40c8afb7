package interview

import (
	"errors"
	"math"
)

// ErrNoData signals an empty transcript. It is distinct from a score of
// zero, which is a real result for an all-irrelevant transcript.
var ErrNoData = errors.New("no transcript entries to score")

// DefaultScoreScale is the upper bound of the reported score.
const DefaultScoreScale = 10

// Aggregator reduces a transcript's relevance verdicts to a bounded score.
type Aggregator struct {
	scale int
}

// NewAggregator creates an Aggregator reporting scores in [0, scale].
// Non-positive scales fall back to DefaultScoreScale.
func NewAggregator(scale int) Aggregator {
	if scale <= 0 {
		scale = DefaultScoreScale
	}
	return Aggregator{scale: scale}
}

// Scale returns the configured score upper bound.
func (a Aggregator) Scale() int {
	return a.scale
}

// Score computes round(relevant/total * scale), clamped to [0, scale].
// Rounding is half away from zero, so a 0.45 ratio on the default scale
// lands on 5 and 0.44 on 4. Returns ErrNoData for an empty transcript.
func (a Aggregator) Score(entries []Entry) (int, error) {
	if len(entries) == 0 {
		return 0, ErrNoData
	}

	relevant := 0
	for _, entry := range entries {
		if entry.Relevant {
			relevant++
		}
	}

	ratio := float64(relevant) / float64(len(entries))
	score := int(math.Round(ratio * float64(a.scale)))

	if score < 0 {
		score = 0
	}
	if score > a.scale {
		score = a.scale
	}

	return score, nil
}
