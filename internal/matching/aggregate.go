package matching

import "math"

// Aggregate combines per-dimension sub-scores into a MatchResult. The
// breakdown always has one entry per table dimension, in table order;
// a missing sub-score counts as neutral.
func Aggregate(scores map[Dimension]float64, table *WeightTable, neutral float64) MatchResult {
	breakdown := make([]BreakdownEntry, 0, len(table.entries))
	sum := 0.0
	for _, e := range table.entries {
		score, ok := scores[e.Dimension]
		if !ok {
			score = neutral
		}
		score = clampScore(score)
		weighted := score * e.Weight
		sum += weighted
		breakdown = append(breakdown, BreakdownEntry{
			Dimension:     e.Dimension,
			Score:         score,
			Weight:        e.Weight,
			WeightedScore: weighted,
		})
	}

	overall := int(math.Round(clampScore(sum)))
	return MatchResult{OverallScore: overall, Breakdown: breakdown}
}
