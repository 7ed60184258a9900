// Package stats computes fairness and coverage analytics over a solved
// assignment set, supplementing the minimum statistics the output
// contract requires (spec §4.5 component 5). Grounded on the source
// repo's pkg/stats package (fairness.go's WorkloadGini/WorkloadVariance,
// coverage.go's DailyCoverage/ShiftTypeCoverage), generalized from
// employee/assignment rollups to this engine's worker/shift vocabulary.
package stats

import (
	"sort"

	"github.com/shiftforge/engine/pkg/model"
)

// FairnessMetrics is a continuous fairness reading over a worker/hours
// distribution, additive to (never a replacement for) the required
// max_shift_imbalance statistic.
type FairnessMetrics struct {
	WorkloadGini     float64
	WorkloadVariance float64
	AvgHours         float64
	MinHours         float64
	MaxHours         float64
}

// FairnessAnalyzer computes FairnessMetrics from per-worker hour totals.
type FairnessAnalyzer struct{}

func NewFairnessAnalyzer() *FairnessAnalyzer {
	return &FairnessAnalyzer{}
}

// Analyze reports the Gini coefficient and variance of the worked-hours
// distribution across stats. An empty or single-worker roster is
// trivially fair.
func (f *FairnessAnalyzer) Analyze(workerStats []model.WorkerStats) FairnessMetrics {
	if len(workerStats) == 0 {
		return FairnessMetrics{}
	}

	hours := make([]float64, len(workerStats))
	for i, st := range workerStats {
		hours[i] = st.TotalHours
	}
	sort.Float64s(hours)

	var sum float64
	for _, h := range hours {
		sum += h
	}
	avg := sum / float64(len(hours))

	var variance float64
	for _, h := range hours {
		d := h - avg
		variance += d * d
	}
	variance /= float64(len(hours))

	return FairnessMetrics{
		WorkloadGini:     gini(hours, sum),
		WorkloadVariance: variance,
		AvgHours:         avg,
		MinHours:         hours[0],
		MaxHours:         hours[len(hours)-1],
	}
}

// gini expects hours sorted ascending and sum == Σhours.
func gini(hours []float64, sum float64) float64 {
	n := len(hours)
	if n == 0 || sum == 0 {
		return 0
	}
	var g float64
	for i, h := range hours {
		g += (2*float64(i+1) - float64(n) - 1) * h
	}
	g /= float64(n) * sum
	switch {
	case g < 0:
		return 0
	case g > 1:
		return 1
	default:
		return g
	}
}
