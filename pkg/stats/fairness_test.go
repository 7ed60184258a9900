package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiftforge/engine/pkg/model"
)

func TestFairnessAnalyzer_EvenSplitIsZeroGini(t *testing.T) {
	analyzer := NewFairnessAnalyzer()
	got := analyzer.Analyze([]model.WorkerStats{
		{WorkerID: "a", TotalHours: 40},
		{WorkerID: "b", TotalHours: 40},
		{WorkerID: "c", TotalHours: 40},
	})
	require.InDelta(t, 0, got.WorkloadGini, 1e-9)
	require.InDelta(t, 0, got.WorkloadVariance, 1e-9)
	require.Equal(t, 40.0, got.AvgHours)
}

func TestFairnessAnalyzer_SkewedSplitIsPositiveGini(t *testing.T) {
	analyzer := NewFairnessAnalyzer()
	got := analyzer.Analyze([]model.WorkerStats{
		{WorkerID: "a", TotalHours: 5},
		{WorkerID: "b", TotalHours: 5},
		{WorkerID: "c", TotalHours: 40},
	})
	require.Greater(t, got.WorkloadGini, 0.0)
	require.Less(t, got.WorkloadGini, 1.0)
	require.Equal(t, 5.0, got.MinHours)
	require.Equal(t, 40.0, got.MaxHours)
}

func TestFairnessAnalyzer_EmptyRosterIsTriviallyFair(t *testing.T) {
	analyzer := NewFairnessAnalyzer()
	got := analyzer.Analyze(nil)
	require.Equal(t, FairnessMetrics{}, got)
}
