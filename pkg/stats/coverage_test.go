package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiftforge/engine/pkg/model"
	"github.com/shiftforge/engine/pkg/problem"
)

func TestCoverageAnalyzer_PartialFillRollsUpByDayAndType(t *testing.T) {
	shift := &model.Shift{
		ID:           "s1",
		Day:          model.Monday,
		Window:       model.Window{Start: 540, End: 900},
		ShiftType:    model.ShiftLunch,
		Requirements: []model.Requirement{{Role: "server", Count: 2}},
	}
	p := &model.Problem{
		Shifts: []*model.Shift{shift},
		Budget: model.Budget{MaxTotalCost: 1000},
	}
	idx := problem.Build(p)

	assignments := []model.Assignment{
		{WorkerID: "w1", ShiftID: "s1", Day: model.Monday, RequirementIdx: 0},
	}

	got := NewCoverageAnalyzer().Analyze(idx, assignments)
	require.InDelta(t, 0.5, got.OverallCoverage, 1e-9)
	require.Equal(t, 2, got.ByDay[model.Monday].RequiredSlots)
	require.Equal(t, 1, got.ByDay[model.Monday].FilledSlots)
	require.InDelta(t, 0.5, got.ByDay[model.Monday].CoverageRate, 1e-9)
	require.InDelta(t, 0.5, got.ByShiftType[model.ShiftLunch], 1e-9)
}

func TestCoverageAnalyzer_NoShiftsIsZeroCoverage(t *testing.T) {
	idx := problem.Build(&model.Problem{})
	got := NewCoverageAnalyzer().Analyze(idx, nil)
	require.Equal(t, 0.0, got.OverallCoverage)
	require.Empty(t, got.ByDay)
}
