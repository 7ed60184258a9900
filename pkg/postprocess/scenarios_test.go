package postprocess

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiftforge/engine/pkg/model"
)

// These tests drive Run end to end, through the real MIP solver (no
// mocked solver), against the boundary scenarios spec §8 enumerates.

func allDayAvailability() map[model.Weekday]model.Availability {
	out := make(map[model.Weekday]model.Availability)
	for _, d := range []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday, model.Saturday, model.Sunday} {
		out[d] = model.Availability{Day: d, Windows: []model.Window{{Start: 0, End: 24 * 60}}}
	}
	return out
}

func serverWorker(id string, rate float64) *model.Worker {
	return &model.Worker{
		ID:           id,
		Skills:       map[string]struct{}{"Server": {}},
		HourlyRate:   rate,
		MaxHours:     40,
		Availability: allDayAvailability(),
	}
}

func weekOfShifts(n int, headcount int) []*model.Shift {
	days := []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday, model.Saturday, model.Sunday}
	shifts := make([]*model.Shift, 0, n)
	for i := 0; i < n; i++ {
		day := days[i%len(days)]
		shifts = append(shifts, &model.Shift{
			ID:           shiftID(i),
			Day:          day,
			Window:       model.Window{Start: 9 * 60, End: 13 * 60},
			Requirements: []model.Requirement{{Role: "Server", Count: headcount}},
		})
	}
	return shifts
}

func shiftID(i int) string {
	return "s" + string(rune('a'+i%26)) + string(rune('0'+i/26))
}

func TestRun_HappyPath(t *testing.T) {
	workers := make([]*model.Worker, 15)
	for i := range workers {
		workers[i] = serverWorker(shiftID(i), 15)
	}
	p := &model.Problem{
		Workers:  workers,
		Shifts:   weekOfShifts(21, 1),
		Budget:   model.Budget{MaxTotalCost: 8000, MaxDailyCost: 1200},
		Fairness: model.Fairness{MaxConsecutiveDays: 5, MinRestHours: 12},
		Options:  model.SolveOptions{TimeLimitSeconds: 10, RandomSeed: 42},
	}

	report, err := Run(p)
	require.NoError(t, err)
	require.True(t, report.Success)
	require.LessOrEqual(t, report.TotalCost, 8000.0)
	require.Empty(t, report.CoverageGaps)
}

func TestRun_BudgetConflictPreflight(t *testing.T) {
	workers := make([]*model.Worker, 15)
	for i := range workers {
		workers[i] = serverWorker(shiftID(i), 15)
	}
	p := &model.Problem{
		Workers:  workers,
		Shifts:   weekOfShifts(21, 1),
		Budget:   model.Budget{MaxTotalCost: 500},
		Fairness: model.Fairness{MaxConsecutiveDays: 5, MinRestHours: 12},
		Options:  model.SolveOptions{TimeLimitSeconds: 10},
	}

	report, err := Run(p)
	require.NoError(t, err)
	require.False(t, report.Success)
	require.Equal(t, "BudgetCoverageConflict", report.Reason)
	require.Greater(t, report.Conflict.LowerBoundCost, 500.0)
}

func TestRun_SingleWorkerPartialCoverage(t *testing.T) {
	p := &model.Problem{
		Workers:  []*model.Worker{serverWorker("w1", 15)},
		Shifts:   weekOfShifts(100, 1),
		Budget:   model.Budget{MaxTotalCost: 1_000_000},
		Fairness: model.Fairness{MaxConsecutiveDays: 7, MinRestHours: 0},
		Options:  model.SolveOptions{TimeLimitSeconds: 10},
	}

	report, err := Run(p)
	require.NoError(t, err)
	require.True(t, report.Success)
	require.NotEmpty(t, report.CoverageGaps)
}

func TestRun_RelaxationLadderDropsDailyBudgetCap(t *testing.T) {
	workers := make([]*model.Worker, 5)
	for i := range workers {
		workers[i] = serverWorker(shiftID(i), 15)
	}
	p := &model.Problem{
		Workers: workers,
		Shifts:  weekOfShifts(7, 3),
		// Weekly budget is generous but the daily cap is too tight for
		// $15/hr x 4h x 3 headcount ($180/day) to clear.
		Budget:   model.Budget{MaxTotalCost: 5000, MaxDailyCost: 100},
		Fairness: model.Fairness{MaxConsecutiveDays: 7, MinRestHours: 0},
		Options:  model.SolveOptions{TimeLimitSeconds: 10},
	}

	report, err := Run(p)
	require.NoError(t, err)
	require.True(t, report.Success)
	require.Contains(t, report.RelaxationsApplied, "drop_daily_budget_cap")
	require.LessOrEqual(t, report.TotalCost, 5000.0)
}

func TestRun_SkillScarcityLeavesOneGap(t *testing.T) {
	workers := make([]*model.Worker, 10)
	for i := range workers {
		workers[i] = serverWorker(shiftID(i), 15)
	}
	sommelierShift := &model.Shift{
		ID:           "sommelier-shift",
		Day:          model.Monday,
		Window:       model.Window{Start: 18 * 60, End: 22 * 60},
		Requirements: []model.Requirement{{Role: "Server", Count: 1, RequiredSkill: "Sommelier"}},
	}
	p := &model.Problem{
		Workers:  workers,
		Shifts:   append(weekOfShifts(5, 1), sommelierShift),
		Budget:   model.Budget{MaxTotalCost: 10000},
		Fairness: model.Fairness{MaxConsecutiveDays: 7, MinRestHours: 8},
		Options:  model.SolveOptions{TimeLimitSeconds: 10},
	}

	report, err := Run(p)
	require.NoError(t, err)
	require.True(t, report.Success)

	var gotGap bool
	for _, g := range report.CoverageGaps {
		if g.ShiftID == "sommelier-shift" {
			gotGap = true
			require.Equal(t, "NoEligibleWorkers", string(g.Reason))
		}
	}
	require.True(t, gotGap, "expected a coverage gap for the Sommelier-only shift")
}

func TestRun_DeterministicAcrossRepeatedSolves(t *testing.T) {
	workers := make([]*model.Worker, 15)
	for i := range workers {
		workers[i] = serverWorker(shiftID(i), 15)
	}
	build := func() *model.Problem {
		return &model.Problem{
			Workers:  workers,
			Shifts:   weekOfShifts(21, 1),
			Budget:   model.Budget{MaxTotalCost: 8000, MaxDailyCost: 1200},
			Fairness: model.Fairness{MaxConsecutiveDays: 5, MinRestHours: 12},
			Options:  model.SolveOptions{TimeLimitSeconds: 10, RandomSeed: 42},
		}
	}

	first, err := Run(build())
	require.NoError(t, err)
	second, err := Run(build())
	require.NoError(t, err)

	require.Equal(t, first.TotalCost, second.TotalCost)
	require.Equal(t, first.Assignments, second.Assignments)
}
