package postprocess

import (
	"testing"

	"github.com/shiftforge/engine/pkg/model"
	"github.com/shiftforge/engine/pkg/problem"
)

func twoSlotProblem() *model.Problem {
	w1 := &model.Worker{
		ID: "w1", MaxHours: 40, HourlyRate: 20,
		Skills: map[string]struct{}{"Server": {}},
		Availability: map[model.Weekday]model.Availability{
			model.Monday: {Day: model.Monday, Windows: []model.Window{{Start: 0, End: 24 * 60}}},
		},
	}
	shift := &model.Shift{
		ID:     "s1",
		Day:    model.Monday,
		Window: model.Window{Start: 9 * 60, End: 13 * 60},
		Requirements: []model.Requirement{
			{Role: "Server", Count: 2},
		},
	}
	return &model.Problem{
		Workers:  []*model.Worker{w1},
		Shifts:   []*model.Shift{shift},
		Budget:   model.Budget{MaxTotalCost: 10000},
		Fairness: model.Fairness{MaxConsecutiveDays: 6, MinRestHours: 10},
	}
}

func TestPreflight_NoConflictUnderBudget(t *testing.T) {
	p := twoSlotProblem()
	idx := problem.Build(p)
	if _, conflict := Preflight(idx); conflict {
		t.Fatalf("expected no preflight conflict")
	}
}

func TestPreflight_ConflictOverBudget(t *testing.T) {
	p := twoSlotProblem()
	p.Budget.MaxTotalCost = 1.0
	idx := problem.Build(p)
	c, conflict := Preflight(idx)
	if !conflict {
		t.Fatalf("expected a preflight conflict")
	}
	if c.LowerBoundCost <= c.MaxTotalCost {
		t.Fatalf("conflict's lower bound should exceed the cap")
	}
}

func TestCoverageGaps_ReportsMissingSlot(t *testing.T) {
	p := twoSlotProblem()
	idx := problem.Build(p)

	assignments := []model.Assignment{
		{WorkerID: "w1", ShiftID: "s1", Day: model.Monday, RequirementIdx: 0,
			Window: model.Window{Start: 9 * 60, End: 13 * 60}, DurationHours: 4, Cost: 80},
	}
	gaps := coverageGaps(idx, assignments)
	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(gaps))
	}
	if gaps[0].MissingCount != 1 {
		t.Fatalf("expected missing count 1, got %d", gaps[0].MissingCount)
	}
}

func TestWorkerStats_AggregatesPerWorker(t *testing.T) {
	assignments := []model.Assignment{
		{WorkerID: "w1", ShiftID: "s1", Day: model.Monday, DurationHours: 4, Cost: 80},
		{WorkerID: "w1", ShiftID: "s2", Day: model.Tuesday, DurationHours: 4, Cost: 80},
	}
	stats := workerStats(assignments)
	if len(stats) != 1 {
		t.Fatalf("expected 1 worker, got %d", len(stats))
	}
	if stats[0].ShiftCount != 2 || stats[0].TotalHours != 8 {
		t.Fatalf("unexpected stats: %+v", stats[0])
	}
	if len(stats[0].Days) != 2 {
		t.Fatalf("expected 2 distinct days, got %d", len(stats[0].Days))
	}
}
