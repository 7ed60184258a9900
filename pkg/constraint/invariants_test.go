package constraint

import (
	"testing"

	"github.com/shiftforge/engine/pkg/model"
)

func TestCheckAll_CleanAssignmentHasNoViolations(t *testing.T) {
	p := buildSingleShiftProblem()
	assignments := []model.Assignment{
		{WorkerID: "w1", ShiftID: "s1", Day: model.Monday, RequirementIdx: 0,
			Window: model.Window{Start: 9 * 60, End: 13 * 60}, DurationHours: 4, Cost: 80},
	}
	got := NewChecker(p.Fairness).CheckAll(p, assignments)
	if len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}

func TestCheckAll_HeadcountOverassignment(t *testing.T) {
	p := buildSingleShiftProblem()
	p.Workers = append(p.Workers, &model.Worker{
		ID: "w2", MaxHours: 8, HourlyRate: 20,
		Skills: map[string]struct{}{"Server": {}},
		Availability: map[model.Weekday]model.Availability{
			model.Monday: {Day: model.Monday, Windows: []model.Window{{Start: 0, End: 24 * 60}}},
		},
	})
	assignments := []model.Assignment{
		{WorkerID: "w1", ShiftID: "s1", Day: model.Monday, RequirementIdx: 0,
			Window: model.Window{Start: 9 * 60, End: 13 * 60}, DurationHours: 4, Cost: 80},
		{WorkerID: "w2", ShiftID: "s1", Day: model.Monday, RequirementIdx: 0,
			Window: model.Window{Start: 9 * 60, End: 13 * 60}, DurationHours: 4, Cost: 80},
	}
	got := NewChecker(p.Fairness).CheckAll(p, assignments)
	found := false
	for _, v := range got {
		if v.Invariant == "I2" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an I2 headcount violation, got %v", got)
	}
}

func TestCheckAll_OverlappingAssignmentsForSameWorker(t *testing.T) {
	p := buildSingleShiftProblem()
	assignments := []model.Assignment{
		{WorkerID: "w1", ShiftID: "s1", Day: model.Monday, RequirementIdx: 0,
			Window: model.Window{Start: 9 * 60, End: 13 * 60}, DurationHours: 4, Cost: 80},
		{WorkerID: "w1", ShiftID: "s1b", Day: model.Monday, RequirementIdx: 0,
			Window: model.Window{Start: 11 * 60, End: 15 * 60}, DurationHours: 4, Cost: 80},
	}
	got := NewChecker(p.Fairness).CheckAll(p, assignments)
	found := false
	for _, v := range got {
		if v.Invariant == "I3" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an I3 overlap violation, got %v", got)
	}
}

func TestCheckAll_BudgetExceeded(t *testing.T) {
	p := buildSingleShiftProblem()
	p.Budget.MaxTotalCost = 10
	assignments := []model.Assignment{
		{WorkerID: "w1", ShiftID: "s1", Day: model.Monday, RequirementIdx: 0,
			Window: model.Window{Start: 9 * 60, End: 13 * 60}, DurationHours: 4, Cost: 80},
	}
	got := NewChecker(p.Fairness).CheckAll(p, assignments)
	found := false
	for _, v := range got {
		if v.Invariant == "I5" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an I5 budget violation, got %v", got)
	}
}
