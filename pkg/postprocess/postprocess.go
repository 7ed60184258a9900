// Package postprocess implements the Post-Processor (spec §4.5): it
// decodes a solver result into the assignment/statistics/coverage-gap
// shapes the output contract (spec §6) wants, runs the budget/coverage
// pre-flight check before a solve is even attempted, drives the
// five-step relaxation ladder when the solver comes back INFEASIBLE,
// and runs pkg/stats and pkg/constraint's post-extraction analytics and
// sanity pass over the decoded assignment set.
package postprocess

import (
	"sort"
	"time"

	"github.com/shiftforge/engine/pkg/constraint"
	"github.com/shiftforge/engine/pkg/logger"
	"github.com/shiftforge/engine/pkg/model"
	"github.com/shiftforge/engine/pkg/problem"
	"github.com/shiftforge/engine/pkg/seed"
	"github.com/shiftforge/engine/pkg/solver"
	"github.com/shiftforge/engine/pkg/stats"
)

// CoverageGap is one uncovered requirement slot (spec §4.5).
type CoverageGap struct {
	ShiftID             string
	Day                 model.Weekday
	Window              model.Window
	MissingCount        int
	Role                string
	RequiredSkill       string
	EligibleWorkerCount int
	Reason              constraint.GapReason
}

// Statistics is the solution-level rollup the output contract wants.
type Statistics struct {
	NumWorkersUsed    int
	AvgHoursPerWorker float64
	MaxShiftImbalance int
	TotalHours        float64
	FairnessGini      float64
}

// Report is everything the CLI needs to render the output JSON (spec §6),
// for either a successful solve or an exhausted relaxation ladder.
type Report struct {
	Success               bool
	Reason                string // populated only when !Success
	LastFailingConstraint string // populated only when Reason == "Infeasible"
	Conflict              *PreflightConflict // populated only when Reason == "BudgetCoverageConflict"

	Status             solver.Status
	Assignments        []model.Assignment
	WorkerStats        []model.WorkerStats
	TotalCost          float64
	BudgetUtilization  float64
	SolveTime          time.Duration
	RelaxationsApplied []string
	Statistics         Statistics
	CoverageGaps       []CoverageGap
	Coverage           stats.CoverageMetrics

	// Violations is the defense-in-depth sanity pass's findings: I1-I7
	// re-checked against the decoded assignment set. A clean solve
	// leaves this empty; anything here is logged and means the MIP
	// model and this re-check have drifted apart.
	Violations []constraint.Violation
}

// PreflightConflict is returned when the budget/coverage pre-flight
// check statically proves no assignment can satisfy both coverage and
// budget (spec §4.5).
type PreflightConflict struct {
	LowerBoundCost float64
	MaxTotalCost   float64
}

// Preflight computes lower_bound_cost and reports a conflict if it
// exceeds max_total_cost, without invoking the solver.
func Preflight(idx *problem.Index) (*PreflightConflict, bool) {
	lowerBound := 0.0
	for _, s := range idx.Problem.Shifts {
		minCost, ok := minEligibleCost(idx, s)
		if !ok {
			continue // no eligible worker at all; surfaced later as a coverage gap, not a budget conflict
		}
		lowerBound += minCost * float64(s.Headcount())
	}
	if lowerBound > idx.Problem.Budget.MaxTotalCost {
		return &PreflightConflict{LowerBoundCost: lowerBound, MaxTotalCost: idx.Problem.Budget.MaxTotalCost}, true
	}
	return nil, false
}

func minEligibleCost(idx *problem.Index, s *model.Shift) (float64, bool) {
	eligible := idx.EligibleByShift[s.ID]
	if len(eligible) == 0 {
		return 0, false
	}
	best := -1.0
	for _, w := range eligible {
		c := idx.Cost[problem.WorkerShiftKey{WorkerID: w.ID, ShiftID: s.ID}]
		if best < 0 || c < best {
			best = c
		}
	}
	return best, true
}

// relaxationStep names and mutates a relaxed copy of the problem.
type relaxationStep struct {
	name  string
	apply func(*model.Problem)
}

// ladder is the fixed five-step sequence of spec §4.5, each tried alone
// (from the original infeasible problem) in order, not stacked. The
// worked example in spec §8 scenario 4 reports a single relaxation name
// when a single step suffices, which only holds if each step starts
// fresh from the baseline.
var ladder = []relaxationStep{
	{
		name: "relax_max_consecutive_days",
		apply: func(p *model.Problem) {
			p.Fairness.MaxConsecutiveDays++
		},
	},
	{
		name: "relax_min_rest_hours",
		apply: func(p *model.Problem) {
			relaxed := p.Fairness.MinRestHours - 2
			if relaxed < 8 {
				relaxed = 8
			}
			p.Fairness.MinRestHours = relaxed
		},
	},
	{
		name: "drop_daily_budget_cap",
		apply: func(p *model.Problem) {
			p.Budget.MaxDailyCost = 0
		},
	},
	{
		name: "allow_10_percent_over_budget",
		apply: func(p *model.Problem) {
			p.Options.AllowOvertime = true
		},
	},
	{
		name: "drop_min_hours_constraint",
		apply: func(p *model.Problem) {
			for _, w := range p.Workers {
				w.MinHours = 0
			}
		},
	},
}

// Run solves the problem, and on INFEASIBLE works through the relaxation
// ladder, then assembles the final Report.
func Run(p *model.Problem) (*Report, error) {
	log := logger.NewSchedulerLogger()

	idx := problem.Build(p)
	if conflict, hasConflict := Preflight(idx); hasConflict {
		return &Report{
			Success:  false,
			Reason:   "BudgetCoverageConflict",
			Conflict: conflict,
		}, nil
	}

	sd := seed.Build(idx, p.Fairness)
	result, err := solver.Solve(idx, sd, p.Options)
	if err != nil {
		return nil, err
	}

	applied := []string{}
	if result.Status == solver.StatusInfeasible {
		result, applied = runLadder(p, log)
	}

	if result == nil || result.Status == solver.StatusInfeasible {
		return &Report{
			Success:               false,
			Reason:                "Infeasible",
			LastFailingConstraint: lastLadderName(),
			RelaxationsApplied:    applied,
		}, nil
	}

	return assemble(idx, result, applied, log), nil
}

func lastLadderName() string {
	if len(ladder) == 0 {
		return ""
	}
	return ladder[len(ladder)-1].name
}

// runLadder tries each relaxation step alone against the original
// problem, returning the first feasible result and its single-step
// relaxation name, or the last attempted (still-infeasible) result.
func runLadder(p *model.Problem, log *logger.SchedulerLogger) (*solver.Result, []string) {
	var last *solver.Result
	for _, step := range ladder {
		relaxed := cloneProblem(p)
		step.apply(relaxed)

		idx := problem.Build(relaxed)
		sd := seed.Build(idx, relaxed.Fairness)
		result, err := solver.Solve(idx, sd, relaxed.Options)
		if err != nil {
			continue
		}
		last = result
		if result.Status != solver.StatusInfeasible {
			log.RelaxationApplied(step.name)
			return result, []string{step.name}
		}
	}
	return last, nil
}

func cloneProblem(p *model.Problem) *model.Problem {
	clone := &model.Problem{
		Shifts:   p.Shifts, // shifts are never mutated by a relaxation step
		Budget:   p.Budget,
		Fairness: p.Fairness,
		Options:  p.Options,
		Warnings: p.Warnings,
	}
	clone.Workers = make([]*model.Worker, len(p.Workers))
	for i, w := range p.Workers {
		cp := *w
		clone.Workers[i] = &cp
	}
	return clone
}

func assemble(idx *problem.Index, result *solver.Result, applied []string, log *logger.SchedulerLogger) *Report {
	assignments := make([]model.Assignment, len(result.Assignments))
	copy(assignments, result.Assignments)
	sort.Slice(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		if a.Day.Index() != b.Day.Index() {
			return a.Day.Index() < b.Day.Index()
		}
		if a.Window.Start != b.Window.Start {
			return a.Window.Start < b.Window.Start
		}
		return a.WorkerID < b.WorkerID
	})

	violations := constraint.NewChecker(idx.Problem.Fairness).CheckAll(idx.Problem, assignments)
	for _, v := range violations {
		log.InvariantViolation(v.Invariant, v.WorkerID, v.Message)
	}

	workerRollup := workerStats(assignments)
	report := &Report{
		Success:            true,
		Status:             result.Status,
		Assignments:        assignments,
		WorkerStats:        workerRollup,
		TotalCost:          result.TotalCost,
		SolveTime:          result.SolveTime,
		RelaxationsApplied: applied,
		CoverageGaps:       coverageGaps(idx, assignments),
		Coverage:           stats.NewCoverageAnalyzer().Analyze(idx, assignments),
		Violations:         violations,
	}
	if idx.Problem.Budget.MaxTotalCost > 0 {
		report.BudgetUtilization = result.TotalCost / idx.Problem.Budget.MaxTotalCost
	}
	report.Statistics = solutionStatistics(workerRollup)
	return report
}

func workerStats(assignments []model.Assignment) []model.WorkerStats {
	byWorker := make(map[string]*model.WorkerStats)
	var order []string
	for _, a := range assignments {
		st, ok := byWorker[a.WorkerID]
		if !ok {
			st = &model.WorkerStats{WorkerID: a.WorkerID}
			byWorker[a.WorkerID] = st
			order = append(order, a.WorkerID)
		}
		st.TotalHours += a.DurationHours
		st.TotalCost += a.Cost
		st.ShiftCount++
		if !containsDay(st.Days, a.Day) {
			st.Days = append(st.Days, a.Day)
		}
	}
	sort.Strings(order)
	out := make([]model.WorkerStats, len(order))
	for i, id := range order {
		out[i] = *byWorker[id]
	}
	return out
}

func containsDay(days []model.Weekday, d model.Weekday) bool {
	for _, existing := range days {
		if existing == d {
			return true
		}
	}
	return false
}

func solutionStatistics(workerRollup []model.WorkerStats) Statistics {
	out := Statistics{NumWorkersUsed: len(workerRollup)}
	if len(workerRollup) == 0 {
		return out
	}
	minShifts, maxShifts := workerRollup[0].ShiftCount, workerRollup[0].ShiftCount
	for _, st := range workerRollup {
		out.TotalHours += st.TotalHours
		if st.ShiftCount < minShifts {
			minShifts = st.ShiftCount
		}
		if st.ShiftCount > maxShifts {
			maxShifts = st.ShiftCount
		}
	}
	out.AvgHoursPerWorker = out.TotalHours / float64(len(workerRollup))
	out.MaxShiftImbalance = maxShifts - minShifts
	out.FairnessGini = stats.NewFairnessAnalyzer().Analyze(workerRollup).WorkloadGini
	return out
}

// coverageGaps enumerates every under-filled requirement slot and
// classifies why (spec §4.5).
func coverageGaps(idx *problem.Index, assignments []model.Assignment) []CoverageGap {
	filledByReq := make(map[problem.ShiftReqKey]int)
	for _, a := range assignments {
		filledByReq[problem.ShiftReqKey{ShiftID: a.ShiftID, ReqIdx: a.RequirementIdx}]++
	}

	var gaps []CoverageGap
	for _, s := range idx.Problem.Shifts {
		for r, req := range s.Requirements {
			key := problem.ShiftReqKey{ShiftID: s.ID, ReqIdx: r}
			missing := req.Count - filledByReq[key]
			if missing <= 0 {
				continue
			}
			gaps = append(gaps, CoverageGap{
				ShiftID:             s.ID,
				Day:                 s.Day,
				Window:              s.Window,
				MissingCount:        missing,
				Role:                req.Role,
				RequiredSkill:       req.RequiredSkill,
				EligibleWorkerCount: len(idx.EligibleByReq[key]),
				Reason:              constraint.ClassifyGap(idx, assignments, s.ID, r),
			})
		}
	}
	return gaps
}
