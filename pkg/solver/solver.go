// Package solver implements the Constraint Solver (spec §4.4): a CP-SAT
// style integer program built on github.com/nextmv-io/sdk/mip and solved
// through its "highs" provider, the way the order-fulfillment-gosdk
// template in the retrieval pack builds and solves its own assignment
// model. It keeps the source repo's Solver interface shape
// (pkg/scheduler/solver/greedy.go's Solve(ctx, ...) (*Result, error)) but
// replaces the greedy body with a real ILP.
package solver

import (
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/shiftforge/engine/pkg/logger"
	"github.com/shiftforge/engine/pkg/model"
	"github.com/shiftforge/engine/pkg/problem"
	"github.com/shiftforge/engine/pkg/seed"
)

// Status mirrors spec §4.4's termination states.
type Status string

const (
	StatusOptimal    Status = "OPTIMAL"
	StatusFeasible   Status = "FEASIBLE"
	StatusInfeasible Status = "INFEASIBLE"
)

// Weighted objective terms (spec §4.4 O1-O5).
const (
	WeightCost            = 1.0
	WeightBudgetDeviation = 0.5
	WeightFairness        = 2.0
	WeightCoverage        = 10.0
	WeightUnderMinHours   = 1.0
)

// Result is the outcome of one solve call.
type Result struct {
	Status         Status
	Assignments    []model.Assignment
	TotalCost      float64
	ObjectiveValue float64
	SolveTime      time.Duration
}

type varKey struct {
	ShiftID  string
	ReqIdx   int
	WorkerID string
}

// Solve builds and solves the ILP over the indexed problem, seeded with
// the FFD warm start's variable-creation order (spec §4.4: "Variable
// ordering: by descending shift difficulty").
func Solve(idx *problem.Index, sd *seed.Seed, opts model.SolveOptions) (*Result, error) {
	log := logger.NewSchedulerLogger()
	log.StartSolve(len(idx.Problem.Workers), len(idx.Problem.Shifts), opts.TimeLimitSeconds)

	m := mip.NewModel()
	m.Objective().SetMinimize()

	vars := make(map[varKey]mip.Bool)
	varsByWS := make(map[problem.WorkerShiftKey][]mip.Bool)

	// Decision variables: x[w,s,r] for every (w,s) in E, partitioned by
	// requirement slot (spec §4.4 "Requirement-level modeling").
	// Shifts are created in descending-difficulty order so the model's
	// internal variable ordering matches the seed's ranking.
	for _, s := range idx.OrderByDifficulty() {
		for r := range s.Requirements {
			key := problem.ShiftReqKey{ShiftID: s.ID, ReqIdx: r}
			for _, w := range idx.EligibleByReq[key] {
				v := m.NewBool()
				vk := varKey{ShiftID: s.ID, ReqIdx: r, WorkerID: w.ID}
				vars[vk] = v
				wsKey := problem.WorkerShiftKey{WorkerID: w.ID, ShiftID: s.ID}
				varsByWS[wsKey] = append(varsByWS[wsKey], v)
			}
		}
	}

	addDemandConstraints(m, idx, vars)
	addOverlapConstraints(m, idx, varsByWS)
	addHoursConstraints(m, idx, varsByWS)
	addBudgetConstraints(m, idx, varsByWS, opts)
	addRestConstraints(m, idx, varsByWS)
	addConsecutiveDaysConstraints(m, idx, varsByWS)
	addObjective(m, idx, vars, varsByWS, sd)

	mipSolver, err := mip.NewSolver("highs", m)
	if err != nil {
		return nil, err
	}
	solveOptions := mip.SolveOptions{}
	solveOptions.Duration = time.Duration(opts.TimeLimitSeconds) * time.Second
	solveOptions.Verbosity = mip.Off

	solution, err := mipSolver.Solve(solveOptions)
	if err != nil {
		return nil, err
	}

	result := &Result{SolveTime: 0}
	if solution == nil || !solution.HasValues() {
		result.Status = StatusInfeasible
		log.SolveComplete(string(result.Status), result.SolveTime, 0)
		return result, nil
	}

	result.SolveTime = solution.RunTime()
	result.ObjectiveValue = solution.ObjectiveValue()
	if solution.IsOptimal() {
		result.Status = StatusOptimal
	} else {
		result.Status = StatusFeasible
	}

	for key, v := range vars {
		if solution.Value(v) > 0.5 {
			s := idx.ShiftByID(key.ShiftID)
			w := idx.WorkerByID(key.WorkerID)
			cost := idx.Cost[problem.WorkerShiftKey{WorkerID: w.ID, ShiftID: s.ID}]
			result.Assignments = append(result.Assignments, model.Assignment{
				WorkerID:       w.ID,
				ShiftID:        s.ID,
				Day:            s.Day,
				Window:         s.Window,
				DurationHours:  s.DurationHours(),
				Cost:           cost,
				RequirementIdx: key.ReqIdx,
			})
			result.TotalCost += cost
		}
	}

	log.SolveComplete(string(result.Status), result.SolveTime, result.TotalCost)
	return result, nil
}

// addDemandConstraints encodes H1 (per-shift demand upper bound) and H2
// (per-requirement capacity plus the one-slot-per-shift partition).
func addDemandConstraints(m mip.Model, idx *problem.Index, vars map[varKey]mip.Bool) {
	for _, s := range idx.Problem.Shifts {
		shiftConstraint := m.NewConstraint(mip.LessThanOrEqual, float64(s.Headcount()))

		perWorkerSlot := make(map[string]mip.Constraint)
		for r, req := range s.Requirements {
			key := problem.ShiftReqKey{ShiftID: s.ID, ReqIdx: r}
			reqConstraint := m.NewConstraint(mip.LessThanOrEqual, float64(req.Count))
			for _, w := range idx.EligibleByReq[key] {
				v := vars[varKey{ShiftID: s.ID, ReqIdx: r, WorkerID: w.ID}]
				reqConstraint.NewTerm(1.0, v)
				shiftConstraint.NewTerm(1.0, v)

				slot, ok := perWorkerSlot[w.ID]
				if !ok {
					slot = m.NewConstraint(mip.LessThanOrEqual, 1.0)
					perWorkerSlot[w.ID] = slot
				}
				slot.NewTerm(1.0, v)
			}
		}
	}
}

// addOverlapConstraints encodes H3: for each worker, overlapping shifts
// on the same day are mutually exclusive.
func addOverlapConstraints(m mip.Model, idx *problem.Index, varsByWS map[problem.WorkerShiftKey][]mip.Bool) {
	seenPair := make(map[string]struct{})
	for _, s1 := range idx.Problem.Shifts {
		for _, s2ID := range idx.Overlap[s1.ID] {
			pairKey := pairKeyOf(s1.ID, s2ID)
			if _, done := seenPair[pairKey]; done {
				continue
			}
			seenPair[pairKey] = struct{}{}

			for _, w := range idx.Problem.Workers {
				v1, ok1 := varsByWS[problem.WorkerShiftKey{WorkerID: w.ID, ShiftID: s1.ID}]
				v2, ok2 := varsByWS[problem.WorkerShiftKey{WorkerID: w.ID, ShiftID: s2ID}]
				if !ok1 || !ok2 {
					continue
				}
				mutex := m.NewConstraint(mip.LessThanOrEqual, 1.0)
				for _, v := range v1 {
					mutex.NewTerm(1.0, v)
				}
				for _, v := range v2 {
					mutex.NewTerm(1.0, v)
				}
			}
		}
	}
}

func pairKeyOf(a, b string) string {
	if a < b {
		return a + "|" + b
	}
	return b + "|" + a
}

// addHoursConstraints encodes H4: weekly hours bound per worker.
func addHoursConstraints(m mip.Model, idx *problem.Index, varsByWS map[problem.WorkerShiftKey][]mip.Bool) {
	for _, w := range idx.Problem.Workers {
		hoursConstraint := m.NewConstraint(mip.LessThanOrEqual, w.MaxHours)
		for _, s := range idx.Problem.Shifts {
			vs, ok := varsByWS[problem.WorkerShiftKey{WorkerID: w.ID, ShiftID: s.ID}]
			if !ok {
				continue
			}
			for _, v := range vs {
				hoursConstraint.NewTerm(s.DurationHours(), v)
			}
		}
	}
}

// addBudgetConstraints encodes H5 (total budget) and H6 (daily budget,
// when set).
func addBudgetConstraints(m mip.Model, idx *problem.Index, varsByWS map[problem.WorkerShiftKey][]mip.Bool, opts model.SolveOptions) {
	budget := idx.Problem.Budget
	totalLimit := budget.MaxTotalCost
	if opts.AllowOvertime {
		totalLimit *= 1.10
	}
	totalConstraint := m.NewConstraint(mip.LessThanOrEqual, totalLimit)

	dailyConstraints := make(map[model.Weekday]mip.Constraint)
	if budget.HasDailyCap() {
		for _, d := range []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday, model.Saturday, model.Sunday} {
			dailyConstraints[d] = m.NewConstraint(mip.LessThanOrEqual, budget.MaxDailyCost)
		}
	}

	for _, w := range idx.Problem.Workers {
		for _, s := range idx.Problem.Shifts {
			vs, ok := varsByWS[problem.WorkerShiftKey{WorkerID: w.ID, ShiftID: s.ID}]
			if !ok {
				continue
			}
			cost := idx.Cost[problem.WorkerShiftKey{WorkerID: w.ID, ShiftID: s.ID}]
			for _, v := range vs {
				totalConstraint.NewTerm(cost, v)
				if c, ok := dailyConstraints[s.Day]; ok {
					c.NewTerm(cost, v)
				}
			}
		}
	}
}

// addRestConstraints encodes H7: shift pairs on adjacent days whose
// end-to-start gap falls below min_rest_hours are mutually exclusive.
func addRestConstraints(m mip.Model, idx *problem.Index, varsByWS map[problem.WorkerShiftKey][]mip.Bool) {
	minRest := idx.Problem.Fairness.MinRestHours
	shifts := idx.Problem.Shifts
	for i := 0; i < len(shifts); i++ {
		for j := 0; j < len(shifts); j++ {
			if i == j {
				continue
			}
			s1, s2 := shifts[i], shifts[j]
			if s2.Day.Index() != s1.Day.Index()+1 {
				continue
			}
			gapMinutes := (24*60 - s1.Window.End.Minutes()) + s2.Window.Start.Minutes()
			gapHours := float64(gapMinutes) / 60.0
			if gapHours >= minRest {
				continue
			}
			for _, w := range idx.Problem.Workers {
				v1, ok1 := varsByWS[problem.WorkerShiftKey{WorkerID: w.ID, ShiftID: s1.ID}]
				v2, ok2 := varsByWS[problem.WorkerShiftKey{WorkerID: w.ID, ShiftID: s2.ID}]
				if !ok1 || !ok2 {
					continue
				}
				mutex := m.NewConstraint(mip.LessThanOrEqual, 1.0)
				for _, v := range v1 {
					mutex.NewTerm(1.0, v)
				}
				for _, v := range v2 {
					mutex.NewTerm(1.0, v)
				}
			}
		}
	}
}

// addConsecutiveDaysConstraints encodes H8: y[w,d] = OR_{s.day=d} x[w,s],
// linearized as y[w,d] >= x[w,s] for every shift s on day d, then capping
// any max_consecutive_days+1 window of y to max_consecutive_days.
func addConsecutiveDaysConstraints(m mip.Model, idx *problem.Index, varsByWS map[problem.WorkerShiftKey][]mip.Bool) {
	maxConsec := idx.Problem.Fairness.MaxConsecutiveDays
	windowLen := maxConsec + 1
	if windowLen > 7 {
		return
	}

	days := []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday, model.Saturday, model.Sunday}
	shiftsByDay := make(map[model.Weekday][]*model.Shift)
	for _, s := range idx.Problem.Shifts {
		shiftsByDay[s.Day] = append(shiftsByDay[s.Day], s)
	}

	for _, w := range idx.Problem.Workers {
		y := make(map[model.Weekday]mip.Bool)
		for _, d := range days {
			if len(shiftsByDay[d]) == 0 {
				continue
			}
			yd := m.NewBool()
			y[d] = yd
			for _, s := range shiftsByDay[d] {
				vs, ok := varsByWS[problem.WorkerShiftKey{WorkerID: w.ID, ShiftID: s.ID}]
				if !ok {
					continue
				}
				for _, v := range vs {
					// x[w,s] - y[w,d] <= 0
					bound := m.NewConstraint(mip.LessThanOrEqual, 0.0)
					bound.NewTerm(1.0, v)
					bound.NewTerm(-1.0, yd)
				}
			}
		}
		for start := 0; start+windowLen <= 7; start++ {
			windowConstraint := m.NewConstraint(mip.LessThanOrEqual, float64(maxConsec))
			for k := 0; k < windowLen; k++ {
				d := days[start+k]
				if yd, ok := y[d]; ok {
					windowConstraint.NewTerm(1.0, yd)
				}
			}
		}
	}
}

// seedPreferenceWeight is a vanishingly small objective nudge toward the
// warm start's choices (spec §4.4 "prefer 1 for seeded pairs, 0
// otherwise"). It is orders of magnitude below the real cost terms, so it
// only breaks ties the true objective is indifferent to; nextmv-io/sdk's
// mip.Model exposes no separate hint or branching-priority API to attach
// this to instead (see DESIGN.md).
const seedPreferenceWeight = 1e-6

// addObjective encodes O1-O5 (spec §4.4), nudged by the seed's warm start.
func addObjective(m mip.Model, idx *problem.Index, vars map[varKey]mip.Bool, varsByWS map[problem.WorkerShiftKey][]mip.Bool, sd *seed.Seed) {
	// O1: labor cost, nudged toward the seed's (worker, shift, requirement)
	// choices.
	for key, v := range vars {
		cost := idx.Cost[problem.WorkerShiftKey{WorkerID: key.WorkerID, ShiftID: key.ShiftID}]
		coeff := WeightCost * cost
		if !sd.Has(key.WorkerID, key.ShiftID, key.ReqIdx) {
			coeff += seedPreferenceWeight
		}
		m.Objective().NewTerm(coeff, v)
	}

	// O4: coverage penalty. Minimizing -penalty*x is equivalent, up to a
	// constant, to minimizing penalty*(headcount - assigned). The per-slot
	// penalty is WeightCoverage times one more than the largest cost
	// coefficient, so filling a slot lowers the objective by more than its
	// cost (O1), budget-deviation (O2) and imbalance (O3) terms raise it.
	maxCost := 0.0
	for _, c := range idx.Cost {
		if c > maxCost {
			maxCost = c
		}
	}
	coveragePenalty := WeightCoverage * (maxCost + 1)
	for _, v := range vars {
		m.Objective().NewTerm(-coveragePenalty, v)
	}

	// O2: budget-target deviation, linearized with two non-negative slacks.
	if idx.Problem.Budget.HasTarget() {
		posDev := m.NewFloat(0, idx.Problem.Budget.MaxTotalCost)
		negDev := m.NewFloat(0, idx.Problem.Budget.MaxTotalCost)
		deviation := m.NewConstraint(mip.Equal, -idx.Problem.Budget.TargetCost)
		deviation.NewTerm(1.0, posDev)
		deviation.NewTerm(-1.0, negDev)
		for key, v := range vars {
			cost := idx.Cost[problem.WorkerShiftKey{WorkerID: key.WorkerID, ShiftID: key.ShiftID}]
			deviation.NewTerm(-cost, v)
		}
		m.Objective().NewTerm(WeightBudgetDeviation, posDev)
		m.Objective().NewTerm(WeightBudgetDeviation, negDev)
	}

	// O3: shift-count imbalance, linearized with shift_max/shift_min.
	numWorkers := len(idx.Problem.Workers)
	numShifts := len(idx.Problem.Shifts)
	if numWorkers > 0 {
		shiftMax := m.NewFloat(0, float64(numShifts))
		shiftMin := m.NewFloat(0, float64(numShifts))
		for _, w := range idx.Problem.Workers {
			upper := m.NewConstraint(mip.LessThanOrEqual, 0.0)
			upper.NewTerm(-1.0, shiftMax)
			lower := m.NewConstraint(mip.GreaterThanOrEqual, 0.0)
			lower.NewTerm(-1.0, shiftMin)
			for _, s := range idx.Problem.Shifts {
				vs, ok := varsByWS[problem.WorkerShiftKey{WorkerID: w.ID, ShiftID: s.ID}]
				if !ok {
					continue
				}
				for _, v := range vs {
					upper.NewTerm(1.0, v)
					lower.NewTerm(1.0, v)
				}
			}
		}
		m.Objective().NewTerm(WeightFairness, shiftMax)
		m.Objective().NewTerm(-WeightFairness, shiftMin)
	}

	// O5: under-min-hours penalty.
	for _, w := range idx.Problem.Workers {
		if w.MinHours <= 0 {
			continue
		}
		u := m.NewFloat(0, w.MinHours)
		hoursShort := m.NewConstraint(mip.GreaterThanOrEqual, w.MinHours)
		hoursShort.NewTerm(1.0, u)
		for _, s := range idx.Problem.Shifts {
			vs, ok := varsByWS[problem.WorkerShiftKey{WorkerID: w.ID, ShiftID: s.ID}]
			if !ok {
				continue
			}
			for _, v := range vs {
				hoursShort.NewTerm(s.DurationHours(), v)
			}
		}
		m.Objective().NewTerm(WeightUnderMinHours, u)
	}
}
