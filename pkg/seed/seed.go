// Package seed implements the First-Fit-Decreasing Seed Builder (spec
// §4.3): a warm-start assignment that the solver folds into its objective
// as a tiny preference for the seeded choices. The seed is not used as a
// fallback: a solve that finds no solution within its time limit reports
// INFEASIBLE without returning the seed's assignments. Grounded on the source repo's two-phase
// greedy solver (pkg/scheduler/solver/greedy.go), generalized from "one
// round per pass, least-loaded first" to the spec's single-pass,
// difficulty-ordered ranking with an explicit tie-break rule.
package seed

import (
	"sort"

	"github.com/shiftforge/engine/pkg/model"
	"github.com/shiftforge/engine/pkg/problem"
)

// Assignment is one seeded (worker, shift, requirement) decision.
type Assignment struct {
	WorkerID string
	ShiftID  string
	ReqIdx   int
}

// Seed is the FFD warm-start result (spec §4.3 output: "Seed ⊆ W x S,
// consistent with I1-I3, I5-I7 but possibly violating I4 low bound").
type Seed struct {
	Assignments []Assignment

	// Unfilled counts, per (shift, requirement), how many slots the seed
	// pass could not fill — "seed assigns what it can and records a
	// partial-seed gap; the solver may still close it" (spec §4.3).
	Unfilled map[problem.ShiftReqKey]int
}

// Has reports whether the seed assigned worker w to shift s under
// requirement r — used by the solver as a value-ordering hint
// ("prefer 1 for seeded pairs, 0 otherwise", spec §4.4).
func (s *Seed) Has(workerID, shiftID string, reqIdx int) bool {
	for _, a := range s.Assignments {
		if a.WorkerID == workerID && a.ShiftID == shiftID && a.ReqIdx == reqIdx {
			return true
		}
	}
	return false
}

type workerState struct {
	hoursAssigned float64
	byDay         map[model.Weekday][]model.Window
	daysWorked    map[model.Weekday]struct{}
}

// Build runs the FFD algorithm of spec §4.3 over the indexed problem.
func Build(idx *problem.Index, fairness model.Fairness) *Seed {
	seed := &Seed{Unfilled: make(map[problem.ShiftReqKey]int)}
	states := make(map[string]*workerState, len(idx.Problem.Workers))
	for _, w := range idx.Problem.Workers {
		states[w.ID] = &workerState{
			byDay:      make(map[model.Weekday][]model.Window),
			daysWorked: make(map[model.Weekday]struct{}),
		}
	}

	budget := idx.Problem.Budget
	totalCost := 0.0
	dailyCost := make(map[model.Weekday]float64)

	for _, shift := range idx.OrderByDifficulty() {
		for reqIdx, req := range shift.Requirements {
			key := problem.ShiftReqKey{ShiftID: shift.ID, ReqIdx: reqIdx}
			candidates := rankCandidates(idx.EligibleByReq[key], states)

			filled := 0
			for _, w := range candidates {
				if filled >= req.Count {
					break
				}
				st := states[w.ID]
				if !feasible(st, w, shift, fairness) {
					continue
				}
				cost := idx.Cost[problem.WorkerShiftKey{WorkerID: w.ID, ShiftID: shift.ID}]
				if totalCost+cost > budget.MaxTotalCost || (budget.HasDailyCap() && dailyCost[shift.Day]+cost > budget.MaxDailyCost) {
					continue
				}
				commit(st, shift)
				totalCost += cost
				dailyCost[shift.Day] += cost
				seed.Assignments = append(seed.Assignments, Assignment{WorkerID: w.ID, ShiftID: shift.ID, ReqIdx: reqIdx})
				filled++
			}
			if filled < req.Count {
				seed.Unfilled[key] = req.Count - filled
			}
		}
	}
	return seed
}

// rankCandidates orders eligible workers by (a) ascending current-week
// assigned hours, (b) ascending hourly rate, (c) lexicographic id.
func rankCandidates(eligible []*model.Worker, states map[string]*workerState) []*model.Worker {
	out := make([]*model.Worker, len(eligible))
	copy(out, eligible)
	sort.Slice(out, func(i, j int) bool {
		wi, wj := out[i], out[j]
		hi, hj := states[wi.ID].hoursAssigned, states[wj.ID].hoursAssigned
		if hi != hj {
			return hi < hj
		}
		if wi.HourlyRate != wj.HourlyRate {
			return wi.HourlyRate < wj.HourlyRate
		}
		return wi.ID < wj.ID
	})
	return out
}

// feasible checks the candidate against max_hours, overlap freedom,
// min_rest_hours, and max_consecutive_days — the seed must stay
// consistent with I1-I3, I5-I7 (spec §4.3).
func feasible(st *workerState, w *model.Worker, shift *model.Shift, fairness model.Fairness) bool {
	if st.hoursAssigned+shift.DurationHours() > w.MaxHours {
		return false
	}
	for _, win := range st.byDay[shift.Day] {
		if win.Overlaps(shift.Window) {
			return false
		}
	}
	if !restSatisfied(st, shift, fairness.MinRestHours) {
		return false
	}
	if !consecutiveDaysOK(st, shift.Day, fairness.MaxConsecutiveDays) {
		return false
	}
	return true
}

func restSatisfied(st *workerState, shift *model.Shift, minRestHours float64) bool {
	checkDay := func(day model.Weekday, before bool) bool {
		windows, ok := st.byDay[day]
		if !ok {
			return true
		}
		for _, win := range windows {
			var gapMinutes int
			if before {
				gapMinutes = (24*60 - win.End.Minutes()) + shift.Window.Start.Minutes()
			} else {
				gapMinutes = (24*60 - shift.Window.End.Minutes()) + win.Start.Minutes()
			}
			if float64(gapMinutes)/60.0 < minRestHours {
				return false
			}
		}
		return true
	}
	if shift.Day.Index() > 0 {
		prevDay := model.Weekday("")
		for _, d := range []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday, model.Saturday, model.Sunday} {
			if d.Index() == shift.Day.Index()-1 {
				prevDay = d
				break
			}
		}
		if prevDay != "" && !checkDay(prevDay, true) {
			return false
		}
	}
	if shift.Day.Index() < 6 {
		next := shift.Day.Next()
		if !checkDay(next, false) {
			return false
		}
	}
	return true
}

func consecutiveDaysOK(st *workerState, day model.Weekday, maxConsecutiveDays int) bool {
	days := make(map[int]struct{}, len(st.daysWorked)+1)
	for d := range st.daysWorked {
		days[d.Index()] = struct{}{}
	}
	days[day.Index()] = struct{}{}

	run, maxRun := 0, 0
	for d := 0; d < 7; d++ {
		if _, ok := days[d]; ok {
			run++
			if run > maxRun {
				maxRun = run
			}
		} else {
			run = 0
		}
	}
	return maxRun <= maxConsecutiveDays
}

func commit(st *workerState, shift *model.Shift) {
	st.hoursAssigned += shift.DurationHours()
	st.byDay[shift.Day] = append(st.byDay[shift.Day], shift.Window)
	st.daysWorked[shift.Day] = struct{}{}
}
