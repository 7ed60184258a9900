package constraint

import (
	"github.com/shiftforge/engine/pkg/model"
	"github.com/shiftforge/engine/pkg/problem"
)

// GapReason classifies why a requirement slot went unfilled (spec §4.5).
type GapReason string

const (
	ReasonNoEligibleWorkers     GapReason = "NoEligibleWorkers"
	ReasonAllEligibleAtCap      GapReason = "AllEligibleAtCap"
	ReasonBudgetExhaustedForDay GapReason = "BudgetExhaustedForDay"
	ReasonOverlapBlocked        GapReason = "OverlapBlocked"
	ReasonUnknown               GapReason = "Unknown"
)

// ClassifyGap determines why shift s's requirement reqIdx was left
// uncovered by iterating its eligible pool and classifying why each
// member was rejected, against the final assignment set (spec §4.5:
// "iterate eligible workers, classify why each was rejected").
func ClassifyGap(idx *problem.Index, assignments []model.Assignment, shiftID string, reqIdx int) GapReason {
	key := problem.ShiftReqKey{ShiftID: shiftID, ReqIdx: reqIdx}
	eligible := idx.EligibleByReq[key]
	if len(eligible) == 0 {
		return ReasonNoEligibleWorkers
	}
	s := idx.ShiftByID(shiftID)
	if s == nil {
		return ReasonUnknown
	}

	hoursByWorker := make(map[string]float64)
	dailyCostByDay := make(map[model.Weekday]float64)
	windowsByWorkerDay := make(map[string][]model.Window)
	for _, a := range assignments {
		hoursByWorker[a.WorkerID] += a.DurationHours
		dailyCostByDay[a.Day] += a.Cost
		wdKey := a.WorkerID + "|" + string(a.Day)
		windowsByWorkerDay[wdKey] = append(windowsByWorkerDay[wdKey], a.Window)
	}

	allAtCap := true
	anyBudget := false
	anyOverlap := false
	budget := idx.Problem.Budget

	for _, w := range eligible {
		atCap := hoursByWorker[w.ID]+s.DurationHours() > w.MaxHours
		if !atCap {
			allAtCap = false
		}

		cost := idx.Cost[problem.WorkerShiftKey{WorkerID: w.ID, ShiftID: s.ID}]
		if budget.HasDailyCap() && dailyCostByDay[s.Day]+cost > budget.MaxDailyCost {
			anyBudget = true
		}

		wdKey := w.ID + "|" + string(s.Day)
		for _, win := range windowsByWorkerDay[wdKey] {
			if win.Overlaps(s.Window) {
				anyOverlap = true
				break
			}
		}
	}

	switch {
	case allAtCap:
		return ReasonAllEligibleAtCap
	case anyBudget:
		return ReasonBudgetExhaustedForDay
	case anyOverlap:
		return ReasonOverlapBlocked
	default:
		return ReasonUnknown
	}
}
