package stats

import (
	"github.com/shiftforge/engine/pkg/model"
	"github.com/shiftforge/engine/pkg/problem"
)

// DayCoverage is one day's filled-vs-required requirement-slot rollup.
type DayCoverage struct {
	RequiredSlots int
	FilledSlots   int
	CoverageRate  float64
}

// CoverageMetrics is the per-day and per-shift-type coverage rollup
// CoverageAnalyzer.Analyze produces. It groups the same requirement
// slots the output contract's coverage_gaps enumerates, at coarser
// grain, without changing the required gap record shape.
type CoverageMetrics struct {
	OverallCoverage float64
	ByDay           map[model.Weekday]DayCoverage
	ByShiftType     map[model.ShiftType]float64
}

// CoverageAnalyzer rolls up filled-vs-required requirement slots by day
// and shift type, generalizing the source repo's DailyCoverage/
// ShiftTypeCoverage breakdown.
type CoverageAnalyzer struct{}

func NewCoverageAnalyzer() *CoverageAnalyzer {
	return &CoverageAnalyzer{}
}

func (c *CoverageAnalyzer) Analyze(idx *problem.Index, assignments []model.Assignment) CoverageMetrics {
	filledByReq := make(map[problem.ShiftReqKey]int)
	for _, a := range assignments {
		filledByReq[problem.ShiftReqKey{ShiftID: a.ShiftID, ReqIdx: a.RequirementIdx}]++
	}

	byDay := make(map[model.Weekday]*DayCoverage)
	type typeTotals struct{ required, filled int }
	byType := make(map[model.ShiftType]*typeTotals)
	var totalRequired, totalFilled int

	for _, s := range idx.Problem.Shifts {
		for r, req := range s.Requirements {
			key := problem.ShiftReqKey{ShiftID: s.ID, ReqIdx: r}
			filled := filledByReq[key]
			if filled > req.Count {
				filled = req.Count
			}
			totalRequired += req.Count
			totalFilled += filled

			dc, ok := byDay[s.Day]
			if !ok {
				dc = &DayCoverage{}
				byDay[s.Day] = dc
			}
			dc.RequiredSlots += req.Count
			dc.FilledSlots += filled

			tt, ok := byType[s.ShiftType]
			if !ok {
				tt = &typeTotals{}
				byType[s.ShiftType] = tt
			}
			tt.required += req.Count
			tt.filled += filled
		}
	}

	out := CoverageMetrics{
		ByDay:       make(map[model.Weekday]DayCoverage, len(byDay)),
		ByShiftType: make(map[model.ShiftType]float64, len(byType)),
	}
	if totalRequired > 0 {
		out.OverallCoverage = float64(totalFilled) / float64(totalRequired)
	}
	for day, dc := range byDay {
		if dc.RequiredSlots > 0 {
			dc.CoverageRate = float64(dc.FilledSlots) / float64(dc.RequiredSlots)
		}
		out.ByDay[day] = *dc
	}
	for shiftType, tt := range byType {
		if tt.required > 0 {
			out.ByShiftType[shiftType] = float64(tt.filled) / float64(tt.required)
		}
	}
	return out
}
