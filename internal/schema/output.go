package schema

// Output is the envelope written to argv[2] on a clean solve (spec §6).
// Exactly one of the success or failure shapes is populated, selected by
// Success.
type Output struct {
	Success      bool           `json:"success"`
	Reason       string         `json:"reason,omitempty"`
	Details      interface{}    `json:"details,omitempty"`
	Solution     *Solution      `json:"solution,omitempty"`
	CoverageGaps []CoverageGap  `json:"coverage_gaps"`
	Messages     []string       `json:"messages"`
}

type Solution struct {
	Assignments         []Assignment `json:"assignments"`
	TotalCost           float64      `json:"total_cost"`
	BudgetUtilization   float64      `json:"budget_utilization"`
	SolveTime           float64      `json:"solve_time"`
	Status              string       `json:"status"` // OPTIMAL | FEASIBLE
	RelaxationsApplied  []string     `json:"relaxations_applied"`
	Statistics          Statistics   `json:"statistics"`
}

type Assignment struct {
	WorkerID      string  `json:"worker_id"`
	ShiftID       string  `json:"shift_id"`
	Day           string  `json:"day"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
	Cost          float64 `json:"cost"`
}

type Statistics struct {
	NumWorkersUsed    int     `json:"num_workers_used"`
	AvgHoursPerWorker float64 `json:"avg_hours_per_worker"`
	MaxShiftImbalance int     `json:"max_shift_imbalance"`
	TotalHours        float64 `json:"total_hours"`
	FairnessGini      float64 `json:"fairness_gini,omitempty"`
}

// CoverageGap is one line of under-covered demand (spec §4.5).
type CoverageGap struct {
	ShiftID             string `json:"shift_id"`
	Day                 string `json:"day"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	MissingCount        int    `json:"missing_count"`
	Role                string `json:"role"`
	RequiredSkill       string `json:"required_skill,omitempty"`
	EligibleWorkerCount int    `json:"eligible_worker_count"`
	Reason              string `json:"reason"`
}
