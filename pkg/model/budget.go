package model

// Budget is the cost envelope a solve must respect (spec §3 Budget
// envelope).
type Budget struct {
	MaxTotalCost float64
	MaxDailyCost float64 // 0 means unset
	TargetCost   float64 // 0 means unset; TargetCost <= MaxTotalCost when set
}

// HasDailyCap reports whether a per-day budget cap was supplied.
func (b Budget) HasDailyCap() bool {
	return b.MaxDailyCost > 0
}

// HasTarget reports whether a soft cost target was supplied.
func (b Budget) HasTarget() bool {
	return b.TargetCost > 0
}

// Fairness is the fairness/rest envelope a solve must respect (spec §3
// Fairness envelope).
type Fairness struct {
	MaxShiftImbalance  int // 0 means unset (no imbalance penalty cap)
	MaxConsecutiveDays int
	MinRestHours       float64
}

// SolveOptions carries the per-solve knobs from the "constraints" block
// of the input JSON (spec §6).
type SolveOptions struct {
	TimeLimitSeconds int
	RandomSeed       int64
	PreferFairness   bool
	AllowOvertime    bool
}

// DefaultTimeLimitSeconds is applied when the input omits constraints.time_limit
// (spec §4.4: "Time limit: input-configurable, default 60s").
const DefaultTimeLimitSeconds = 60
