// Package schema holds the exact wire types of the file-in/file-out
// contract (spec §6): the raw JSON shapes, before validation turns them
// into the canonical pkg/model types.
package schema

// Input is the engine's entire input document, read from argv[1].
type Input struct {
	Workers     []Worker    `json:"workers"`
	Shifts      []Shift     `json:"shifts"`
	Budget      Budget      `json:"budget"`
	Fairness    Fairness    `json:"fairness"`
	Constraints Constraints `json:"constraints"`
}

type Worker struct {
	ID           string         `json:"id"`
	Skills       []string       `json:"skills"`
	HourlyRate   float64        `json:"hourly_rate"`
	MaxHours     float64        `json:"max_hours"`
	MinHours     *float64       `json:"min_hours,omitempty"`
	Availability []Availability `json:"availability"`
}

type Availability struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type Shift struct {
	ID                    string        `json:"id"`
	Day                   string        `json:"day"`
	StartTime             string        `json:"start_time"`
	EndTime               string        `json:"end_time"`
	ShiftType             string        `json:"shift_type,omitempty"`
	RequiresOpeningDuties bool          `json:"requires_opening_duties,omitempty"`
	RequiresClosingDuties bool          `json:"requires_closing_duties,omitempty"`
	Requirements          []Requirement `json:"requirements"`
}

type Requirement struct {
	Role          string  `json:"role"`
	Count         int     `json:"count"`
	RequiredSkill *string `json:"required_skill,omitempty"`
}

type Budget struct {
	MaxTotalCost float64  `json:"max_total_cost"`
	MaxDailyCost *float64 `json:"max_daily_cost,omitempty"`
	TargetCost   *float64 `json:"target_cost,omitempty"`
}

type Fairness struct {
	MaxConsecutiveDays int  `json:"max_consecutive_days"`
	MinRestHours       float64 `json:"min_rest_hours"`
	MaxShiftImbalance  *int `json:"max_shift_imbalance,omitempty"`
}

type Constraints struct {
	TimeLimit      int   `json:"time_limit"`
	RandomSeed     *int64 `json:"random_seed,omitempty"`
	PreferFairness bool  `json:"prefer_fairness,omitempty"`
	AllowOvertime  bool  `json:"allow_overtime,omitempty"`
}
