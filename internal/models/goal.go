package models

// GoalType buckets goals by cadence.
type GoalType string

const (
	GoalDaily   GoalType = "Daily"
	GoalWeekly  GoalType = "Weekly"
	GoalMonthly GoalType = "Monthly"
)

// Valid returns true when the type is a supported value.
func (t GoalType) Valid() bool {
	switch t {
	case GoalDaily, GoalWeekly, GoalMonthly:
		return true
	default:
		return false
	}
}

// GoalStatus tracks completion.
type GoalStatus string

const (
	GoalPending   GoalStatus = "Pending"
	GoalCompleted GoalStatus = "Completed"
)

// Valid returns true when the status is a supported value.
func (s GoalStatus) Valid() bool {
	return s == GoalPending || s == GoalCompleted
}

// Goal is a tracked personal goal.
type Goal struct {
	ID          string     `json:"id"`
	Type        GoalType   `json:"type"`
	Description string     `json:"description"`
	TargetDate  string     `json:"target_date"`
	Status      GoalStatus `json:"status"`
}
