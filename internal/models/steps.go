package models

// StepRecord is one day's step count. One record per date.
type StepRecord struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

// StepTrendPeriod selects the trend window.
type StepTrendPeriod string

const (
	StepTrendWeek  StepTrendPeriod = "week"
	StepTrendMonth StepTrendPeriod = "month"
	StepTrendYear  StepTrendPeriod = "year"
)

// Valid returns true when the period is a supported value.
func (p StepTrendPeriod) Valid() bool {
	switch p {
	case StepTrendWeek, StepTrendMonth, StepTrendYear:
		return true
	default:
		return false
	}
}

// StepBucket is one aggregated row of the trend table.
type StepBucket struct {
	Label string `json:"label"`
	Steps int    `json:"steps"`
}

// StepTrend is the aggregate view for a period.
type StepTrend struct {
	Period     StepTrendPeriod `json:"period"`
	Cumulative int             `json:"cumulative"`
	Buckets    []StepBucket    `json:"buckets"`
}
