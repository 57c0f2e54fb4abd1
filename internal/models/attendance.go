package models

// AttendanceStatus classifies a working day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceWFH     AttendanceStatus = "WFH"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceWFH:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one day's check-in/out entry. At most one record
// exists per date. TotalTime is derived from the check times and is
// never settable directly.
type AttendanceRecord struct {
	Date      string           `json:"date"`
	CheckIn   string           `json:"check_in"`
	CheckOut  string           `json:"check_out"`
	TotalTime string           `json:"total_time"`
	Status    AttendanceStatus `json:"status"`
}

// AttendanceFilter scopes listing and rollups.
type AttendanceFilter struct {
	Month  string // YYYY-MM, empty for all
	Status AttendanceStatus
}

// AttendanceDay is one slot of a fixed week grid; Record is nil for
// dates without an entry.
type AttendanceDay struct {
	Date   string            `json:"date"`
	Record *AttendanceRecord `json:"record,omitempty"`
}

// AttendanceWeekPage is one week of the paginated attendance table.
type AttendanceWeekPage struct {
	WeekStart  string          `json:"week_start"`
	Days       []AttendanceDay `json:"days"`
	TotalWeeks int             `json:"total_weeks"`
	WeekIndex  int             `json:"week_index"`
}

// AttendanceSummary carries the rollup for the active filters.
type AttendanceSummary struct {
	Records   int    `json:"records"`
	TotalTime string `json:"total_time"`
}
