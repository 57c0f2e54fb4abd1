package models

// Enumerated CSR field values. These mirror the fixed dropdowns of the
// registry form; free-form values are rejected at validation time.
var (
	CSRFinancialYears = []string{"21-22", "22-23", "23-24", "24-25", "25-26"}
	CSRNGONames       = []string{"IndiaSudar", "OSSAT", "Diyaghar", "Sapno ke"}
	CSRPhases         = []string{"Phase 1", "Phase 2", "Phase 3"}
	CSRProjects       = []string{"Infrastructure", "Painting", "Toilet construction", "Notebook distribution"}
	CSRStatuses       = []string{"Not started", "In Progress", "Completed"}
)

// CSREvent is a structured CSR project record. Records have no
// relational constraints between each other.
type CSREvent struct {
	FinancialYear    string  `json:"financial_year"`
	NGOName          string  `json:"ngo_name"`
	Phase            string  `json:"phase"`
	Project          string  `json:"project"`
	Location         string  `json:"location"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	InaugurationDate string  `json:"inauguration_date"`
	Participants     int     `json:"participants"`
	TotalCost        float64 `json:"total_cost"`
	GoogleLocation   string  `json:"google_location"`
	Status           string  `json:"status"`
}

// CSRFilter narrows the registry listing.
type CSRFilter struct {
	FinancialYear string // empty for all
	NGOName       string // empty for all
}
