package models

// Reminder is a dated alert. Date is YYYY-MM-DD and Time is HH:MM.
type Reminder struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}
