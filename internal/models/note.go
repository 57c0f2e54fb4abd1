package models

import "time"

// NoteStatus tracks the follow-up state of a meeting note.
type NoteStatus string

const (
	NoteOpen      NoteStatus = "open"
	NoteCompleted NoteStatus = "completed"
	NoteClosed    NoteStatus = "closed"
)

// Valid returns true when the status is a supported value.
func (s NoteStatus) Valid() bool {
	switch s {
	case NoteOpen, NoteCompleted, NoteClosed:
		return true
	default:
		return false
	}
}

// MeetingNote is a minutes-of-meeting entry. Content is rich text
// (HTML); validation judges the stripped plain text.
type MeetingNote struct {
	ID         string     `db:"id" json:"id"`
	Date       string     `db:"date" json:"date"`
	Content    string     `db:"content" json:"content"`
	ActionItem string     `db:"action_item" json:"action_item"`
	Status     NoteStatus `db:"status" json:"status"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// NoteFilter scopes note listings.
type NoteFilter struct {
	Status   *NoteStatus
	Page     int
	PageSize int
}
