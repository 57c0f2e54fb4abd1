package models

import (
	"encoding/json"
	"time"
)

// StateSnapshot is a point-in-time dump of every state document,
// keyed by document name, with the stored JSON passed through as-is.
type StateSnapshot struct {
	TakenAt   time.Time                  `json:"taken_at"`
	Documents map[string]json.RawMessage `json:"documents"`
}
