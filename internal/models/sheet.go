package models

import "time"

// Sheet is an imported spreadsheet held as a header row plus a grid of
// string cells. Cell edits are tracked by "row:col" keys.
type Sheet struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Headers    []string        `json:"headers"`
	Rows       [][]string      `json:"rows"`
	Modified   map[string]bool `json:"modified,omitempty"`
	ImportedAt time.Time       `json:"imported_at"`
}

// SheetExport describes a rendered export file and its download link.
type SheetExport struct {
	FileName    string    `json:"file_name"`
	Format      string    `json:"format"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}
