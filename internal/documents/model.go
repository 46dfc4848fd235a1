package documents

import (
	"time"

	"coverletter-gen/internal/state"
)

// Document is one selected input file with its extracted text.
type Document struct {
	Slot       state.Slot `json:"slot"`
	FileName   string     `json:"fileName"`
	Path       string     `json:"-"`
	MimeType   string     `json:"mimeType"`
	SizeBytes  int64      `json:"sizeBytes"`
	Text       string     `json:"-"`
	SelectedAt time.Time  `json:"selectedAt"`
}
