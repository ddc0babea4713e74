package models

import "github.com/markdave123-py/docparser/internal/core"

// InputItem is one document submitted in a batch.
type InputItem struct {
	Data     []byte `json:"-"`
	Filename string `json:"filename,omitempty"` // optional, used only as a weak format hint
}

// IndexedOutcome is what a worker emits for one InputItem. Index is the
// item's position in the submitted batch.
type IndexedOutcome struct {
	Index  int
	Format core.Format
	Text   string
	Err    error
}

// ItemResult is the per-item view returned when a caller asks for partial
// results instead of the fail-fast batch contract.
type ItemResult struct {
	Index    int    `json:"index"`
	Filename string `json:"filename,omitempty"`
	Format   string `json:"format"`
	Text     string `json:"text,omitempty"`
	Err      error  `json:"-"`
}

// OK reports whether the item was extracted successfully.
func (r ItemResult) OK() bool { return r.Err == nil }
