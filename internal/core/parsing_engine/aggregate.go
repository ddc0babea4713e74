package parsing_engine

import (
	"fmt"

	"github.com/markdave123-py/docparser/internal/models"
)

// Aggregate reduces per-item outcomes into the batch result: every text in
// input order, or the error of the lowest failing index. Completion order
// plays no part.
func Aggregate(outcomes []models.IndexedOutcome) ([]string, error) {
	texts := make([]string, len(outcomes))
	failed := -1
	var firstErr error

	for _, o := range outcomes {
		if o.Index < 0 || o.Index >= len(outcomes) {
			return nil, fmt.Errorf("outcome index %d out of range [0,%d)", o.Index, len(outcomes))
		}
		if o.Err != nil {
			if failed < 0 || o.Index < failed {
				failed, firstErr = o.Index, o.Err
			}
			continue
		}
		texts[o.Index] = o.Text
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return texts, nil
}

// Collect converts outcomes into per-item results, keeping every failure.
func Collect(items []models.InputItem, outcomes []models.IndexedOutcome) []models.ItemResult {
	results := make([]models.ItemResult, len(outcomes))
	for _, o := range outcomes {
		r := models.ItemResult{
			Index:  o.Index,
			Format: o.Format.String(),
			Text:   o.Text,
			Err:    o.Err,
		}
		if o.Index < len(items) {
			r.Filename = items[o.Index].Filename
		}
		results[o.Index] = r
	}
	return results
}
