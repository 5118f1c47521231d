package repository

import (
	"scamshield/internal/app/model"
)

// VerdictDAO persists analysis verdicts for audit and export. Persistence is
// best-effort from the analyzer's perspective; the in-memory history ring is
// the authoritative recent view.
type VerdictDAO interface {
	// SaveVerdict stores one analysis record.
	SaveVerdict(entry model.HistoryEntry) error

	// ListRecent returns up to limit records, most recent first.
	ListRecent(limit int) ([]model.HistoryEntry, error)

	// Close releases the underlying store.
	Close() error
}
