package analyzer

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"scamshield/internal/app/model"
)

// DefaultHistoryCapacity bounds the in-memory analysis history.
const DefaultHistoryCapacity = 5

// previewLength caps the stored input preview.
const previewLength = 80

// History is a fixed-capacity ring of the most recent verdicts. Appends are
// O(1) and evict the oldest entry when full; entries are never mutated.
type History struct {
	mu       sync.Mutex
	entries  []model.HistoryEntry
	head     int
	size     int
	capacity int
}

// NewHistory creates a ring with the given capacity; non-positive values use
// the default.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{
		entries:  make([]model.HistoryEntry, capacity),
		capacity: capacity,
	}
}

// Append records a verdict with a truncated preview of its input and returns
// the stored entry.
func (h *History) Append(input string, verdict model.RiskVerdict) model.HistoryEntry {
	entry := model.HistoryEntry{
		ID:        uuid.NewString(),
		Preview:   truncate(input, previewLength),
		Verdict:   verdict,
		Timestamp: time.Now(),
	}

	h.mu.Lock()
	h.entries[h.head] = entry
	h.head = (h.head + 1) % h.capacity
	if h.size < h.capacity {
		h.size++
	}
	h.mu.Unlock()

	return entry
}

// List returns the retained entries, most recent first.
func (h *History) List() []model.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]model.HistoryEntry, 0, h.size)
	for i := 1; i <= h.size; i++ {
		idx := (h.head - i + h.capacity) % h.capacity
		out = append(out, h.entries[idx])
	}
	return out
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

// Capacity returns the fixed ring capacity.
func (h *History) Capacity() int {
	return h.capacity
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
