package testutil

import (
	"sync"

	"scamshield/internal/app/model"
	"scamshield/internal/app/repository"
)

// MockVerdictDAO is an in-memory VerdictDAO for tests.
type MockVerdictDAO struct {
	mu sync.Mutex

	Saved   []model.HistoryEntry
	SaveErr error
	ListErr error
	Closed  bool
}

// NewMockVerdictDAO creates an empty in-memory store.
func NewMockVerdictDAO() *MockVerdictDAO {
	return &MockVerdictDAO{}
}

func (m *MockVerdictDAO) SaveVerdict(entry model.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = append(m.Saved, entry)
	return nil
}

func (m *MockVerdictDAO) ListRecent(limit int) ([]model.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]model.HistoryEntry, 0, limit)
	for i := len(m.Saved) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.Saved[i])
	}
	return out, nil
}

func (m *MockVerdictDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// SavedCount returns the number of persisted entries.
func (m *MockVerdictDAO) SavedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Saved)
}

var _ repository.VerdictDAO = (*MockVerdictDAO)(nil)
