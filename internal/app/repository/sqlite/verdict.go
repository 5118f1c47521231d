package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"scamshield/internal/app/model"
)

// VerdictStore is the sqlite-backed VerdictDAO.
type VerdictStore struct {
	db *sql.DB
}

// NewVerdictStore opens the database at dbPath and returns the store.
func NewVerdictStore(dbPath string) (*VerdictStore, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &VerdictStore{db: db}, nil
}

// NewVerdictStoreWithDB wraps an existing connection, used by tests.
func NewVerdictStoreWithDB(db *sql.DB) *VerdictStore {
	return &VerdictStore{db: db}
}

// SaveVerdict stores one analysis record. List-valued fields are stored as
// JSON text columns.
func (s *VerdictStore) SaveVerdict(entry model.HistoryEntry) error {
	flags, err := json.Marshal(entry.Verdict.Flags)
	if err != nil {
		return fmt.Errorf("failed to encode flags: %w", err)
	}
	recs, err := json.Marshal(entry.Verdict.Recommendations)
	if err != nil {
		return fmt.Errorf("failed to encode recommendations: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO analysis_history
			(id, preview, risk_level, aggregate_score, scam_type, engine_used,
			 transcript, flags, recommendations, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Preview,
		string(entry.Verdict.RiskLevel),
		entry.Verdict.AggregateScore,
		entry.Verdict.ScamType,
		entry.Verdict.EngineUsed,
		entry.Verdict.Transcript,
		string(flags),
		string(recs),
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis record: %w", err)
	}
	return nil
}

// ListRecent returns up to limit records, most recent first.
func (s *VerdictStore) ListRecent(limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, preview, risk_level, aggregate_score, scam_type,
		       engine_used, transcript, flags, recommendations, created_at
		FROM analysis_history
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis history: %w", err)
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var (
			entry     model.HistoryEntry
			riskLevel string
			flags     string
			recs      string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.Preview,
			&riskLevel,
			&entry.Verdict.AggregateScore,
			&entry.Verdict.ScamType,
			&entry.Verdict.EngineUsed,
			&entry.Verdict.Transcript,
			&flags,
			&recs,
			&entry.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis record: %w", err)
		}

		entry.Verdict.RiskLevel = model.RiskLevel(riskLevel)
		entry.Verdict.CreatedAt = entry.Timestamp
		if err := json.Unmarshal([]byte(flags), &entry.Verdict.Flags); err != nil {
			return nil, fmt.Errorf("corrupt flags column for %s: %w", entry.ID, err)
		}
		if err := json.Unmarshal([]byte(recs), &entry.Verdict.Recommendations); err != nil {
			return nil, fmt.Errorf("corrupt recommendations column for %s: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (s *VerdictStore) Close() error {
	return s.db.Close()
}
