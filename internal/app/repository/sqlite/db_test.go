package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "scamshield.db")

	db, err := Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var createSQL string
	err = db.QueryRow("SELECT sql FROM sqlite_master WHERE type='table' AND name='analysis_history'").Scan(&createSQL)
	require.NoError(t, err)
	assert.Contains(t, createSQL, "aggregate_score")
	assert.Contains(t, createSQL, "risk_level")
}

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scamshield.db")

	db1, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	db2, err := Open(dbPath)
	require.NoError(t, err)
	defer db2.Close()

	_, err = db2.Exec("INSERT INTO analysis_history (id, preview, risk_level, aggregate_score, scam_type, created_at) VALUES ('a', 'p', 'low', 0, 'unknown', CURRENT_TIMESTAMP)")
	assert.NoError(t, err)
}
