package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"PoolSentinel/internal/model"
)

func TestSQLiteRecorder_RecordReadingsAndAlerts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentinel.db")
	rec, err := NewSQLiteRecorder(path, zap.NewNop())
	require.NoError(t, err)
	defer rec.Close()

	pair := model.Pair{Chain: "eth", Pool: "0xabc"}
	now := time.Now()
	require.NoError(t, rec.RecordReading(&model.Reading{Pair: pair, Price: 1.2, RSI: 45, At: now}))
	require.NoError(t, rec.RecordReading(&model.Reading{Pair: pair, Price: 1.1, RSI: 20, Oversold: true, At: now}))
	require.NoError(t, rec.RecordAlert(&model.Alert{Pair: pair, RSI: 20, At: now}))

	n, err := rec.CountReadings(pair)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = rec.CountReadings(model.Pair{Chain: "bsc", Pool: "0xabc"})
	require.NoError(t, err)
	assert.Zero(t, n)

	var alerts int
	require.NoError(t, rec.db.QueryRow(`SELECT COUNT(*) FROM rsi_alerts`).Scan(&alerts))
	assert.Equal(t, 1, alerts)
}

func TestSQLiteRecorder_ReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentinel.db")
	pair := model.Pair{Chain: "eth", Pool: "0xabc"}

	rec, err := NewSQLiteRecorder(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, rec.RecordReading(&model.Reading{Pair: pair, Price: 1, RSI: 50, At: time.Now()}))
	require.NoError(t, rec.Close())

	rec, err = NewSQLiteRecorder(path, zap.NewNop())
	require.NoError(t, err)
	defer rec.Close()

	n, err := rec.CountReadings(pair)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNoopRecorder(t *testing.T) {
	var rec Recorder = NewNoopRecorder()
	assert.NoError(t, rec.RecordReading(&model.Reading{}))
	assert.NoError(t, rec.RecordAlert(&model.Alert{}))
	assert.NoError(t, rec.Close())
}
