package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"PoolSentinel/internal/model"
)

// SQLiteRecorder persists readings and alerts to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rsi_readings (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			chain     TEXT NOT NULL,
			pool      TEXT NOT NULL,
			price     REAL,
			rsi       REAL,
			oversold  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_pair_ts ON rsi_readings(chain, pool, timestamp)`,

		`CREATE TABLE IF NOT EXISTS rsi_alerts (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			chain     TEXT NOT NULL,
			pool      TEXT NOT NULL,
			rsi       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON rsi_alerts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordReading(rd *model.Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO rsi_readings
		(timestamp, chain, pool, price, rsi, oversold)
		VALUES (?,?,?,?,?,?)`,
		rd.At.Unix(), rd.Pair.Chain, rd.Pair.Pool, rd.Price, rd.RSI, rd.Oversold,
	)
	return err
}

func (r *SQLiteRecorder) RecordAlert(a *model.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO rsi_alerts
		(timestamp, chain, pool, rsi)
		VALUES (?,?,?,?)`,
		a.At.Unix(), a.Pair.Chain, a.Pair.Pool, a.RSI,
	)
	return err
}

// CountReadings returns the number of stored readings for a pair.
func (r *SQLiteRecorder) CountReadings(pair model.Pair) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM rsi_readings WHERE chain = ? AND pool = ?`,
		pair.Chain, pair.Pool).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
