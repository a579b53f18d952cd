package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// RunRow - завершенный прогон симуляции
type RunRow struct {
	RunID      string
	Seed       int64
	Ticks      uint64
	Survivors  int
	Deaths     int
	ReplayPath string
	CreatedAt  time.Time
}

// HistoryDB - журнал прогонов в SQLite
type HistoryDB struct {
	conn *sql.DB
}

// OpenHistory открывает (или создает) базу истории
func OpenHistory(path string) (*HistoryDB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL для параллельного чтения
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, err
	}

	db := &HistoryDB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close закрывает соединение
func (db *HistoryDB) Close() error {
	return db.conn.Close()
}

func (db *HistoryDB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		ticks INTEGER NOT NULL DEFAULT 0,
		survivors INTEGER NOT NULL DEFAULT 0,
		deaths INTEGER NOT NULL DEFAULT 0,
		replay_path TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrate history: %w", err)
	}
	return nil
}

// RecordRun сохраняет итог прогона
func (db *HistoryDB) RecordRun(r RunRow) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := db.conn.Exec(
		`INSERT INTO runs (run_id, seed, ticks, survivors, deaths, replay_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Seed, int64(r.Ticks), r.Survivors, r.Deaths, r.ReplayPath, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", r.RunID, err)
	}
	return nil
}

// ListRuns возвращает последние limit прогонов, новые первыми
func (db *HistoryDB) ListRuns(limit int) ([]RunRow, error) {
	rows, err := db.conn.Query(
		`SELECT run_id, seed, ticks, survivors, deaths, replay_path, created_at
		 FROM runs ORDER BY created_at DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		var ticks int64
		if err := rows.Scan(&r.RunID, &r.Seed, &ticks, &r.Survivors, &r.Deaths, &r.ReplayPath, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Ticks = uint64(ticks)
		out = append(out, r)
	}
	return out, rows.Err()
}
