package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// PredictionRecord is one persisted form submission.
type PredictionRecord struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	StudyHours    float64   `json:"study_hours"`
	AttendancePct float64   `json:"attendance_pct"`
	MentalHealth  int       `json:"mental_health"`
	SleepHours    float64   `json:"sleep_hours"`
	PartTimeJob   bool      `json:"part_time_job"`
	Score         float64   `json:"score"`
	Tier          string    `json:"tier"`
	UsedFallback  bool      `json:"used_fallback"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store keeps the prediction history in SQLite.
type Store struct {
	database *sql.DB
}

// Open creates the database file and its directory if needed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	database, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database failed: %w", err)
	}
	database.SetMaxOpenConns(1)

	query := `
    CREATE TABLE IF NOT EXISTS predictions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL,
        study_hours REAL NOT NULL,
        attendance_pct REAL NOT NULL,
        mental_health INTEGER NOT NULL,
        sleep_hours REAL NOT NULL,
        part_time_job INTEGER NOT NULL,
        score REAL NOT NULL,
        tier TEXT NOT NULL,
        used_fallback INTEGER NOT NULL DEFAULT 0,
        created_at DATETIME NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions(created_at);
    `
	if _, err := database.Exec(query); err != nil {
		database.Close()
		return nil, fmt.Errorf("create tables failed: %w", err)
	}
	return &Store{database: database}, nil
}

func (s *Store) Close() error {
	return s.database.Close()
}

// SavePrediction stores the record and returns its ID. A zero CreatedAt is
// replaced with the current time.
func (s *Store) SavePrediction(ctx context.Context, record PredictionRecord) (int64, error) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	result, err := s.database.ExecContext(ctx, `
        INSERT INTO predictions (
            name, study_hours, attendance_pct, mental_health, sleep_hours,
            part_time_job, score, tier, used_fallback, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Name,
		record.StudyHours,
		record.AttendancePct,
		record.MentalHealth,
		record.SleepHours,
		record.PartTimeJob,
		record.Score,
		record.Tier,
		record.UsedFallback,
		record.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// RecentPredictions returns up to limit records, newest first.
func (s *Store) RecentPredictions(ctx context.Context, limit int) ([]PredictionRecord, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	rows, err := s.database.QueryContext(ctx, `
        SELECT id, name, study_hours, attendance_pct, mental_health, sleep_hours,
               part_time_job, score, tier, used_fallback, created_at
        FROM predictions
        ORDER BY id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]PredictionRecord, 0)
	for rows.Next() {
		var r PredictionRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.StudyHours, &r.AttendancePct, &r.MentalHealth, &r.SleepHours,
			&r.PartTimeJob, &r.Score, &r.Tier, &r.UsedFallback, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
