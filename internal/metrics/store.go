package metrics

import (
	"context"
	"database/sql"
	"time"

	"ai-travel-planner/internal/shared"
)

// ExecutionMetric records metadata for a single stage execution.
type ExecutionMetric struct {
	StageName        string
	Model            string
	PromptTokens     int
	CompletionTokens int
	LatencyMS        int64
	Failed           bool
	Timestamp        time.Time
}

// Store handles persistence of stage metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(m ExecutionMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO stage_metrics (stage_name, model, prompt_tokens, completion_tokens, latency_ms, failed, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.StageName, m.Model, m.PromptTokens, m.CompletionTokens, m.LatencyMS, m.Failed, ts,
	)
	return err
}

// RecordMeta records a metric directly from stage metadata.
func (s *Store) RecordMeta(meta shared.StageMeta) error {
	return s.Record(ExecutionMetric{
		StageName:        meta.StageName,
		Model:            meta.Usage.Model,
		PromptTokens:     meta.Usage.PromptTokens,
		CompletionTokens: meta.Usage.CompletionTokens,
		LatencyMS:        meta.Latency.Milliseconds(),
		Failed:           meta.Failed,
	})
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DailyUsage represents token totals for a single day.
type DailyUsage struct {
	Date            string
	TotalPrompt     int
	TotalCompletion int
	TotalExecution  int
	TotalFailed     int
}

// GetDailyUsage retrieves usage for the last N days.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().AddDate(0, 0, -days).UTC().Format("2006-01-02 15:04:05")
	rows, err := s.db.QueryContext(context.Background(),
		`SELECT date(timestamp) AS day,
		        COALESCE(SUM(prompt_tokens), 0),
		        COALESCE(SUM(completion_tokens), 0),
		        COUNT(*),
		        COALESCE(SUM(failed), 0)
		 FROM stage_metrics
		 WHERE timestamp >= ?
		 GROUP BY day
		 ORDER BY day DESC`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usage []DailyUsage
	for rows.Next() {
		var d DailyUsage
		if err := rows.Scan(&d.Date, &d.TotalPrompt, &d.TotalCompletion, &d.TotalExecution, &d.TotalFailed); err != nil {
			return nil, err
		}
		usage = append(usage, d)
	}
	return usage, rows.Err()
}
