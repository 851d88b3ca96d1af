package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// PostgresStore persists run records in a Postgres table with a JSONB payload.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to dsn and ensures the schema.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	schema := []string{
		`CREATE TABLE IF NOT EXISTS run_logs (
    id TEXT PRIMARY KEY,
    ts TIMESTAMPTZ NOT NULL,
    record JSONB NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS run_logs_ts ON run_logs (ts)`,
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &PostgresStore{db: db}, nil
}

// Append inserts the record.
func (s *PostgresStore) Append(ctx context.Context, rec RunRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO run_logs (id, ts, record) VALUES ($1, $2, $3)`,
		rec.ID, rec.Timestamp.UTC(), string(b))
	return err
}

// Query returns records matching q ordered by time.
func (s *PostgresStore) Query(ctx context.Context, q RunQuery) ([]RunRecord, error) {
	var args []any
	query := `SELECT record::text FROM run_logs WHERE 1=1`
	if !q.Start.IsZero() {
		args = append(args, q.Start.UTC())
		query += fmt.Sprintf(` AND ts >= $%d`, len(args))
	}
	if !q.End.IsZero() {
		args = append(args, q.End.UTC())
		query += fmt.Sprintf(` AND ts <= $%d`, len(args))
	}
	query += ` ORDER BY ts`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanRows(rows, q)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error { return s.db.Close() }
