// internal/infra/database/postgres_run_ledger.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"collection_compliance_engine/internal/domain/runlog"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrRunNotFound = fmt.Errorf("compliance run not found")

// PostgresRunLedger persists compliance-check runs. Unlike the portal-owned
// tables, compliance_runs belongs to this engine and is created on first use.
type PostgresRunLedger struct {
	db *sql.DB
}

func NewPostgresRunLedger(db *sql.DB) *PostgresRunLedger {
	return &PostgresRunLedger{db: db}
}

// EnsureSchema creates the run-ledger table and its lookup index if missing.
// Called once at startup.
func (r *PostgresRunLedger) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS compliance_runs (
			id uuid PRIMARY KEY,
			slot varchar(32) NOT NULL,
			run_date date NOT NULL,
			locations_checked int NOT NULL DEFAULT 0,
			gaps_found int NOT NULL DEFAULT 0,
			reminders_sent int NOT NULL DEFAULT 0,
			reminders_failed int NOT NULL DEFAULT 0,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS compliance_runs_slot_date_idx
			ON compliance_runs (slot, run_date)`,
	}
	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error ensuring compliance_runs schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRunLedger) Find(ctx context.Context, slot runlog.Slot, runDate time.Time) (*runlog.Entry, error) {
	query := `SELECT id, slot, run_date, locations_checked, gaps_found, reminders_sent, reminders_failed, created_at
               FROM compliance_runs
               WHERE slot = $1 AND run_date = $2
               ORDER BY created_at DESC LIMIT 1`

	// Normalize runDate to just the date part for lookup consistency.
	dateOnly := time.Date(runDate.Year(), runDate.Month(), runDate.Day(), 0, 0, 0, 0, runDate.Location())

	entry := runlog.Entry{}
	err := r.db.QueryRowContext(ctx, query, slot, dateOnly).Scan(
		&entry.ID, &entry.Slot, &entry.RunDate, &entry.LocationsChecked,
		&entry.GapsFound, &entry.RemindersSent, &entry.RemindersFailed, &entry.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("error getting compliance run by slot and date: %w", err)
	}
	return &entry, nil
}

func (r *PostgresRunLedger) Append(ctx context.Context, entry *runlog.Entry) error {
	query := `INSERT INTO compliance_runs (id, slot, run_date, locations_checked, gaps_found, reminders_sent, reminders_failed)
               VALUES ($1, $2, $3, $4, $5, $6, $7)
               RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.Slot, entry.RunDate, entry.LocationsChecked,
		entry.GapsFound, entry.RemindersSent, entry.RemindersFailed,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("error recording compliance run: %w", err)
	}
	return nil
}
