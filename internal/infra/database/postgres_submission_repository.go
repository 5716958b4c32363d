package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"collection_compliance_engine/internal/domain/submission"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresSubmissionRepository reads weekly collection reports from the
// portal-owned collection_entries table. The engine never writes to it.
type PostgresSubmissionRepository struct {
	db *sql.DB
}

func NewPostgresSubmissionRepository(db *sql.DB) *PostgresSubmissionRepository {
	return &PostgresSubmissionRepository{db: db}
}

func (r *PostgresSubmissionRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]submission.Record, error) {
	query := `SELECT id, location_name, submitter_name, collection_date
               FROM collection_entries
               WHERE collection_date >= $1 AND collection_date <= $2
               ORDER BY collection_date ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying collection entries: %w", err)
	}
	defer rows.Close()

	records := make([]submission.Record, 0)
	for rows.Next() {
		var rec submission.Record
		var locationName, submitterName sql.NullString
		if err := rows.Scan(&rec.ID, &locationName, &submitterName, &rec.CollectionDate); err != nil {
			return nil, fmt.Errorf("error scanning collection entry: %w", err)
		}
		// Free-text columns can be NULL in legacy portal rows.
		rec.LocationRaw = locationName.String
		rec.SubmitterName = submitterName.String
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collection entries: %w", err)
	}
	return records, nil
}
