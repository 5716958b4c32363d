package database

import (
	"context"
	"database/sql"
	"fmt"

	"collection_compliance_engine/internal/domain/contact"

	"github.com/lib/pq" // For pq.Array and driver registration
)

// PostgresContactDirectory reads the portal-owned location_contacts table.
// role_tags is a text[] column; tags follow the conventions documented in
// the contact package ("primary", "role:<label>", "proxy:<label>").
type PostgresContactDirectory struct {
	db *sql.DB
}

func NewPostgresContactDirectory(db *sql.DB) *PostgresContactDirectory {
	return &PostgresContactDirectory{db: db}
}

func (r *PostgresContactDirectory) ListByLocation(ctx context.Context, locationName string) ([]contact.Contact, error) {
	query := `SELECT id, name, email, phone, role_tags
               FROM location_contacts
               WHERE location_name = $1
               ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, locationName)
	if err != nil {
		return nil, fmt.Errorf("error querying contacts for location %q: %w", locationName, err)
	}
	defer rows.Close()
	return scanContacts(rows)
}

func (r *PostgresContactDirectory) ListProxies(ctx context.Context, roleLabel string) ([]contact.Contact, error) {
	query := `SELECT id, name, email, phone, role_tags
               FROM location_contacts
               WHERE $1 = ANY(role_tags)
               ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, contact.ProxyTag(roleLabel))
	if err != nil {
		return nil, fmt.Errorf("error querying proxies for role %q: %w", roleLabel, err)
	}
	defer rows.Close()
	return scanContacts(rows)
}

// Helper to scan multiple rows
func scanContacts(rows *sql.Rows) ([]contact.Contact, error) {
	contacts := make([]contact.Contact, 0)
	for rows.Next() {
		var c contact.Contact
		var email, phone sql.NullString
		var tags pq.StringArray
		if err := rows.Scan(&c.ID, &c.Name, &email, &phone, &tags); err != nil {
			return nil, fmt.Errorf("error scanning contact row: %w", err)
		}
		c.Email = email.String
		c.Phone = phone.String
		c.RoleTags = tags
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact rows: %w", err)
	}
	return contacts, nil
}
