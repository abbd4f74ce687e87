package dataset

import (
	"context"
	"database/sql"
	"fmt"
)

// LoadDB builds the Index from the export_records table. Rows are read
// in insertion order so the last-wins rule matches the import order.
func LoadDB(ctx context.Context, db *sql.DB) (*Index, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT country, product, year, value
		FROM export_records
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying export_records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Country, &rec.Product, &rec.Year, &rec.Value); err != nil {
			return nil, fmt.Errorf("scanning export record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading export_records: %w", err)
	}

	return New(records), nil
}

// Import upserts records into export_records inside one transaction.
// Re-importing the same triple overwrites its value.
func Import(ctx context.Context, db *sql.DB, records []Record) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO export_records (country, product, year, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (product, year, country) DO UPDATE SET value = excluded.value
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.Country, rec.Product, rec.Year, rec.Value); err != nil {
			return fmt.Errorf("upserting %s/%s/%s: %w", rec.Product, rec.Year, rec.Country, err)
		}
	}

	return tx.Commit()
}
