// Command datasetctl prepares a SQLite dataset file for the server:
//
//	datasetctl -csv FAOSTAT_data.csv -db data/exports.db
//
// Imports are upserts, so re-running with a newer CSV refreshes values
// in place.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/playtrade/exportquiz/internal/database"
	"github.com/playtrade/exportquiz/internal/dataset"
	"github.com/playtrade/exportquiz/internal/migrations"
)

func main() {
	csvPath := flag.String("csv", "", "source CSV file (required)")
	dbPath := flag.String("db", "", "target SQLite file (required)")
	flag.Parse()

	if *csvPath == "" || *dbPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), *csvPath, *dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, csvPath, dbPath string) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	records, err := dataset.ParseCSV(f)
	if err != nil {
		return fmt.Errorf("parsing csv: %w", err)
	}

	db, err := database.Open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	if err := dataset.Import(ctx, db, records); err != nil {
		return fmt.Errorf("importing: %w", err)
	}

	fmt.Printf("imported %d records into %s\n", len(records), dbPath)
	return nil
}
