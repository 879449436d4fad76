package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"folio/internal/analytics"
	"folio/internal/database"
	"folio/internal/workbook"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	if err := godotenv.Load(); err != nil {
		logger.Debugf("no .env file: %v", err)
	}
	file := flag.String("file", os.Getenv("PORTFOLIO_FILE"), "xlsx workbook to load")
	all := flag.Bool("all", false, "load every sheet, not only the required ones")
	flag.Parse()

	dbURL := os.Getenv("POSTGRES_URL")
	if dbURL == "" {
		logger.Fatal("POSTGRES_URL is required")
	}
	if *file == "" {
		logger.Fatal("-file or PORTFOLIO_FILE is required")
	}

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		logger.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	names := analytics.RequiredSheets
	if *all {
		names = nil
	}
	sheets, err := workbook.NewFile(*file, logger).LoadSheets(ctx, names)
	if err != nil {
		logger.Fatalf("read workbook: %v", err)
	}

	// Validate before writing so a broken workbook never replaces good rows.
	if _, err := analytics.NewSnapshot(sheets, logger); err != nil {
		logger.Fatalf("workbook rejected: %v", err)
	}

	// All sheets go in one transaction so a failure leaves the old set intact.
	if err := database.New(db, logger).ReplaceSheets(ctx, sheets); err != nil {
		logger.Fatalf("store sheets: %v", err)
	}
	for name, rows := range sheets {
		fmt.Printf("Seeded %s with %d rows\n", name, len(rows))
	}
	fmt.Println("Now start the server with SNAPSHOT_SOURCE=postgres")
}
