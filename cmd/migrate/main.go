// Command migrate applies the order_lines schema and, given an xlsx data file,
// copies its lines into PostgreSQL.
package main

import (
	"context"
	"log"
	"os"

	"burntest/adapters/excel"
	"burntest/adapters/postgres"
	"burntest/internal/container"
	"burntest/ports"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate <database_url> [data.xlsx]")
	}

	databaseURL := os.Args[1]
	ctx := context.Background()

	db, err := container.InitDatabase(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	log.Println("Schema is up to date")

	if len(os.Args) < 3 {
		return
	}
	dataFile := os.Args[2]
	if _, err := os.Stat(dataFile); err != nil {
		log.Fatalf("Data file not found: %v", err)
	}

	source, err := excel.NewFileStore(dataFile, nil)
	if err != nil {
		log.Fatalf("Failed to open data file: %v", err)
	}
	target := postgres.NewOrderRepository(db)

	migrated, skipped, err := copyOrders(ctx, source, target)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Migration complete: %d orders copied, %d skipped", migrated, skipped)
}

// copyOrders upserts the lines of every source order into target, one order per transaction
func copyOrders(ctx context.Context, source, target ports.OrderStore) (migrated, skipped int, err error) {
	ids, err := source.OrderIDs(ctx)
	if err != nil {
		return 0, 0, err
	}
	log.Printf("Found %d orders to migrate", len(ids))

	for _, id := range ids {
		lines, err := source.Lines(ctx, id)
		if err != nil {
			log.Printf("Failed to read order %s: %v", id, err)
			skipped++
			continue
		}
		if len(lines) == 0 {
			skipped++
			continue
		}
		if _, err := target.Upsert(ctx, lines); err != nil {
			log.Printf("Failed to write order %s: %v", id, err)
			skipped++
			continue
		}
		migrated++
	}
	return migrated, skipped, nil
}
