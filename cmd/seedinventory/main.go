package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/uptrace/bun"

	"warecopilot/infrastructure/sqlite"
)

func main() {
	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		log.Fatalf("resolve migrations dir: %v", err)
	}

	defaultDBPath := filepath.Join(filepath.Dir(filepath.Dir(filepath.Dir(migrationsDir))), "warecopilot.db")
	dbPath := getenv("SQLITE_PATH", defaultDBPath)

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	if err := seedDemoData(context.Background(), db); err != nil {
		log.Fatalf("seed demo data: %v", err)
	}

	fmt.Println("seeded demo warehouses, locations, items and receivings")
}

// seedDemoData inserts a small demo dataset. Safe to run repeatedly;
// master data upserts by code and demo receivings are keyed by
// reference number.
func seedDemoData(ctx context.Context, db *sqlite.DB) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		stmts := []string{
			`INSERT INTO warehouses (code, name) VALUES
  ('WH1', 'Main Warehouse'),
  ('WH2', 'Overflow Warehouse')
ON CONFLICT (code) DO NOTHING`,
			`INSERT INTO locations (warehouse_id, code)
SELECT w.id, loc.code
FROM warehouses w
JOIN (SELECT 'WH1' AS wh, 'A1' AS code UNION ALL
      SELECT 'WH1', 'A2' UNION ALL
      SELECT 'WH1', 'B1' UNION ALL
      SELECT 'WH2', 'C1') loc ON loc.wh = w.code
ON CONFLICT (warehouse_id, code) DO NOTHING`,
			`INSERT INTO items (code, name) VALUES
  ('ITEM-A', 'Boxed Widgets'),
  ('ITEM-B', 'Loose Fasteners'),
  ('ITEM-C', 'Packing Film')
ON CONFLICT (code) DO NOTHING`,
		}
		for _, s := range stmts {
			if _, err := tx.ExecContext(ctx, s); err != nil {
				return err
			}
		}

		demo := []struct {
			customer  string
			date      string
			reference string
			item      string
			location  string
			quantity  int64
			status    string
		}{
			{"Ali Traders", "2026-08-01", "POS-123", "ITEM-A", "A1", 50, "ok"},
			{"Bilal & Co", "2026-08-05", "POS-456", "ITEM-B", "A2", 120, "ok"},
			{"Irtaza Traders", "2026-08-10", "GRN-77", "ITEM-C", "B1", 30, "damaged"},
		}
		for _, d := range demo {
			var exists int
			if err := tx.NewRaw(`SELECT COUNT(*) FROM receiving_headers WHERE reference_no = ?`, d.reference).Scan(ctx, &exists); err != nil {
				return err
			}
			if exists > 0 {
				continue
			}
			if _, err := tx.ExecContext(ctx, `
INSERT INTO receiving_headers (customer, receiving_date, warehouse_id, reference_no)
SELECT ?, ?, w.id, ? FROM warehouses w WHERE w.code = 'WH1'`, d.customer, d.date, d.reference); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `
INSERT INTO receiving_lines (receiving_id, item_id, location_id, quantity, status)
SELECT rh.id, i.id, l.id, ?, ?
FROM receiving_headers rh, items i, locations l
WHERE rh.reference_no = ? AND i.code = ? AND l.code = ?`, d.quantity, d.status, d.reference, d.item, d.location); err != nil {
				return err
			}
		}
		return nil
	})
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		filepath.Join("infrastructure", "sqlite", "migrations"),
		filepath.Join("..", "..", "infrastructure", "sqlite", "migrations"),
	}

	if _, file, _, ok := runtime.Caller(0); ok {
		candidates = append(candidates, filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations"))
	}

	tried := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		absPath, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		tried = append(tried, absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			continue
		}
		if info.IsDir() {
			return absPath, nil
		}
	}

	return "", fmt.Errorf("migrations dir not found; tried: %s", strings.Join(tried, ", "))
}
