package main

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/uptrace/bun"

	"warecopilot/infrastructure/sqlite"
)

func TestResolveMigrationsDir_FromRepoRoot(t *testing.T) {
	_, repoRoot := testPaths(t)
	withWorkingDir(t, repoRoot)

	dir, err := resolveMigrationsDir()
	if err != nil {
		t.Fatalf("resolve migrations dir from repo root: %v", err)
	}

	assertMigrationsDir(t, dir)
}

func TestResolveMigrationsDir_FromSeedDir(t *testing.T) {
	cmdDir, _ := testPaths(t)
	withWorkingDir(t, cmdDir)

	dir, err := resolveMigrationsDir()
	if err != nil {
		t.Fatalf("resolve migrations dir from cmd/seedinventory: %v", err)
	}

	assertMigrationsDir(t, dir)
}

func TestSeedDemoDataIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	cmdDir, _ := testPaths(t)
	migrationsDir := filepath.Join(cmdDir, "..", "..", "infrastructure", "sqlite", "migrations")
	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if err := seedDemoData(context.Background(), db); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := seedDemoData(context.Background(), db); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	counts := map[string]int{
		"warehouses":        2,
		"locations":         4,
		"items":             3,
		"receiving_headers": 3,
		"receiving_lines":   3,
	}
	err = db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		for table, want := range counts {
			var n int
			if err := tx.NewRaw("SELECT COUNT(*) FROM " + table).Scan(ctx, &n); err != nil {
				return err
			}
			if n != want {
				t.Fatalf("table %s: expected %d rows after reseeding, got %d", table, want, n)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("count rows: %v", err)
	}
}

func testPaths(t *testing.T) (cmdDir string, repoRoot string) {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	cmdDir = filepath.Dir(file)
	repoRoot = filepath.Clean(filepath.Join(cmdDir, "..", ".."))
	return cmdDir, repoRoot
}

func withWorkingDir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}

func assertMigrationsDir(t *testing.T, dir string) {
	t.Helper()
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat migrations dir: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected directory, got file: %s", dir)
	}
	if !strings.HasSuffix(filepath.ToSlash(dir), "infrastructure/sqlite/migrations") {
		t.Fatalf("unexpected migrations path: %s", dir)
	}
}
