package migrate

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func TestApplyDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "0001_widgets.sql"),
		`CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT NOT NULL);`)
	writeFile(t, filepath.Join(dir, "0002_seed.sql"),
		`INSERT INTO widgets (name) VALUES ('one');`)
	writeFile(t, filepath.Join(dir, "notes.txt"), `not a migration`)

	db, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := ApplyDir(ctx, db, dir); err != nil {
		t.Fatalf("first apply: %v", err)
	}

	// Re-running must not re-execute the seed insert.
	if err := ApplyDir(ctx, db, dir); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM widgets`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("widgets = %d, want 1", n)
	}

	var applied int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 2 {
		t.Fatalf("applied = %d, want 2", applied)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
