package database

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationsFS_ContainsPairedFiles(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("failed to read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no migration files embedded")
	}

	ups := 0
	downs := 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		default:
			t.Errorf("unexpected migration file name: %s", e.Name())
		}
	}

	if ups != downs {
		t.Errorf("unpaired migrations: %d up, %d down", ups, downs)
	}
}

func TestMigrationsFS_InitCreatesCoreTables(t *testing.T) {
	data, err := fs.ReadFile(migrationsFS, "migrations/000001_init.up.sql")
	if err != nil {
		t.Fatalf("failed to read init migration: %v", err)
	}

	sql := string(data)
	for _, table := range []string{"users", "feedback", "sessions"} {
		if !strings.Contains(sql, "CREATE TABLE "+table) {
			t.Errorf("init migration does not create table %s", table)
		}
	}
}
