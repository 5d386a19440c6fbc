package db

import (
	"testing"
	"testing/fstest"
)

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"001_patient.sql":        {Data: []byte("CREATE TABLE patient (id UUID PRIMARY KEY);")},
		"002_intake_case.sql":    {Data: []byte("CREATE TABLE intake_case (id UUID PRIMARY KEY);")},
		"003_recommendation.sql": {Data: []byte("CREATE TABLE recommendation (id UUID PRIMARY KEY);")},
	}

	migrator := NewMigrator(nil, fsys)
	migrations, err := migrator.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "001_patient.sql" {
		t.Errorf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[0].SQL != "CREATE TABLE patient (id UUID PRIMARY KEY);" {
		t.Errorf("unexpected SQL content: %s", migrations[0].SQL)
	}
	if migrations[1].Version != 2 || migrations[2].Version != 3 {
		t.Errorf("migrations not sorted by version: %v, %v", migrations[1].Version, migrations[2].Version)
	}
}

func TestLoadMigrations_SkipsNonNumericAndNonSQL(t *testing.T) {
	fsys := fstest.MapFS{
		"001_patient.sql": {Data: []byte("CREATE TABLE patient (id UUID PRIMARY KEY);")},
		"README.md":       {Data: []byte("docs")},
		"notes_draft.sql": {Data: []byte("SELECT 1;")},
	}

	migrations, err := NewMigrator(nil, fsys).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}
	if len(migrations) != 1 {
		t.Fatalf("expected 1 migration, got %d", len(migrations))
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	migrations, err := NewMigrator(nil, Migrations()).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}
	if len(migrations) < 3 {
		t.Fatalf("expected at least 3 embedded migrations, got %d", len(migrations))
	}
	for i, m := range migrations {
		if m.Version != i+1 {
			t.Errorf("migration %d has version %d; versions must be contiguous", i, m.Version)
		}
	}
}
