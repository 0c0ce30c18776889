package database

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed creates data only when the staff table is empty; calling it
	// twice must not duplicate anything. The database is not cleared
	// first because other test packages may run against it concurrently.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var adminCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM staff WHERE role = 'admin'").Scan(&adminCount); err != nil {
		t.Fatalf("count admin staff: %v", err)
	}
	if adminCount < 1 {
		t.Errorf("expected at least 1 admin, got %d", adminCount)
	}

	var custCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM customers").Scan(&custCount); err != nil {
		t.Fatalf("count customers: %v", err)
	}
	if custCount < 1 {
		t.Errorf("expected at least 1 customer, got %d", custCount)
	}

	var tmplCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM templates").Scan(&tmplCount); err != nil {
		t.Fatalf("count templates: %v", err)
	}
	if tmplCount < 1 {
		t.Errorf("expected at least 1 template, got %d", tmplCount)
	}
}
