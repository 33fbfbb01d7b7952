package store

import (
	"testing"
	"time"

	"github.com/bfbl/moneyglow/internal/database"
)

func setupBudgetTestDB(t *testing.T) (*BudgetStore, *UserStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewBudgetStore(db), NewUserStore(db)
}

func TestBudgetSnapshots(t *testing.T) {
	bs, us := setupBudgetTestDB(t)

	u, err := us.Create("mara@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	snap, err := bs.CreateSnapshot(u.ID, 20000, 10000, 6000, 4000)
	if err != nil {
		t.Fatalf("create snapshot: %v", err)
	}
	if snap.Income != 20000 || snap.Savings != 4000 {
		t.Errorf("snapshot = %+v", snap)
	}

	snaps, err := bs.ListSnapshots(u.ID, 10)
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snaps))
	}

	n, err := bs.CountSnapshotsSince(u.ID, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if n != 1 {
		t.Errorf("recent snapshots = %d, want 1", n)
	}

	n, err = bs.CountSnapshotsSince(u.ID, time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if n != 0 {
		t.Errorf("future-cutoff snapshots = %d, want 0", n)
	}
}

func TestBudgetUpsertMonthlyReplacesExisting(t *testing.T) {
	bs, us := setupBudgetTestDB(t)

	u, err := us.Create("mara@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	first, err := bs.UpsertMonthly(u.ID, 2, 2026, 20000, 10000, 6000, 4000)
	if err != nil {
		t.Fatalf("upsert monthly: %v", err)
	}

	second, err := bs.UpsertMonthly(u.ID, 2, 2026, 25000, 12500, 7500, 5000)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created new row %d, want update of %d", second.ID, first.ID)
	}
	if second.Income != 25000 {
		t.Errorf("income = %v, want 25000", second.Income)
	}

	n, err := bs.CountMonthlyByUser(u.ID)
	if err != nil {
		t.Fatalf("count monthly: %v", err)
	}
	if n != 1 {
		t.Errorf("monthly budgets = %d, want 1", n)
	}
}

func TestBudgetGetMonthlyMissing(t *testing.T) {
	bs, us := setupBudgetTestDB(t)

	u, err := us.Create("mara@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	b, err := bs.GetMonthly(u.ID, 7, 2026)
	if err != nil {
		t.Fatalf("get monthly: %v", err)
	}
	if b != nil {
		t.Errorf("expected nil for missing month, got %+v", b)
	}
}
