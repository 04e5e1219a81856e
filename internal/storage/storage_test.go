package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/log"
)

func testTx(id, date string, cents int64, typ core.TxType, category string) core.Transaction {
	d, err := core.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return core.Transaction{
		ID:          id,
		Date:        d,
		Amount:      core.Money{Cents: cents},
		Description: "test " + id,
		Type:        typ,
		Category:    category,
		CreatedAt:   time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		UserID:      "u1",
	}
}

// runStoreTests exercises the Store contract against any implementation.
func runStoreTests(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	txLog, err := store.LoadTransactions(ctx, "u1")
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(txLog) != 0 {
		t.Fatalf("expected empty log, got %d days", len(txLog))
	}

	a := testTx("a", "2024-03-05", 1500, core.Expense, "Comidas")
	b := testTx("b", "2024-03-07", 200000, core.Income, "Nómina")
	for _, tx := range []core.Transaction{a, b} {
		if err := store.SaveTransaction(ctx, "u1", tx); err != nil {
			t.Fatalf("save %s: %v", tx.ID, err)
		}
	}

	txLog, err = store.LoadTransactions(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, ok := txLog.Find("a")
	if !ok {
		t.Fatal("transaction a not found")
	}
	if got.Amount.Cents != 1500 || got.Category != "Comidas" || got.Date.Key() != "2024-03-05" {
		t.Fatalf("unexpected transaction: %+v", got)
	}
	if !got.CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("created_at drifted: %v != %v", got.CreatedAt, a.CreatedAt)
	}

	// Saving with an existing ID updates in place, moving dates too.
	a.Amount = core.Money{Cents: 2500}
	a.Date, _ = core.ParseDate("2024-03-06")
	if err := store.SaveTransaction(ctx, "u1", a); err != nil {
		t.Fatalf("update: %v", err)
	}
	txLog, _ = store.LoadTransactions(ctx, "u1")
	if len(txLog.Flatten()) != 2 {
		t.Fatalf("update duplicated the row: %d transactions", len(txLog.Flatten()))
	}
	got, _ = txLog.Find("a")
	if got.Amount.Cents != 2500 || got.Date.Key() != "2024-03-06" {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := store.DeleteTransaction(ctx, "u1", "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.DeleteTransaction(ctx, "u1", "a"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	txLog, _ = store.LoadTransactions(ctx, "u1")
	if _, ok := txLog.Find("a"); ok {
		t.Fatal("deleted transaction still present")
	}

	// Other users never see u1's data.
	other, _ := store.LoadTransactions(ctx, "u2")
	if len(other) != 0 {
		t.Fatalf("cross-user leak: %d days", len(other))
	}

	// Wholesale replacement.
	fresh := core.TransactionLog{}
	fresh.Add(testTx("c", "2024-04-01", 900, core.Expense, "Transporte"))
	if err := store.SaveAllTransactions(ctx, "u1", fresh); err != nil {
		t.Fatalf("save all: %v", err)
	}
	txLog, _ = store.LoadTransactions(ctx, "u1")
	flat := txLog.Flatten()
	if len(flat) != 1 || flat[0].ID != "c" {
		t.Fatalf("replacement incomplete: %+v", flat)
	}

	// Profile round trip, nil when absent.
	p, err := store.LoadProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("load absent profile: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil profile, got %+v", p)
	}

	profile := core.DefaultProfile()
	profile.MonthlySalary = core.Money{Cents: 210000}
	profile.FundBalances = map[string]core.Money{"Viajes": {Cents: 50000}}
	if err := store.SaveProfile(ctx, "u1", profile); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	p, err = store.LoadProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if p == nil || p.MonthlySalary.Cents != 210000 {
		t.Fatalf("profile not round-tripped: %+v", p)
	}
	if p.FundBalances["Viajes"].Cents != 50000 {
		t.Fatalf("fund balances lost: %+v", p.FundBalances)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	runStoreTests(t, store)
}

func TestSQLiteRepository(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "finanzas.db")
	repo, err := NewSQLiteRepository(dbPath, log.New(log.DefaultConfig()))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	defer repo.Close()
	runStoreTests(t, repo)
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tx := testTx("a", "2024-03-05", 1500, core.Expense, "Comidas")
	if err := store.SaveTransaction(ctx, "u1", tx); err != nil {
		t.Fatal(err)
	}

	// Mutating a loaded log must not touch the stored copy.
	txLog, _ := store.LoadTransactions(ctx, "u1")
	if err := txLog.Remove("a"); err != nil {
		t.Fatal(err)
	}
	again, _ := store.LoadTransactions(ctx, "u1")
	if _, ok := again.Find("a"); !ok {
		t.Fatal("stored log mutated through a loaded copy")
	}
}
