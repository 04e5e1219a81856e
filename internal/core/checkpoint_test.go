package core

import "testing"

func TestReconcileExample(t *testing.T) {
	// Declared 100 vs calculated 60: one income adjustment of 40.
	log := logOf(
		tx("a", "2024-03-05", 10000, Income, "Nómina"),
		tx("b", "2024-03-10", 4000, Expense, "Comidas"),
	)
	result := Reconcile(log, Profile{}, NewDate(2024, 3, 31), Money{Cents: 10000})
	if result.Calculated.Cents != 6000 {
		t.Fatalf("calculated %d", result.Calculated.Cents)
	}
	if result.Difference.Cents != 4000 {
		t.Fatalf("difference %d", result.Difference.Cents)
	}
	adj := result.Adjustment
	if adj == nil {
		t.Fatal("expected an adjustment")
	}
	if adj.Type != Income || adj.Amount.Cents != 4000 {
		t.Fatalf("adjustment %+v", adj)
	}
	if adj.Date.Key() != "2024-03-31" || adj.Category != CategoryOther {
		t.Fatalf("adjustment %+v", adj)
	}
	if !adj.IsAdjustment() {
		t.Fatal("adjustment must carry the checkpoint marker")
	}
}

func TestReconcileShortfall(t *testing.T) {
	log := logOf(tx("a", "2024-03-05", 10000, Income, ""))
	result := Reconcile(log, Profile{}, NewDate(2024, 3, 31), Money{Cents: 7500})
	if result.Adjustment == nil || result.Adjustment.Type != Expense {
		t.Fatalf("got %+v", result.Adjustment)
	}
	if result.Adjustment.Amount.Cents != 2500 {
		t.Fatalf("amount %d", result.Adjustment.Amount.Cents)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	log := logOf(tx("a", "2024-03-05", 6000, Income, ""))
	target := NewDate(2024, 3, 31)
	declared := Money{Cents: 10000}

	first := Reconcile(log, Profile{}, target, declared)
	if first.Adjustment == nil {
		t.Fatal("expected an adjustment on first run")
	}
	applied := *first.Adjustment
	applied.ID = "adj-1"
	log.Add(applied)

	second := Reconcile(log, Profile{}, target, declared)
	if second.Adjustment != nil {
		t.Fatalf("second run produced another adjustment: %+v", second.Adjustment)
	}
	if !second.Difference.IsZero() {
		t.Fatalf("difference %d", second.Difference.Cents)
	}
}

func TestReconcileCountsTransfers(t *testing.T) {
	// Transfers reduce the cushion, so they count toward the
	// calculated side.
	log := logOf(
		tx("a", "2024-03-05", 10000, Income, ""),
		tx("b", "2024-03-06", 3000, Transfer, ""),
	)
	result := Reconcile(log, Profile{}, NewDate(2024, 3, 31), Money{Cents: 7000})
	if result.Adjustment != nil {
		t.Fatalf("expected no adjustment, got %+v", result.Adjustment)
	}
}

func TestSumAccounts(t *testing.T) {
	total := SumAccounts(map[string]Money{
		"bbva":    {Cents: 50000},
		"revolut": {Cents: 25000},
	})
	if total.Cents != 75000 {
		t.Fatalf("got %d", total.Cents)
	}
}
