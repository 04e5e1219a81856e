package core

import "testing"

func TestBudgetForExamples(t *testing.T) {
	profile := Profile{Budgets: map[string]Money{"Comidas": {Cents: 5000}}}

	under := BudgetFor(logOf(
		tx("a", "2024-03-10", 4000, Expense, "Comidas"),
	), profile, 2024, 3, "Comidas")
	if under.Percentage != 80 || under.OverBudget {
		t.Fatalf("got %+v", under)
	}

	over := BudgetFor(logOf(
		tx("a", "2024-03-10", 6000, Expense, "Comidas"),
	), profile, 2024, 3, "Comidas")
	if over.Percentage != 100 || !over.OverBudget {
		t.Fatalf("clamp failed: %+v", over)
	}
}

func TestBudgetForNoLimit(t *testing.T) {
	status := BudgetFor(logOf(
		tx("a", "2024-03-10", 6000, Expense, "Planes"),
	), Profile{}, 2024, 3, "Planes")
	if status.Percentage != 0 || status.OverBudget {
		t.Fatalf("zero-limit category must never be over budget: %+v", status)
	}
}

func TestEffectiveLimitOverride(t *testing.T) {
	profile := Profile{
		Budgets: map[string]Money{
			"Comidas": {Cents: 5000},
			"Planes":  {Cents: 3000},
		},
		MonthlyBudgets: map[string]map[string]Money{
			"2024-03": {"Comidas": {Cents: 8000}},
		},
	}
	if got := EffectiveLimit(profile, "2024-03", "Comidas"); got.Cents != 8000 {
		t.Fatalf("override not applied: %d", got.Cents)
	}
	if got := EffectiveLimit(profile, "2024-04", "Comidas"); got.Cents != 5000 {
		t.Fatalf("default not applied: %d", got.Cents)
	}
	// A category the override month does not mention falls back to its
	// default limit.
	if got := EffectiveLimit(profile, "2024-03", "Planes"); got.Cents != 3000 {
		t.Fatalf("got %d", got.Cents)
	}
	if got := EffectiveLimit(profile, "2024-03", "Regalos"); got.Cents != 0 {
		t.Fatalf("unlimited category got %d", got.Cents)
	}
}

func TestCategorySpendCountsAllTypes(t *testing.T) {
	// Bucketing by category ignores the transaction type.
	spend := CategorySpend(logOf(
		tx("a", "2024-03-10", 4000, Expense, "Comidas"),
		tx("b", "2024-03-11", 1000, Income, "Comidas"),
		tx("c", "2024-03-12", 500, Transfer, "Comidas"),
		tx("d", "2024-03-13", 700, Expense, ""),
	), 2024, 3)
	if spend["Comidas"].Cents != 5500 {
		t.Fatalf("got %d", spend["Comidas"].Cents)
	}
	if spend[CategoryOther].Cents != 700 {
		t.Fatalf("uncategorized fallback got %d", spend[CategoryOther].Cents)
	}
}

func TestBudgetOverview(t *testing.T) {
	profile := Profile{Budgets: map[string]Money{
		"Comidas": {Cents: 5000},
		"Planes":  {Cents: 3000},
	}}
	overview := BudgetOverview(logOf(
		tx("a", "2024-03-10", 4000, Expense, "Comidas"),
		tx("b", "2024-03-11", 1000, Expense, "Regalos"), // spend without limit
	), profile, 2024, 3)

	if len(overview) != 3 {
		t.Fatalf("got %d entries", len(overview))
	}
	// Sorted by category name.
	for i := 1; i < len(overview); i++ {
		if overview[i-1].Category > overview[i].Category {
			t.Fatalf("overview not sorted: %+v", overview)
		}
	}
}
