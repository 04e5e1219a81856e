package core

import "sort"

// BudgetStatus compares one category's monthly spend to its limit.
type BudgetStatus struct {
	Category   string  `json:"category"`
	Limit      Money   `json:"limit"`
	Spent      Money   `json:"spent"`
	Percentage float64 `json:"percentage"`
	OverBudget bool    `json:"overBudget"`
}

// EffectiveLimit resolves a category's limit for a month: the
// month-specific override wins, then the default budget, then zero.
func EffectiveLimit(profile Profile, monthKey, category string) Money {
	if override, ok := profile.MonthlyBudgets[monthKey]; ok {
		if limit, ok := override[category]; ok {
			return limit
		}
	}
	return profile.Budgets[category]
}

// CategorySpend buckets a month's transactions by category. Every
// transaction type counts toward its category, not just expenses.
func CategorySpend(log TransactionLog, year, month int) map[string]Money {
	prefix := MonthKey(year, month)
	spend := make(map[string]Money)
	for key, day := range log {
		if len(key) < len(prefix) || key[:len(prefix)] != prefix {
			continue
		}
		for _, tx := range day {
			cat := tx.Category
			if cat == "" {
				cat = CategoryOther
			}
			spend[cat] = spend[cat].Add(tx.Amount)
		}
	}
	return spend
}

// BudgetFor evaluates one category against its effective limit.
func BudgetFor(log TransactionLog, profile Profile, year, month int, category string) BudgetStatus {
	limit := EffectiveLimit(profile, MonthKey(year, month), category)
	spent := CategorySpend(log, year, month)[category]
	return budgetStatus(category, limit, spent)
}

// BudgetOverview evaluates every category with a configured limit or
// recorded spend, sorted by name for stable rendering.
func BudgetOverview(log TransactionLog, profile Profile, year, month int) []BudgetStatus {
	monthKey := MonthKey(year, month)
	spend := CategorySpend(log, year, month)

	names := map[string]bool{}
	for cat := range profile.Budgets {
		names[cat] = true
	}
	for cat := range profile.MonthlyBudgets[monthKey] {
		names[cat] = true
	}
	for cat := range spend {
		names[cat] = true
	}

	out := make([]BudgetStatus, 0, len(names))
	for cat := range names {
		out = append(out, budgetStatus(cat, EffectiveLimit(profile, monthKey, cat), spend[cat]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func budgetStatus(category string, limit, spent Money) BudgetStatus {
	status := BudgetStatus{Category: category, Limit: limit, Spent: spent}
	if limit.Cents > 0 {
		pct := spent.Euros() / limit.Euros() * 100
		if pct > 100 {
			pct = 100
		}
		status.Percentage = pct
		status.OverBudget = spent.Cents > limit.Cents
	}
	return status
}
