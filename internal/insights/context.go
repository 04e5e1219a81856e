package insights

import (
	"strings"
	"time"

	"finanzas/internal/core"
)

// Context is the precomputed view every rule evaluates against. For a
// past (or future) month CurrentDay is the last day of that month, so
// "so far" figures cover the whole month.
type Context struct {
	Config  Config
	Profile core.Profile

	Year, Month int
	MonthKey    string

	// Transactions holds the viewed month only, in log order.
	Transactions []core.Transaction

	TotalSpent  core.Money // expenses only
	TotalIncome core.Money
	CatTotals   map[string]core.Money // expenses by category

	Cushion core.Money

	IsCurrentMonth bool
	DaysInMonth    int
	CurrentDay     int
	RemainingDays  int

	dailyExpense []core.Money // index day-1, up to DaysInMonth
}

// NewContext folds the full log down to the figures shared by the rule
// set. Cushion is the caller's point-in-time accumulated balance.
func NewContext(log core.TransactionLog, profile core.Profile, year, month int, cushion core.Money, now time.Time, cfg Config) *Context {
	ctx := &Context{
		Config:      cfg,
		Profile:     profile,
		Year:        year,
		Month:       month,
		MonthKey:    core.MonthKey(year, month),
		CatTotals:   make(map[string]core.Money),
		Cushion:     cushion,
		DaysInMonth: core.DaysInMonth(year, month),
	}
	ctx.IsCurrentMonth = now.Year() == year && int(now.Month()) == month
	if ctx.IsCurrentMonth {
		ctx.CurrentDay = now.Day()
	} else {
		ctx.CurrentDay = ctx.DaysInMonth
	}
	ctx.RemainingDays = ctx.DaysInMonth - ctx.CurrentDay
	ctx.dailyExpense = make([]core.Money, ctx.DaysInMonth)

	for _, t := range log.Flatten() {
		if t.Date.Year() != year || int(t.Date.Month()) != month {
			continue
		}
		ctx.Transactions = append(ctx.Transactions, t)
		switch t.Type {
		case core.Expense:
			ctx.TotalSpent = ctx.TotalSpent.Add(t.Amount)
			ctx.CatTotals[t.Category] = ctx.CatTotals[t.Category].Add(t.Amount)
			ctx.dailyExpense[t.Date.Day()-1] = ctx.dailyExpense[t.Date.Day()-1].Add(t.Amount)
		case core.Income:
			ctx.TotalIncome = ctx.TotalIncome.Add(t.Amount)
		}
	}
	return ctx
}

// DailyExpense returns the expense total of one day of the month.
func (c *Context) DailyExpense(day int) core.Money {
	if day < 1 || day > len(c.dailyExpense) {
		return core.Money{}
	}
	return c.dailyExpense[day-1]
}

// WeekdayOf returns the weekday of a day number in the viewed month.
func (c *Context) WeekdayOf(day int) time.Weekday {
	return time.Date(c.Year, time.Month(c.Month), day, 0, 0, 0, 0, time.UTC).Weekday()
}

// BudgetTotal is the month's effective total budget (monthly override
// first, default budgets otherwise).
func (c *Context) BudgetTotal() core.Money {
	return c.Profile.BudgetTotal(c.MonthKey)
}

// SavingsRate is (income - spent) / income as a percentage, 0 when the
// month has no income.
func (c *Context) SavingsRate() float64 {
	if c.TotalIncome.Cents <= 0 {
		return 0
	}
	return (c.TotalIncome.Sub(c.TotalSpent).Euros() / c.TotalIncome.Euros()) * 100
}

// SpendMatching sums the amounts of every transaction, regardless of
// type, whose description contains one of the keywords.
func (c *Context) SpendMatching(keywords []string) core.Money {
	var total core.Money
	for _, t := range c.Transactions {
		if matchAny(t.Description, keywords) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// CountMatching counts transactions whose description contains one of
// the keywords.
func (c *Context) CountMatching(keywords []string) int {
	n := 0
	for _, t := range c.Transactions {
		if matchAny(t.Description, keywords) {
			n++
		}
	}
	return n
}

func matchAny(description string, keywords []string) bool {
	d := strings.ToLower(description)
	for _, k := range keywords {
		if strings.Contains(d, k) {
			return true
		}
	}
	return false
}
