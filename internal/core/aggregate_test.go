package core

import (
	"testing"
	"time"
)

func tx(id, date string, cents int64, typ TxType, category string) Transaction {
	d, _ := ParseDate(date)
	return Transaction{
		ID:       id,
		Date:     d,
		Amount:   Money{Cents: cents},
		Type:     typ,
		Category: category,
	}
}

func logOf(txs ...Transaction) TransactionLog {
	log := TransactionLog{}
	for _, t := range txs {
		log.Add(t)
	}
	return log
}

func TestMonthlyStatsExample(t *testing.T) {
	// The documented example: March 2024, 100 income, 40 expense.
	log := logOf(
		tx("a", "2024-03-05", 10000, Income, "Nómina"),
		tx("b", "2024-03-10", 4000, Expense, "Comidas"),
	)
	stats := MonthlyStats(log, 2024, 3)
	if stats.Income.Cents != 10000 || stats.Expense.Cents != 4000 || stats.Balance.Cents != 6000 {
		t.Fatalf("got %+v", stats)
	}

	balance := BalanceAtMonthEnd(log, Profile{}, 2024, 3)
	if balance.Cents != 6000 {
		t.Fatalf("month-end balance %d", balance.Cents)
	}
}

func TestMonthlyStatsExcludesTransfers(t *testing.T) {
	log := logOf(
		tx("a", "2024-03-05", 10000, Income, "Nómina"),
		tx("b", "2024-03-10", 4000, Expense, "Comidas"),
		tx("c", "2024-03-12", 2500, Transfer, "Otros"),
	)
	stats := MonthlyStats(log, 2024, 3)
	if stats.Income.Cents != 10000 || stats.Expense.Cents != 4000 {
		t.Fatalf("transfers leaked into stats: %+v", stats)
	}
	if stats.Balance.Cents != stats.Income.Cents-stats.Expense.Cents {
		t.Fatalf("balance invariant broken: %+v", stats)
	}

	// The cushion does subtract transfers.
	balance := BalanceAtMonthEnd(log, Profile{}, 2024, 3)
	if balance.Cents != 3500 {
		t.Fatalf("cushion %d want 3500", balance.Cents)
	}
}

func TestDayNet(t *testing.T) {
	log := logOf(
		tx("a", "2024-03-05", 10000, Income, ""),
		tx("b", "2024-03-05", 1500, Expense, ""),
		tx("c", "2024-03-05", 500, Transfer, ""),
	)
	if net := DayNet(log, "2024-03-05"); net.Cents != 8000 {
		t.Fatalf("got %d", net.Cents)
	}
	if net := DayNet(log, "2024-03-06"); net.Cents != 0 {
		t.Fatalf("empty day got %d", net.Cents)
	}
}

func TestWeekExpenseTotalIsExpenseOnly(t *testing.T) {
	log := logOf(
		tx("a", "2024-03-04", 2000, Expense, ""),
		tx("b", "2024-03-05", 9000, Income, ""),
		tx("c", "2024-03-06", 1000, Transfer, ""),
		tx("d", "2024-03-11", 500, Expense, ""), // next week
	)
	weeks := Weeks(CalendarGrid(NewDate(2024, 3, 1)))
	// 2024-03-04 falls in the second row of the March grid.
	if got := WeekExpenseTotal(log, weeks[1]).Cents; got != 2000 {
		t.Fatalf("week total %d want 2000", got)
	}
}

func TestBalanceAtMonotonicCutoff(t *testing.T) {
	log := logOf(
		tx("a", "2024-03-05", 10000, Income, ""),
		tx("b", "2024-03-10", 4000, Expense, ""),
	)
	profile := Profile{InitialBase: Money{Cents: 500}}
	before := BalanceAt(log, profile, NewDate(2024, 3, 7))

	// A later-dated transaction must not alter an earlier cutoff.
	log.Add(tx("c", "2024-04-01", 99999, Expense, ""))
	after := BalanceAt(log, profile, NewDate(2024, 3, 7))
	if before != after {
		t.Fatalf("cutoff balance changed: %d -> %d", before.Cents, after.Cents)
	}
	if before.Cents != 10500 {
		t.Fatalf("got %d", before.Cents)
	}
}

func TestTotalNetWorth(t *testing.T) {
	profile := Profile{FundBalances: map[string]Money{
		FundTravel:   {Cents: 30000},
		FundFlexible: {Cents: 20000},
	}}
	if got := TotalNetWorth(Money{Cents: 10000}, profile).Cents; got != 60000 {
		t.Fatalf("got %d", got)
	}
}

func TestProjectMonth(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	log := logOf(tx("a", "2024-03-01", 100000, Income, "Nómina"))
	profile := Profile{
		MonthlySalary: Money{Cents: 200000},
		Budgets:       map[string]Money{"Comidas": {Cents: 50000}},
		FundBalances:  map[string]Money{FundTravel: {Cents: 10000}},
		Pockets:       map[string]Money{FundTravel: {Cents: 20000}},
	}

	if months := MonthsAhead(now, 2024, 5); months != 2 {
		t.Fatalf("months ahead %d", months)
	}
	proj := ProjectMonth(log, profile, now, 2024, 5)
	if proj.MonthsAhead != 2 {
		t.Fatalf("got %+v", proj)
	}
	// Fund: 100 + 200*2 = 500.
	if got := proj.FundBalances[FundTravel].Cents; got != 50000 {
		t.Fatalf("fund projection %d", got)
	}
	// Disposable: 1000 real + (2000-200)*2 = 4600.
	if proj.Disposable.Cents != 460000 {
		t.Fatalf("disposable %d", proj.Disposable.Cents)
	}
	// Cushion: (1000 + 100) + (2000-500)*2 = 4100.
	if proj.TotalCushion.Cents != 410000 {
		t.Fatalf("cushion %d", proj.TotalCushion.Cents)
	}
}

func TestSalaryReceived(t *testing.T) {
	profile := Profile{MonthlySalary: Money{Cents: 100000}}

	byCategory := logOf(tx("a", "2024-03-01", 5000, Income, CategorySalary))
	if !SalaryReceived(byCategory, profile, 2024, 3) {
		t.Fatal("salary category not detected")
	}

	byAmount := logOf(tx("a", "2024-03-01", 95000, Income, "Otros"))
	if !SalaryReceived(byAmount, profile, 2024, 3) {
		t.Fatal("near-salary amount not detected")
	}

	small := logOf(tx("a", "2024-03-01", 5000, Income, "Otros"))
	if SalaryReceived(small, profile, 2024, 3) {
		t.Fatal("false positive on small income")
	}
}

func TestProjectedMonthBalance(t *testing.T) {
	profile := Profile{MonthlySalary: Money{Cents: 100000}}
	log := logOf(tx("a", "2024-03-10", 4000, Expense, "Comidas"))

	// Salary not yet logged: assume it.
	if got := ProjectedMonthBalance(log, profile, 2024, 3).Cents; got != 96000 {
		t.Fatalf("got %d", got)
	}

	log.Add(tx("b", "2024-03-01", 100000, Income, CategorySalary))
	if got := ProjectedMonthBalance(log, profile, 2024, 3).Cents; got != 96000 {
		t.Fatalf("got %d", got)
	}
}

func TestDaysUntilPayday(t *testing.T) {
	profile := Profile{Payday: 25}
	if got := DaysUntilPayday(profile, NewDate(2024, 3, 20)); got != 5 {
		t.Fatalf("got %d", got)
	}
	// Past the payday: next month.
	if got := DaysUntilPayday(profile, NewDate(2024, 3, 28)); got != 28 {
		t.Fatalf("got %d", got)
	}
	// On the payday itself.
	if got := DaysUntilPayday(profile, NewDate(2024, 3, 25)); got != 0 {
		t.Fatalf("got %d", got)
	}
}
