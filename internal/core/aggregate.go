package core

import "time"

// MonthStats are the headline numbers of one calendar month.
// Transfers are internal movement and excluded from both sides, so
// Balance == Income - Expense always holds.
type MonthStats struct {
	Income  Money `json:"income"`
	Expense Money `json:"expense"`
	Balance Money `json:"balance"`
}

// DayNet sums one day: income minus expense-and-transfer.
func DayNet(log TransactionLog, dateKey string) Money {
	var net Money
	for _, tx := range log[dateKey] {
		net = net.Add(tx.Signed())
	}
	return net
}

// WeekExpenseTotal sums pure expenses across a grid row. Income and
// transfers are excluded: the week strip shows consumption only.
func WeekExpenseTotal(log TransactionLog, week []CalendarDay) Money {
	var total Money
	for _, day := range week {
		for _, tx := range log[day.DateKey] {
			if tx.Type == Expense {
				total = total.Add(tx.Amount)
			}
		}
	}
	return total
}

// MonthlyStats folds all transactions of the given month.
func MonthlyStats(log TransactionLog, year, month int) MonthStats {
	prefix := MonthKey(year, month)
	var stats MonthStats
	for key, day := range log {
		if len(key) < len(prefix) || key[:len(prefix)] != prefix {
			continue
		}
		for _, tx := range day {
			switch tx.Type {
			case Income:
				stats.Income = stats.Income.Add(tx.Amount)
			case Expense:
				stats.Expense = stats.Expense.Add(tx.Amount)
			}
		}
	}
	stats.Balance = stats.Income.Sub(stats.Expense)
	return stats
}

// BalanceAt computes the cushion at a cutoff date (inclusive): initial
// base plus all income minus all expense-and-transfer up to the cutoff.
// Adding a later-dated transaction never changes an earlier cutoff.
func BalanceAt(log TransactionLog, profile Profile, cutoff Date) Money {
	balance := profile.InitialBase
	for _, day := range log {
		for _, tx := range day {
			if tx.Date.OnOrBefore(cutoff) {
				balance = balance.Add(tx.Signed())
			}
		}
	}
	return balance
}

// BalanceAtMonthEnd is the historical cushion at the end of a month.
func BalanceAtMonthEnd(log TransactionLog, profile Profile, year, month int) Money {
	return BalanceAt(log, profile, EndOfMonth(year, month))
}

// RealTimeBalance is the cushion as of today.
func RealTimeBalance(log TransactionLog, profile Profile, now time.Time) Money {
	return BalanceAt(log, profile, DateOf(now))
}

// TotalNetWorth adds the fund balances on top of a cushion figure.
func TotalNetWorth(balance Money, profile Profile) Money {
	return balance.Add(profile.FundTotal())
}

// MonthProjection extrapolates balances for a future month. Linear:
// constant salary, pockets and budgets, actual transactions ignored.
type MonthProjection struct {
	MonthsAhead  int              `json:"monthsAhead"`
	FundBalances map[string]Money `json:"fundBalances"`
	Disposable   Money            `json:"disposable"`
	TotalCushion Money            `json:"totalCushion"`
}

// ProjectMonth projects balances monthsAhead months past now.
// monthsAhead must be positive; callers gate on MonthsAhead(...) > 0.
func ProjectMonth(log TransactionLog, profile Profile, now time.Time, year, month int) MonthProjection {
	months := MonthsAhead(now, year, month)
	realTime := RealTimeBalance(log, profile, now)

	funds := make(map[string]Money, len(profile.FundBalances))
	for key, balance := range profile.FundBalances {
		funds[key] = balance.Add(profile.Pockets[key].MulInt(months))
	}

	disposable := realTime.Add(profile.MonthlySalary.Sub(profile.PocketTotal()).MulInt(months))

	budgetTotal := profile.BudgetTotal(MonthKey(year, month))
	cushion := realTime.Add(profile.FundTotal()).
		Add(profile.MonthlySalary.Sub(budgetTotal).MulInt(months))

	return MonthProjection{
		MonthsAhead:  months,
		FundBalances: funds,
		Disposable:   disposable,
		TotalCushion: cushion,
	}
}

// SalaryReceived reports whether this month's pay already shows up in
// the log: an income in the salary category, or one of at least 90% of
// the configured salary.
func SalaryReceived(log TransactionLog, profile Profile, year, month int) bool {
	prefix := MonthKey(year, month)
	threshold := profile.MonthlySalary.Cents * 9 / 10
	for key, day := range log {
		if len(key) < len(prefix) || key[:len(prefix)] != prefix {
			continue
		}
		for _, tx := range day {
			if tx.Type != Income {
				continue
			}
			if tx.Category == CategorySalary {
				return true
			}
			if profile.MonthlySalary.Cents > 0 && tx.Amount.Cents >= threshold {
				return true
			}
		}
	}
	return false
}

// ProjectedMonthBalance estimates how the month closes: the real balance
// when the salary is already logged, otherwise actuals plus the
// configured salary.
func ProjectedMonthBalance(log TransactionLog, profile Profile, year, month int) Money {
	stats := MonthlyStats(log, year, month)
	if SalaryReceived(log, profile, year, month) {
		return stats.Balance
	}
	return stats.Balance.Add(profile.MonthlySalary)
}

// DaysUntilPayday counts days from today to the next payday, rolling
// into the next month when this month's payday already passed.
func DaysUntilPayday(profile Profile, today Date) int {
	next := NewDate(today.Year(), int(today.Month()), profile.Payday)
	if today.Day() > profile.Payday {
		next = NewDate(today.Year(), int(today.Month())+1, profile.Payday)
	}
	return int(next.Sub(today.Time).Hours() / 24)
}
