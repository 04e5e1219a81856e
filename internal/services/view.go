package services

import (
	"time"

	"finanzas/internal/core"
	"finanzas/internal/insights"
)

// MonthView is everything a client needs to render one month: the
// calendar grid with per-day nets and week totals, headline stats,
// budget statuses, cushion figures and the scored insights. For future
// months the linear projection is attached.
type MonthView struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Key   string `json:"key"`

	Days       []ViewDay    `json:"days"`
	WeekTotals []core.Money `json:"weekTotals"`

	Stats            core.MonthStats       `json:"stats"`
	Budgets          []core.BudgetStatus   `json:"budgets"`
	Balance          core.Money            `json:"balance"`
	NetWorth         core.Money            `json:"netWorth"`
	ProjectedBalance core.Money            `json:"projectedBalance"`
	Projection       *core.MonthProjection `json:"projection,omitempty"`

	DistributionPending bool `json:"distributionPending"`

	Insights []insights.Insight `json:"insights"`
}

// ViewDay is one grid cell plus its transactions and net.
type ViewDay struct {
	core.CalendarDay
	Net          core.Money         `json:"net"`
	Transactions []core.Transaction `json:"transactions,omitempty"`
}

// MonthView assembles the derived view of a month as of now.
func (t *Tracker) MonthView(year, month int, now time.Time) MonthView {
	t.mu.RLock()
	txLog := t.txLog.Clone()
	profile := t.profile.Clone()
	t.mu.RUnlock()

	ref := core.NewDate(year, month, 1)
	grid := core.CalendarGrid(ref)

	days := make([]ViewDay, len(grid))
	for i, cell := range grid {
		days[i] = ViewDay{
			CalendarDay:  cell,
			Net:          core.DayNet(txLog, cell.DateKey),
			Transactions: txLog[cell.DateKey],
		}
	}

	weeks := core.Weeks(grid)
	weekTotals := make([]core.Money, len(weeks))
	for i, week := range weeks {
		weekTotals[i] = core.WeekExpenseTotal(txLog, week)
	}

	today := core.DateOf(now)
	cushion := core.RealTimeBalance(txLog, profile, now)

	view := MonthView{
		Year:                year,
		Month:               month,
		Key:                 core.MonthKey(year, month),
		Days:                days,
		WeekTotals:          weekTotals,
		Stats:               core.MonthlyStats(txLog, year, month),
		Budgets:             core.BudgetOverview(txLog, profile, year, month),
		ProjectedBalance:    core.ProjectedMonthBalance(txLog, profile, year, month),
		DistributionPending: core.DistributionPending(profile, today),
	}

	if core.MonthsAhead(now, year, month) > 0 {
		// Future month: balances are extrapolated, not summed.
		p := core.ProjectMonth(txLog, profile, now, year, month)
		view.Projection = &p
		view.Balance = p.Disposable
		view.NetWorth = p.TotalCushion
	} else if year == now.Year() && month == int(now.Month()) {
		view.Balance = cushion
		view.NetWorth = core.TotalNetWorth(cushion, profile)
	} else {
		historical := core.BalanceAtMonthEnd(txLog, profile, year, month)
		view.Balance = historical
		view.NetWorth = core.TotalNetWorth(historical, profile)
	}

	view.Insights = insights.Evaluate(txLog, profile, year, month, cushion, now, insights.DefaultConfig())
	return view
}
