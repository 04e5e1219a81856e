package insights

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"finanzas/internal/core"
)

func mtx(id, date string, cents int64, typ core.TxType, category, description string) core.Transaction {
	d, err := core.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return core.Transaction{
		ID:          id,
		Date:        d,
		Amount:      core.Money{Cents: cents},
		Type:        typ,
		Category:    category,
		Description: description,
	}
}

func monthLog(txs ...core.Transaction) core.TransactionLog {
	log := core.TransactionLog{}
	for _, t := range txs {
		log.Add(t)
	}
	return log
}

// March 2024 viewed from April: the whole month counts as elapsed.
func pastMarch(log core.TransactionLog, profile core.Profile, cushion core.Money) *Context {
	now := time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)
	return NewContext(log, profile, 2024, 3, cushion, now, DefaultConfig())
}

func TestContextPastMonthCoversWholeMonth(t *testing.T) {
	ctx := pastMarch(monthLog(), core.Profile{}, core.Money{})
	if ctx.IsCurrentMonth {
		t.Fatal("march viewed from april must not be current")
	}
	if ctx.CurrentDay != 31 || ctx.RemainingDays != 0 {
		t.Fatalf("current day %d remaining %d", ctx.CurrentDay, ctx.RemainingDays)
	}
}

func TestContextTotalsExcludeTransfers(t *testing.T) {
	log := monthLog(
		mtx("a", "2024-03-05", 10000, core.Income, "Nómina", ""),
		mtx("b", "2024-03-06", 4000, core.Expense, "Comidas", ""),
		mtx("c", "2024-03-07", 2000, core.Transfer, "Otros", ""),
		mtx("d", "2024-02-28", 9999, core.Expense, "Comidas", ""),
	)
	ctx := pastMarch(log, core.Profile{}, core.Money{})
	if ctx.TotalIncome.Cents != 10000 || ctx.TotalSpent.Cents != 4000 {
		t.Fatalf("income %d spent %d", ctx.TotalIncome.Cents, ctx.TotalSpent.Cents)
	}
	if len(ctx.Transactions) != 3 {
		t.Fatalf("month transactions %d", len(ctx.Transactions))
	}
	if ctx.CatTotals["Comidas"].Cents != 4000 {
		t.Fatalf("cat total %d", ctx.CatTotals["Comidas"].Cents)
	}
}

func TestProjectionOverrun(t *testing.T) {
	// day 10 of the current month, 500€ spent, 1000€ budgeted:
	// projection 1550€ overruns.
	log := monthLog(mtx("a", "2024-03-08", 50000, core.Expense, "Comidas", ""))
	profile := core.Profile{Budgets: map[string]core.Money{"Comidas": {Cents: 100000}}}
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx := NewContext(log, profile, 2024, 3, core.Money{}, now, DefaultConfig())

	ins, ok := projectionOverrun(ctx)
	if !ok {
		t.Fatal("expected a projection alert")
	}
	if ins.Type != Warning || ins.Score != 10 {
		t.Fatalf("got %+v", ins)
	}
	if !strings.Contains(ins.Text, "1550€") {
		t.Fatalf("text %q", ins.Text)
	}

	// within budget: projection 930€
	log = monthLog(mtx("a", "2024-03-08", 30000, core.Expense, "Comidas", ""))
	ctx = NewContext(log, profile, 2024, 3, core.Money{}, now, DefaultConfig())
	if _, ok := projectionOverrun(ctx); ok {
		t.Fatal("projection within budget must not fire")
	}
}

func TestWeekendShare(t *testing.T) {
	// 2024-03-02 is a Saturday.
	log := monthLog(
		mtx("a", "2024-03-02", 6000, core.Expense, "Planes", ""),
		mtx("b", "2024-03-05", 4000, core.Expense, "Comidas", ""),
	)
	ins, ok := weekendShare(pastMarch(log, core.Profile{}, core.Money{}))
	if !ok {
		t.Fatal("60% weekend share must fire")
	}
	if !strings.Contains(ins.Text, "60%") {
		t.Fatalf("text %q", ins.Text)
	}

	log = monthLog(
		mtx("a", "2024-03-02", 4000, core.Expense, "Planes", ""),
		mtx("b", "2024-03-05", 6000, core.Expense, "Comidas", ""),
	)
	if _, ok := weekendShare(pastMarch(log, core.Profile{}, core.Money{})); ok {
		t.Fatal("40% weekend share must not fire")
	}
}

func TestZeroSpendStreak(t *testing.T) {
	var txs []core.Transaction
	for day := 1; day <= 10; day++ {
		txs = append(txs, mtx(fmt.Sprintf("d%d", day), fmt.Sprintf("2024-03-%02d", day), 1000, core.Expense, "Comidas", ""))
	}
	ins, ok := zeroSpendStreak(pastMarch(monthLog(txs...), core.Profile{}, core.Money{}))
	if !ok {
		t.Fatal("21 zero-spend days must fire")
	}
	if !strings.Contains(ins.Text, "21 días") {
		t.Fatalf("text %q", ins.Text)
	}
}

func TestRunwayTiers(t *testing.T) {
	// past month, 1000€ spent, so monthly burn is 1000€
	log := monthLog(mtx("a", "2024-03-10", 100000, core.Expense, "Comidas", ""))
	cases := []struct {
		cushionCents int64
		wantFires    bool
		wantType     Type
		wantScore    int
	}{
		{50000, true, Warning, 10},  // 0.5 months
		{200000, true, Warning, 7},  // 2 months
		{500000, false, "", 0},      // 5 months, between tiers
		{1000000, true, Success, 8}, // 10 months
		{0, false, "", 0},           // no cushion, rule silent
	}
	for _, tc := range cases {
		ctx := pastMarch(log, core.Profile{}, core.Money{Cents: tc.cushionCents})
		ins, ok := runway(ctx)
		if ok != tc.wantFires {
			t.Fatalf("cushion %d: fired=%v", tc.cushionCents, ok)
		}
		if ok && (ins.Type != tc.wantType || ins.Score != tc.wantScore) {
			t.Fatalf("cushion %d: got %+v", tc.cushionCents, ins)
		}
	}
}

func TestVolatility(t *testing.T) {
	// 10€ every single day: zero deviation
	var steady []core.Transaction
	for day := 1; day <= 31; day++ {
		steady = append(steady, mtx(fmt.Sprintf("s%d", day), fmt.Sprintf("2024-03-%02d", day), 1000, core.Expense, "Comidas", ""))
	}
	ins, ok := volatility(pastMarch(monthLog(steady...), core.Profile{}, core.Money{}))
	if !ok || ins.Type != Success {
		t.Fatalf("steady spend: got %+v fired=%v", ins, ok)
	}

	// one 310€ spike: std dev ~54.8€ against a 10€ mean
	spike := monthLog(mtx("a", "2024-03-01", 31000, core.Expense, "Comidas", ""))
	ins, ok = volatility(pastMarch(spike, core.Profile{}, core.Money{}))
	if !ok || ins.Type != Warning {
		t.Fatalf("spiky spend: got %+v fired=%v", ins, ok)
	}
}

func TestLinearTrend(t *testing.T) {
	// a mid-month burst lifts the fitted slope well above the simple
	// average of the whole month
	log := monthLog(
		mtx("a", "2024-03-15", 50000, core.Expense, "Comidas", ""),
		mtx("b", "2024-03-16", 50000, core.Expense, "Comidas", ""),
		mtx("c", "2024-03-17", 50000, core.Expense, "Comidas", ""),
	)
	if _, ok := linearTrend(pastMarch(log, core.Profile{}, core.Money{})); !ok {
		t.Fatal("mid-month burst must fire")
	}

	// perfectly linear spend keeps slope equal to the simple average
	var steady []core.Transaction
	for day := 1; day <= 31; day++ {
		steady = append(steady, mtx(fmt.Sprintf("s%d", day), fmt.Sprintf("2024-03-%02d", day), 1000, core.Expense, "Comidas", ""))
	}
	if _, ok := linearTrend(pastMarch(monthLog(steady...), core.Profile{}, core.Money{})); ok {
		t.Fatal("linear spend must not fire")
	}
}

func TestPareto(t *testing.T) {
	log := monthLog(
		mtx("a", "2024-03-01", 90000, core.Expense, "Comidas", ""),
		mtx("b", "2024-03-02", 2500, core.Expense, "Planes", ""),
		mtx("c", "2024-03-03", 2500, core.Expense, "Regalos", ""),
		mtx("d", "2024-03-04", 2500, core.Expense, "Caprichos", ""),
		mtx("e", "2024-03-05", 2500, core.Expense, "Otros", ""),
	)
	ins, ok := pareto(pastMarch(log, core.Profile{}, core.Money{}))
	if !ok {
		t.Fatal("one dominating category out of five must fire")
	}
	if !strings.Contains(ins.Text, "solo 1 categorías") {
		t.Fatalf("text %q", ins.Text)
	}

	even := monthLog(
		mtx("a", "2024-03-01", 20000, core.Expense, "Comidas", ""),
		mtx("b", "2024-03-02", 20000, core.Expense, "Planes", ""),
		mtx("c", "2024-03-03", 20000, core.Expense, "Regalos", ""),
		mtx("d", "2024-03-04", 20000, core.Expense, "Caprichos", ""),
		mtx("e", "2024-03-05", 20000, core.Expense, "Otros", ""),
	)
	if _, ok := pareto(pastMarch(even, core.Profile{}, core.Money{})); ok {
		t.Fatal("evenly spread categories must not fire")
	}
}

func TestDuplicates(t *testing.T) {
	log := monthLog(
		mtx("a", "2024-03-10", 1500, core.Expense, "Comidas", "Cena"),
		mtx("b", "2024-03-10", 1500, core.Expense, "Comidas", "Cena"),
	)
	if _, ok := duplicates(pastMarch(log, core.Profile{}, core.Money{})); !ok {
		t.Fatal("identical same-day movements must fire")
	}

	log = monthLog(
		mtx("a", "2024-03-10", 1500, core.Expense, "Comidas", "Cena"),
		mtx("b", "2024-03-11", 1500, core.Expense, "Comidas", "Cena"),
	)
	if _, ok := duplicates(pastMarch(log, core.Profile{}, core.Money{})); ok {
		t.Fatal("different days must not fire")
	}
}

func TestStreamingWar(t *testing.T) {
	log := monthLog(
		mtx("a", "2024-03-01", 1299, core.Expense, "Suscripciones", "Netflix"),
		mtx("b", "2024-03-02", 999, core.Expense, "Suscripciones", "Spotify Premium"),
		mtx("c", "2024-03-03", 899, core.Expense, "Suscripciones", "HBO Max"),
	)
	ins, ok := streamingWar(pastMarch(log, core.Profile{}, core.Money{}))
	if !ok {
		t.Fatal("three streaming services must fire")
	}
	if !strings.Contains(ins.Text, "3 plataformas") {
		t.Fatalf("text %q", ins.Text)
	}
}

func TestSaverLevel(t *testing.T) {
	cases := []struct {
		spentCents int64
		want       string
	}{
		{95000, "Novato"},
		{85000, "Aprendiz"},
		{70000, "Ahorrador"},
		{40000, "Maestro"},
		{20000, "Leyenda"},
	}
	for _, tc := range cases {
		log := monthLog(
			mtx("i", "2024-03-01", 100000, core.Income, core.CategorySalary, ""),
			mtx("e", "2024-03-05", tc.spentCents, core.Expense, "Comidas", ""),
		)
		ins, ok := saverLevel(pastMarch(log, core.Profile{}, core.Money{}))
		if !ok {
			t.Fatalf("spent %d: level must always emit with income", tc.spentCents)
		}
		if !strings.Contains(ins.Title, tc.want) {
			t.Fatalf("spent %d: title %q, want %s", tc.spentCents, ins.Title, tc.want)
		}
	}
}

func TestHealthScore(t *testing.T) {
	// 50% savings rate, cushion above three months of spend, no debt
	log := monthLog(
		mtx("i", "2024-03-01", 100000, core.Income, core.CategorySalary, ""),
		mtx("e", "2024-03-05", 50000, core.Expense, "Comidas", ""),
	)
	ins, ok := healthScore(pastMarch(log, core.Profile{}, core.Money{Cents: 200000}))
	if !ok {
		t.Fatal("health score always emits")
	}
	if ins.Type != Success || !strings.Contains(ins.Text, "100/100") {
		t.Fatalf("got %+v", ins)
	}

	// no income, no cushion, money only going out
	log = monthLog(mtx("e", "2024-03-05", 50000, core.Expense, "Comidas", ""))
	ins, _ = healthScore(pastMarch(log, core.Profile{}, core.Money{}))
	if ins.Type != Neutral || !strings.Contains(ins.Text, "50/100") {
		t.Fatalf("got %+v", ins)
	}
}

func TestPocketGap(t *testing.T) {
	profile := core.Profile{
		Pockets:  map[string]core.Money{core.FundTravel: {Cents: 30000}},
		Accounts: map[string]core.Money{"revolut": {Cents: 10000}},
	}
	ins, ok := pocketGap(pastMarch(monthLog(), profile, core.Money{}))
	if !ok {
		t.Fatal("uncovered pockets must fire")
	}
	if ins.Type != Action || !strings.Contains(ins.Details, "200€") {
		t.Fatalf("got %+v", ins)
	}

	profile.Accounts["revolut"] = core.Money{Cents: 50000}
	if _, ok := pocketGap(pastMarch(monthLog(), profile, core.Money{})); ok {
		t.Fatal("covered pockets must not fire")
	}
}

func TestEvaluateRankedAndStable(t *testing.T) {
	log := monthLog(
		mtx("i", "2024-03-01", 200000, core.Income, core.CategorySalary, "Nómina marzo"),
		mtx("a", "2024-03-02", 6000, core.Expense, "Planes", "Cena sábado"),
		mtx("b", "2024-03-05", 4000, core.Expense, "Comidas", ""),
		mtx("c", "2024-03-12", 1299, core.Expense, "Suscripciones", "Netflix"),
	)
	profile := core.DefaultProfile()
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	first := Evaluate(log, profile, 2024, 3, core.Money{Cents: 500000}, now, DefaultConfig())
	if len(first) == 0 {
		t.Fatal("expected insights")
	}
	for i := 1; i < len(first); i++ {
		if first[i].Score > first[i-1].Score {
			t.Fatalf("not sorted at %d: %d after %d", i, first[i].Score, first[i-1].Score)
		}
	}

	second := Evaluate(log, profile, 2024, 3, core.Money{Cents: 500000}, now, DefaultConfig())
	if len(second) != len(first) {
		t.Fatalf("runs differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("run not deterministic at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}
