package insights

import (
	"fmt"
	"math"
	"sort"
	"time"

	"finanzas/internal/core"
)

var debtKeywords = []string{"prestamo", "préstamo", "credito", "crédito", "hipoteca", "plazo", "financiacion"}

// basicNeedCategories complements the housing/transport keyword scans
// in the basic-needs ratio.
var basicNeedCategories = map[string]bool{
	"Comidas":      true,
	"Transporte":   true,
	"Vivienda":     true,
	"Supermercado": true,
	"Casa":         true,
}

func statsRules() []Rule {
	return []Rule{
		{ID: "volatility", Evaluate: volatility},
		{ID: "linear-trend", Evaluate: linearTrend},
		{ID: "pareto", Evaluate: pareto},
		{ID: "weekend-multiplier", Evaluate: weekendMultiplier},
		{ID: "zero-day-probability", Evaluate: zeroDayProbability},
		{ID: "basic-needs-ratio", Evaluate: basicNeedsRatio},
		{ID: "compound-seed", Evaluate: compoundSeed},
		{ID: "ticket-size", Evaluate: ticketSize},
		{ID: "emergency-countdown", Evaluate: emergencyCountdown},
		{ID: "debt-ratio", Evaluate: debtRatio},
		{ID: "health-score", Evaluate: healthScore},
		{ID: "years-of-runway", Evaluate: yearsOfRunway},
		{ID: "lifestyle-inflation", Evaluate: lifestyleInflation},
		{ID: "ant-share", Evaluate: antShare},
		{ID: "save-speed", Evaluate: saveSpeed},
	}
}

// volatility compares the population standard deviation of daily spend
// against its mean.
func volatility(c *Context) (Insight, bool) {
	if c.CurrentDay <= 2 {
		return Insight{}, false
	}
	mean := c.TotalSpent.Euros() / float64(c.CurrentDay)
	var variance float64
	for day := 1; day <= c.CurrentDay; day++ {
		d := c.DailyExpense(day).Euros() - mean
		variance += d * d
	}
	variance /= float64(c.CurrentDay)
	stdDev := math.Sqrt(variance)

	if stdDev > mean*c.Config.VolatileFactor {
		return Insight{
			Type:    Warning,
			Title:   "📊 Gasto Volátil",
			Text:    fmt.Sprintf("Tu desviación estándar es alta (%.0f€).", stdDev),
			Details: "Tus gastos diarios son muy impredecibles.",
			Score:   c.Config.VolatileScore,
		}, true
	}
	if stdDev < mean*c.Config.ConsistentFactor && c.TotalSpent.Cents > 0 {
		return Insight{
			Type:    Success,
			Title:   "📏 Gasto Consistente",
			Text:    "Tus gastos diarios son muy estables.",
			Details: "Facilita mucho la planificación.",
			Score:   c.Config.ConsistentScore,
		}, true
	}
	return Insight{}, false
}

// linearTrend fits a least-squares line through the cumulative daily
// spend. A slope well above the simple average means recent
// acceleration.
func linearTrend(c *Context) (Insight, bool) {
	if c.CurrentDay <= c.Config.TrendFromDay {
		return Insight{}, false
	}
	var sumX, sumY, sumXY, sumXX, cumulative float64
	for day := 1; day <= c.CurrentDay; day++ {
		cumulative += c.DailyExpense(day).Euros()
		x := float64(day)
		sumX += x
		sumY += cumulative
		sumXY += x * cumulative
		sumXX += x * x
	}
	n := float64(c.CurrentDay)
	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	simpleAvg := c.TotalSpent.Euros() / n
	if slope <= simpleAvg*c.Config.TrendFactor {
		return Insight{}, false
	}
	return Insight{
		Type:    Warning,
		Title:   "📈 Tendencia al Alza",
		Text:    "Tu ritmo de gasto está acelerando.",
		Details: "Estás gastando más en los últimos días que al principio.",
		Score:   c.Config.TrendScore,
	}, true
}

func pareto(c *Context) (Insight, bool) {
	if len(c.CatTotals) <= c.Config.ParetoMinCategories || c.TotalSpent.Cents <= 0 {
		return Insight{}, false
	}
	type catAmount struct {
		name   string
		amount core.Money
	}
	cats := make([]catAmount, 0, len(c.CatTotals))
	for name, amount := range c.CatTotals {
		cats = append(cats, catAmount{name, amount})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].amount.Cents != cats[j].amount.Cents {
			return cats[i].amount.Cents > cats[j].amount.Cents
		}
		return cats[i].name < cats[j].name
	})
	var accumulated float64
	count := 0
	for _, ca := range cats {
		accumulated += ca.amount.Euros() / c.TotalSpent.Euros()
		count++
		if accumulated >= c.Config.ParetoShare {
			break
		}
	}
	if count > int(math.Ceil(float64(len(cats))*0.2)) {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "📐 Principio de Pareto",
		Text:    fmt.Sprintf("El 80%% de tu gasto viene de solo %d categorías.", count),
		Details: "Enfócate en optimizar esas pocas categorías.",
		Score:   c.Config.ParetoScore,
	}, true
}

func weekendMultiplier(c *Context) (Insight, bool) {
	if c.TotalSpent.Cents <= 0 {
		return Insight{}, false
	}
	var weekendSum, weekdaySum float64
	var weekendCount, weekdayCount int
	for day := 1; day <= c.CurrentDay; day++ {
		spend := c.DailyExpense(day).Euros()
		wd := c.WeekdayOf(day)
		if wd == time.Saturday || wd == time.Sunday {
			weekendSum += spend
			weekendCount++
		} else {
			weekdaySum += spend
			weekdayCount++
		}
	}
	if weekendCount == 0 || weekdayCount == 0 {
		return Insight{}, false
	}
	weekdayAvg := weekdaySum / float64(weekdayCount)
	if weekdayAvg == 0 {
		weekdayAvg = 1
	}
	multiplier := (weekendSum / float64(weekendCount)) / weekdayAvg
	if multiplier <= c.Config.WeekendMultiplierMin {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "🎉 Efecto Fin de Semana",
		Text:    fmt.Sprintf("Gastas %.1fx más los fines de semana.", multiplier),
		Details: "El ocio concentra tu presupuesto.",
		Score:   c.Config.WeekendMultiplierScore,
	}, true
}

func zeroDayProbability(c *Context) (Insight, bool) {
	if c.CurrentDay <= 5 {
		return Insight{}, false
	}
	days := make(map[int]bool)
	for _, t := range c.Transactions {
		if t.Type == core.Expense {
			days[t.Date.Day()] = true
		}
	}
	prob := float64(c.CurrentDay-len(days)) / float64(c.CurrentDay) * 100
	if prob <= c.Config.ZeroDayProbMin {
		return Insight{}, false
	}
	return Insight{
		Type:    Success,
		Title:   "🧘 Mente Estoica",
		Text:    fmt.Sprintf("Tienes un %.0f%% de probabilidad de no gastar nada hoy.", prob),
		Details: "Gran control de impulsos.",
		Score:   c.Config.ZeroDayScore,
	}, true
}

func basicNeedsRatio(c *Context) (Insight, bool) {
	if c.TotalIncome.Cents <= 0 || c.TotalSpent.Cents <= 0 {
		return Insight{}, false
	}
	var basic core.Money
	for _, t := range c.Transactions {
		if basicNeedCategories[t.Category] ||
			matchAny(t.Description, housingKeywords) ||
			matchAny(t.Description, transportKeywords) {
			basic = basic.Add(t.Amount)
		}
	}
	ratio := basic.Euros() / c.TotalIncome.Euros() * 100
	if ratio >= c.Config.NeedsRatioMax {
		return Insight{}, false
	}
	return Insight{
		Type:    Success,
		Title:   "📉 Coste de Vida Bajo",
		Text:    fmt.Sprintf("Tus necesidades básicas son solo el %.0f%% de tus ingresos.", ratio),
		Details: "Tienes mucho margen de maniobra.",
		Score:   c.Config.NeedsScore,
	}, true
}

func compoundSeed(c *Context) (Insight, bool) {
	if c.Cushion.Cents <= c.Config.CompoundCushionMin.Cents {
		return Insight{}, false
	}
	future := c.Cushion.Euros() * math.Pow(1+c.Config.CompoundRate, float64(c.Config.CompoundYears))
	gain := future - c.Cushion.Euros()
	return Insight{
		Type:    Action,
		Title:   "🌳 Semilla de Riqueza",
		Text:    fmt.Sprintf("Si inviertes tu colchón al 5%%, en %d años tendrás %.0f€.", c.Config.CompoundYears, future),
		Details: fmt.Sprintf("Ganancia pasiva: %.0f€.", gain),
		Score:   c.Config.CompoundScore,
	}, true
}

func ticketSize(c *Context) (Insight, bool) {
	count := 0
	for _, t := range c.Transactions {
		if t.Type == core.Expense {
			count++
		}
	}
	if count == 0 {
		return Insight{}, false
	}
	avg := c.TotalSpent.Euros() / float64(count)
	if avg > c.Config.TicketHigh.Euros() {
		return Insight{
			Type:    Info,
			Title:   "🐘 Compras Grandes",
			Text:    fmt.Sprintf("Tu ticket medio es alto (%.0f€).", avg),
			Details: "Haces pocas compras pero de valor.",
			Score:   c.Config.TicketScore,
		}, true
	}
	if avg < c.Config.TicketLow.Euros() {
		return Insight{
			Type:    Info,
			Title:   "🐁 Micro-consumo",
			Text:    fmt.Sprintf("Tu ticket medio es bajo (%.0f€).", avg),
			Details: "Muchas compras pequeñas.",
			Score:   c.Config.TicketScore,
		}, true
	}
	return Insight{}, false
}

func emergencyCountdown(c *Context) (Insight, bool) {
	if c.Cushion.Cents <= 0 || c.CurrentDay <= 5 || c.TotalSpent.Cents <= 0 {
		return Insight{}, false
	}
	daysCovered := c.Cushion.Euros() / (c.TotalSpent.Euros() / float64(c.CurrentDay))
	if daysCovered >= c.Config.EmergencyMaxDays {
		return Insight{}, false
	}
	return Insight{
		Type:    Warning,
		Title:   "⏱️ Cuenta Atrás",
		Text:    fmt.Sprintf("A este ritmo, tu dinero dura %.0f días.", daysCovered),
		Details: "¡Urgente reducir gastos!",
		Score:   c.Config.EmergencyScore,
	}, true
}

func debtRatio(c *Context) (Insight, bool) {
	if c.TotalIncome.Cents <= 0 {
		return Insight{}, false
	}
	debt := c.SpendMatching(debtKeywords)
	if debt.Cents <= 0 {
		return Insight{}, false
	}
	ratio := debt.Euros() / c.TotalIncome.Euros() * 100
	if ratio <= c.Config.DebtRatioMax {
		return Insight{}, false
	}
	return Insight{
		Type:    Warning,
		Title:   "⛓️ Cadenas de Deuda",
		Text:    fmt.Sprintf("Destinas el %.0f%% a pagar deudas.", ratio),
		Details: "Peligroso si suben los tipos o bajan ingresos.",
		Score:   c.Config.DebtScore,
	}, true
}

// healthScore folds savings rate, cushion-to-spend ratio and debt
// presence into one 0-100 figure. Always emitted.
func healthScore(c *Context) (Insight, bool) {
	score := 50
	rate := c.SavingsRate()
	switch {
	case rate > 20:
		score += 20
	case rate > 10:
		score += 10
	case rate < 0:
		score -= 20
	}
	switch {
	case c.Cushion.Cents > c.TotalSpent.Cents*3:
		score += 20
	case c.Cushion.Cents < c.TotalSpent.Cents:
		score -= 10
	}
	if c.SpendMatching(debtKeywords).Cents == 0 {
		score += 10
	}
	typ := Neutral
	switch {
	case score >= 80:
		typ = Success
	case score < 40:
		typ = Warning
	}
	return Insight{
		Type:    typ,
		Title:   "🏥 Score Financiero",
		Text:    fmt.Sprintf("Puntuación: %d/100", score),
		Details: "Basado en ahorro, colchón y deuda.",
		Score:   c.Config.HealthScoreWeight,
	}, true
}

func yearsOfRunway(c *Context) (Insight, bool) {
	if c.Cushion.Cents <= 0 || c.TotalSpent.Cents <= 0 {
		return Insight{}, false
	}
	daysToZero := c.Cushion.Euros() / (c.TotalSpent.Euros() / float64(c.CurrentDay))
	if daysToZero < 60 {
		// short horizons are already covered by the runway tiers
		return Insight{}, false
	}
	years := daysToZero / 365
	if years <= c.Config.RunwayYearsMin {
		return Insight{}, false
	}
	return Insight{
		Type:    Success,
		Title:   "♾️ Pista de Despegue",
		Text:    fmt.Sprintf("Podrías vivir %.1f años sin ingresos.", years),
		Details: "Libertad real.",
		Score:   c.Config.RunwayYearsScore,
	}, true
}

func lifestyleInflation(c *Context) (Insight, bool) {
	budget := c.BudgetTotal()
	if budget.Cents <= 0 || c.TotalSpent.Euros() <= budget.Euros()*c.Config.InflationFactor {
		return Insight{}, false
	}
	return Insight{
		Type:    Warning,
		Title:   "🎈 Inflación de Estilo",
		Text:    "Gastas un 20% más de lo presupuestado.",
		Details: "¿Estás subiendo tu nivel de vida demasiado rápido?",
		Score:   c.Config.InflationScore,
	}, true
}

func antShare(c *Context) (Insight, bool) {
	if c.TotalSpent.Cents <= 0 {
		return Insight{}, false
	}
	var small core.Money
	for _, t := range c.Transactions {
		if t.Type == core.Expense && t.Amount.Cents < c.Config.AntMaxAmount.Cents {
			small = small.Add(t.Amount)
		}
	}
	if small.Euros()/c.TotalSpent.Euros() <= c.Config.AntShare {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "☕ Efecto Hormiga",
		Text:    "El 10% de tu dinero se va en gastos < 5€.",
		Details: "Pequeños agujeros hunden grandes barcos.",
		Score:   c.Config.AntScore,
	}, true
}

func saveSpeed(c *Context) (Insight, bool) {
	if c.TotalIncome.Cents <= 0 || !c.IsCurrentMonth {
		return Insight{}, false
	}
	speed := c.TotalIncome.Sub(c.TotalSpent).Euros() / float64(c.CurrentDay)
	if speed > 0 {
		return Insight{
			Type:    Success,
			Title:   "🏎️ Velocidad de Ahorro",
			Text:    fmt.Sprintf("Estás acumulando %.1f€ netos cada día.", speed),
			Details: "¡Sigue así!",
			Score:   c.Config.SaveSpeedScore,
		}, true
	}
	return Insight{
		Type:    Warning,
		Title:   "📉 Desangrado Diario",
		Text:    fmt.Sprintf("Estás perdiendo %.1f€ netos cada día.", math.Abs(speed)),
		Details: "Frena el gasto.",
		Score:   c.Config.BleedScore,
	}, true
}
