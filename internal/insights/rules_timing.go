package insights

import (
	"fmt"
	"time"

	"finanzas/internal/core"
)

func timingRules() []Rule {
	return []Rule{
		{ID: "projection-overrun", Evaluate: projectionOverrun},
		{ID: "weekend-share", Evaluate: weekendShare},
		{ID: "monday-share", Evaluate: mondayShare},
		{ID: "first-week-rush", Evaluate: firstWeekRush},
		{ID: "survival-mode", Evaluate: survivalMode},
		{ID: "night-purchases", Evaluate: nightPurchases},
		{ID: "zero-spend-streak", Evaluate: zeroSpendStreak},
		{ID: "daily-cost", Evaluate: dailyCost},
		{ID: "payday-euphoria", Evaluate: paydayEuphoria},
		{ID: "friday-share", Evaluate: fridayShare},
	}
}

func projectionOverrun(c *Context) (Insight, bool) {
	if !c.IsCurrentMonth || c.CurrentDay <= 1 {
		return Insight{}, false
	}
	projected := c.TotalSpent.Euros() / float64(c.CurrentDay) * float64(c.DaysInMonth)
	budget := c.BudgetTotal()
	if budget.Cents <= 0 || projected <= budget.Euros() {
		return Insight{}, false
	}
	remaining := c.RemainingDays
	if remaining < 1 {
		remaining = 1
	}
	allowed := budget.Sub(c.TotalSpent).Euros() / float64(remaining)
	if allowed < 0 {
		allowed = 0
	}
	return Insight{
		Type:    Warning,
		Title:   "⚠️ Alerta de Proyección",
		Text:    fmt.Sprintf("Proyección: %.0f€ (Presupuesto: %s)", projected, eur0(budget)),
		Details: fmt.Sprintf("Reduce tu gasto diario a %.0f€ para cumplir.", allowed),
		Score:   c.Config.ProjectionScore,
	}, true
}

func weekendShare(c *Context) (Insight, bool) {
	if c.TotalSpent.Cents <= 0 {
		return Insight{}, false
	}
	var weekend core.Money
	for _, t := range c.Transactions {
		if t.Type != core.Expense {
			continue
		}
		wd := t.Date.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			weekend = weekend.Add(t.Amount)
		}
	}
	share := weekend.Euros() / c.TotalSpent.Euros()
	if share <= c.Config.WeekendShare {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "🎉 Fiebre de Sábado Noche",
		Text:    fmt.Sprintf("El %.0f%% de tu gasto es en fin de semana.", share*100),
		Details: "Tus lunes a viernes son muy austeros, pero te descontrolas el finde.",
		Score:   c.Config.WeekendScore,
	}, true
}

func mondayShare(c *Context) (Insight, bool) {
	if c.TotalSpent.Cents <= 0 {
		return Insight{}, false
	}
	var monday core.Money
	for _, t := range c.Transactions {
		if t.Type == core.Expense && t.Date.Weekday() == time.Monday {
			monday = monday.Add(t.Amount)
		}
	}
	if monday.Euros()/c.TotalSpent.Euros() <= c.Config.MondayShare {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "☕ Lunes Costosos",
		Text:    "Gastas mucho los lunes.",
		Details: "¿Compensación emocional por el inicio de semana?",
		Score:   c.Config.MondayScore,
	}, true
}

func firstWeekRush(c *Context) (Insight, bool) {
	if c.TotalSpent.Cents <= 0 {
		return Insight{}, false
	}
	var firstWeek core.Money
	for _, t := range c.Transactions {
		if t.Type == core.Expense && t.Date.Day() <= 7 {
			firstWeek = firstWeek.Add(t.Amount)
		}
	}
	if firstWeek.Euros()/c.TotalSpent.Euros() <= c.Config.FirstWeekShare {
		return Insight{}, false
	}
	return Insight{
		Type:    Warning,
		Title:   "🏎️ Salida en Falso",
		Text:    "Gastaste el 60% de tu dinero la primera semana.",
		Details: "Intenta dosificar para no sufrir a fin de mes.",
		Score:   c.Config.FirstWeekScore,
	}, true
}

func survivalMode(c *Context) (Insight, bool) {
	if !c.IsCurrentMonth || c.CurrentDay <= c.Config.SurvivalFromDay {
		return Insight{}, false
	}
	income := c.TotalIncome.Euros()
	if income == 0 {
		income = 1
	}
	if c.TotalSpent.Euros()/income <= c.Config.SurvivalSpendRatio {
		return Insight{}, false
	}
	return Insight{
		Type:    Warning,
		Title:   "🆘 Modo Supervivencia",
		Text:    "Te queda menos del 10% de tus ingresos.",
		Details: "Evita gastos hormiga estos últimos días.",
		Score:   c.Config.SurvivalScore,
	}, true
}

func nightPurchases(c *Context) (Insight, bool) {
	count := 0
	for _, t := range c.Transactions {
		if t.Type != core.Expense || t.CreatedAt.IsZero() {
			continue
		}
		h := t.CreatedAt.Hour()
		if h >= 23 || h <= 4 {
			count++
		}
	}
	if count <= c.Config.NightMinPurchases {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "🦉 Gasto Nocturno",
		Text:    fmt.Sprintf("Has hecho %d compras de madrugada.", count),
		Details: "Las compras nocturnas suelen ser impulsivas.",
		Score:   c.Config.NightScore,
	}, true
}

func zeroSpendStreak(c *Context) (Insight, bool) {
	days := make(map[int]bool)
	for _, t := range c.Transactions {
		if t.Type == core.Expense {
			days[t.Date.Day()] = true
		}
	}
	zero := c.CurrentDay - len(days)
	if zero <= c.Config.ZeroSpendMinDays {
		return Insight{}, false
	}
	return Insight{
		Type:    Success,
		Title:   "🛡️ Escudo de Ahorro",
		Text:    fmt.Sprintf("%d días sin gastar nada.", zero),
		Details: "¡Excelente disciplina!",
		Score:   c.Config.ZeroSpendScore,
	}, true
}

func dailyCost(c *Context) (Insight, bool) {
	if c.CurrentDay <= 0 {
		return Insight{}, false
	}
	avg := c.TotalSpent.Euros() / float64(c.CurrentDay)
	return Insight{
		Type:    Neutral,
		Title:   "📅 Coste de Vida Diario",
		Text:    fmt.Sprintf("Te cuesta %.1f€ vivir cada día.", avg),
		Details: "Incluye todos tus gastos promediados.",
		Score:   c.Config.DailyCostScore,
	}, true
}

func paydayEuphoria(c *Context) (Insight, bool) {
	if c.Profile.Payday <= 0 {
		return Insight{}, false
	}
	var payday core.Money
	for _, t := range c.Transactions {
		if t.Type == core.Expense && t.Date.Day() == c.Profile.Payday {
			payday = payday.Add(t.Amount)
		}
	}
	if payday.Euros() <= c.TotalSpent.Euros()*c.Config.PaydayShare {
		return Insight{}, false
	}
	return Insight{
		Type:    Warning,
		Title:   "💸 Euforia de Cobro",
		Text:    "Gastaste el 15% de tu mes el mismo día que cobraste.",
		Details: "Cuidado con el efecto riqueza instantánea.",
		Score:   c.Config.PaydayScore,
	}, true
}

func fridayShare(c *Context) (Insight, bool) {
	var friday core.Money
	for _, t := range c.Transactions {
		if t.Type == core.Expense && t.Date.Weekday() == time.Friday {
			friday = friday.Add(t.Amount)
		}
	}
	if friday.Cents <= 0 || friday.Euros() <= c.TotalSpent.Euros()*c.Config.FridayShare {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "🍻 TGIF (Viernes)",
		Text:    "Los viernes se llevan el 20% de tu presupuesto.",
		Details: "¿Cenas fuera o copas?",
		Score:   c.Config.FridayScore,
	}, true
}
