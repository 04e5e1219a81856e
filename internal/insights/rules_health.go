package insights

import "fmt"

var housingKeywords = []string{"alquiler", "hipoteca", "comunidad", "casero"}

func healthRules() []Rule {
	return []Rule{
		{ID: "savings-rule", Evaluate: savingsRule},
		{ID: "runway", Evaluate: runway},
		{ID: "burn-acceleration", Evaluate: burnAcceleration},
		{ID: "invest-capacity", Evaluate: investCapacity},
		{ID: "days-bought", Evaluate: daysBought},
		{ID: "housing-ratio", Evaluate: housingRatio},
		{ID: "safe-daily", Evaluate: safeDaily},
	}
}

func savingsRule(c *Context) (Insight, bool) {
	if c.TotalIncome.Cents <= 0 {
		return Insight{}, false
	}
	rate := c.SavingsRate()
	if rate >= c.Config.SavingsRateTarget {
		return Insight{
			Type:    Success,
			Title:   "📘 Regla 50/30/20",
			Text:    "¡Cumples la regla del 20% de ahorro!",
			Details: fmt.Sprintf("Estás ahorrando un %.1f%% de tus ingresos.", rate),
			Score:   c.Config.SavingsHitScore,
		}, true
	}
	return Insight{
		Type:    Info,
		Title:   "📘 Regla 50/30/20",
		Text:    fmt.Sprintf("Ahorro actual: %.1f%% (Meta: 20%%)", rate),
		Details: "Intenta reducir gastos variables para llegar al 20%.",
		Score:   c.Config.SavingsMissScore,
	}, true
}

// monthlyBurn extrapolates the month's spend rate; past months use the
// observed total directly.
func (c *Context) monthlyBurn() float64 {
	if c.IsCurrentMonth {
		return c.TotalSpent.Euros() / float64(c.CurrentDay) * float64(c.DaysInMonth)
	}
	return c.TotalSpent.Euros()
}

func runway(c *Context) (Insight, bool) {
	if c.Cushion.Cents <= 0 || c.TotalSpent.Cents <= 0 {
		return Insight{}, false
	}
	months := c.Cushion.Euros() / c.monthlyBurn()
	switch {
	case months < c.Config.RunwayDanger:
		return Insight{
			Type:    Warning,
			Title:   "🚨 Zona de Peligro",
			Text:    "Tienes menos de 1 mes de gastos cubiertos.",
			Details: "Prioridad absoluta: Construir fondo de emergencia.",
			Score:   c.Config.RunwayDangerScore,
		}, true
	case months < c.Config.RunwayThin:
		return Insight{
			Type:    Warning,
			Title:   "⚠️ Colchón Fino",
			Text:    fmt.Sprintf("Tienes para %.1f meses.", months),
			Details: "Lo ideal es llegar a 3-6 meses de seguridad.",
			Score:   c.Config.RunwayThinScore,
		}, true
	case months >= c.Config.RunwayFortress:
		return Insight{
			Type:    Success,
			Title:   "🏰 Fortaleza Financiera",
			Text:    fmt.Sprintf("Tienes %.1f meses de libertad.", months),
			Details: "Considera invertir el excedente.",
			Score:   c.Config.RunwayFortressScore,
		}, true
	}
	return Insight{}, false
}

func burnAcceleration(c *Context) (Insight, bool) {
	if !c.IsCurrentMonth || c.CurrentDay <= 15 || c.CurrentDay <= c.Config.AccelFromDay {
		return Insight{}, false
	}
	var firstHalf, secondHalf float64
	for day := 1; day <= c.CurrentDay; day++ {
		if day <= 15 {
			firstHalf += c.DailyExpense(day).Euros()
		} else {
			secondHalf += c.DailyExpense(day).Euros()
		}
	}
	firstAvg := firstHalf / 15
	secondAvg := secondHalf / float64(c.CurrentDay-15)
	if secondAvg <= firstAvg*c.Config.AccelFactor {
		return Insight{}, false
	}
	return Insight{
		Type:    Warning,
		Title:   "📈 Aceleración de Gasto",
		Text:    "Estás gastando mucho más rápido en la segunda mitad del mes.",
		Details: "¡Frena un poco!",
		Score:   c.Config.AccelScore,
	}, true
}

func investCapacity(c *Context) (Insight, bool) {
	surplus := c.TotalIncome.Sub(c.TotalSpent)
	if c.Cushion.Cents <= c.Config.InvestCushionMin.Cents || surplus.Cents <= c.Config.InvestSurplusMin.Cents {
		return Insight{}, false
	}
	return Insight{
		Type:    Action,
		Title:   "🚀 Oportunidad de Inversión",
		Text:    "Tienes buen colchón y superávit mensual.",
		Details: "¿Has considerado indexarte o abrir un depósito?",
		Score:   c.Config.InvestScore,
	}, true
}

func daysBought(c *Context) (Insight, bool) {
	if c.TotalIncome.Cents <= 0 || c.TotalSpent.Cents <= 0 {
		return Insight{}, false
	}
	saved := c.TotalIncome.Sub(c.TotalSpent)
	if saved.Cents <= 0 {
		return Insight{}, false
	}
	days := saved.Euros() / (c.TotalSpent.Euros() / float64(c.CurrentDay))
	return Insight{
		Type:    Success,
		Title:   "⏳ Tiempo Comprado",
		Text:    fmt.Sprintf("Este mes has \"comprado\" %.1f días de libertad futura.", days),
		Details: "Tu ahorro se traduce en tiempo de vida sin trabajar.",
		Score:   c.Config.DaysBoughtScore,
	}, true
}

func housingRatio(c *Context) (Insight, bool) {
	if c.TotalIncome.Cents <= 0 {
		return Insight{}, false
	}
	cost := c.SpendMatching(housingKeywords)
	if cost.Cents <= 0 {
		return Insight{}, false
	}
	ratio := cost.Euros() / c.TotalIncome.Euros() * 100
	if ratio <= c.Config.HousingRatioMax {
		return Insight{}, false
	}
	return Insight{
		Type:    Warning,
		Title:   "🏠 Esfuerzo en Vivienda",
		Text:    fmt.Sprintf("Destinas el %.0f%% de tus ingresos a vivienda.", ratio),
		Details: "Lo recomendado es no superar el 30-35%.",
		Score:   c.Config.HousingScore,
	}, true
}

func safeDaily(c *Context) (Insight, bool) {
	if !c.IsCurrentMonth || c.RemainingDays <= 0 {
		return Insight{}, false
	}
	budget := c.BudgetTotal()
	if budget.Cents <= 0 {
		return Insight{}, false
	}
	perDay := budget.Sub(c.TotalSpent).Euros() / float64(c.RemainingDays)
	if perDay < 0 {
		perDay = 0
	}
	return Insight{
		Type:    Neutral,
		Title:   "🛡️ Límite Diario Seguro",
		Text:    fmt.Sprintf("Puedes gastar %.0f€/día el resto del mes.", perDay),
		Details: "Si te mantienes ahí, cumplirás el presupuesto.",
		Score:   c.Config.SafeDailyScore,
	}, true
}
