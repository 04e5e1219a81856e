package insights

import (
	"fmt"

	"finanzas/internal/core"
)

var feeKeywords = []string{"comision", "comisión", "mantenimiento", "intereses"}

func anomalyRules() []Rule {
	return []Rule{
		{ID: "huge-expense", Evaluate: hugeExpense},
		{ID: "micro-swarm", Evaluate: microSwarm},
		{ID: "round-amounts", Evaluate: roundAmounts},
		{ID: "duplicates", Evaluate: duplicates},
		{ID: "bank-fees", Evaluate: bankFees},
		{ID: "refunds", Evaluate: refunds},
	}
}

func hugeExpense(c *Context) (Insight, bool) {
	for _, t := range c.Transactions {
		if t.Type != core.Expense || t.Amount.Cents <= c.Config.HugeExpenseMin.Cents {
			continue
		}
		if t.Category == core.CategoryOther || matchAny(t.Description, housingKeywords) {
			continue
		}
		return Insight{
			Type:    Info,
			Title:   "🦖 Gasto Monstruoso",
			Text:    fmt.Sprintf("Detectado gasto único de %s (%s).", eur0(t.Amount), t.Category),
			Details: "¿Fue algo planificado o un imprevisto?",
			Score:   c.Config.HugeExpenseScore,
		}, true
	}
	return Insight{}, false
}

func microSwarm(c *Context) (Insight, bool) {
	count := 0
	for _, t := range c.Transactions {
		if t.Type == core.Expense && t.Amount.Cents < c.Config.MicroMaxAmount.Cents {
			count++
		}
	}
	if count <= c.Config.MicroMinCount {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "🐜 Hormiguero",
		Text:    fmt.Sprintf("Tienes %d gastos menores a 2€.", count),
		Details: "Cuidado, el dinero se escapa por ahí.",
		Score:   c.Config.MicroScore,
	}, true
}

func roundAmounts(c *Context) (Insight, bool) {
	count := 0
	for _, t := range c.Transactions {
		// whole multiples of 10€ above the floor smell like ATM cash
		if t.Type == core.Expense && t.Amount.Cents%1000 == 0 && t.Amount.Cents > c.Config.RoundMinAmount.Cents {
			count++
		}
	}
	if count <= c.Config.RoundMinCount {
		return Insight{}, false
	}
	return Insight{
		Type:    Neutral,
		Title:   "🏧 Efectivo Detectado",
		Text:    fmt.Sprintf("Muchos gastos redondos (%d).", count),
		Details: "¿Son retiradas de cajero? Recuerda desglosar en qué gastaste el efectivo.",
		Score:   c.Config.RoundScore,
	}, true
}

func duplicates(c *Context) (Insight, bool) {
	type key struct {
		cents    int64
		category string
		date     string
	}
	seen := make(map[key]string)
	found := false
	for _, t := range c.Transactions {
		k := key{t.Amount.Cents, t.Category, t.Date.Key()}
		if prev, ok := seen[k]; ok && prev != t.ID {
			found = true
			break
		}
		seen[k] = t.ID
	}
	if !found {
		return Insight{}, false
	}
	return Insight{
		Type:    Warning,
		Title:   "👯 Posibles Duplicados",
		Text:    "Detectados movimientos idénticos el mismo día.",
		Details: "Revisa si has metido algún gasto dos veces.",
		Score:   c.Config.DuplicateScore,
	}, true
}

func bankFees(c *Context) (Insight, bool) {
	fees := c.SpendMatching(feeKeywords)
	if fees.Cents <= 0 {
		return Insight{}, false
	}
	return Insight{
		Type:    Warning,
		Title:   "🏦 Comisiones Bancarias",
		Text:    fmt.Sprintf("Has pagado %s en comisiones.", eur0(fees)),
		Details: "Revisa las condiciones de tu banco o cámbiate.",
		Score:   c.Config.FeesScore,
	}, true
}

func refunds(c *Context) (Insight, bool) {
	found := false
	for _, t := range c.Transactions {
		if t.Type == core.Income && matchAny(t.Description, []string{"devoluci"}) {
			found = true
			break
		}
	}
	if !found {
		return Insight{}, false
	}
	return Insight{
		Type:    Success,
		Title:   "↩️ Devolución Recibida",
		Text:    "Has recuperado dinero de una devolución.",
		Details: "Asegúrate de que cuadre con el gasto original.",
		Score:   c.Config.RefundScore,
	}, true
}
