package insights

import (
	"fmt"

	"finanzas/internal/core"
)

var (
	taxKeywords    = []string{"hacienda", "aeat", "impuesto", "ibi", "ivtm"}
	healthKeywords = []string{"farmacia", "medico", "dentista", "salud", "gimnasio", "gym", "deporte"}
	petKeywords    = []string{"veterinario", "mascota", "perro", "gato", "pienso", "kiwoko", "zooplus"}
	eduKeywords    = []string{"curso", "udemy", "platzi", "libro", "formacion", "universidad", "master"}
)

// levelTiers maps minimum savings rate (percent, exclusive) to rank.
var levelTiers = []struct {
	rate float64
	name string
}{
	{70, "Leyenda"},
	{50, "Maestro"},
	{25, "Ahorrador"},
	{10, "Aprendiz"},
}

func behaviorRules() []Rule {
	return []Rule{
		{ID: "saver-level", Evaluate: saverLevel},
		{ID: "crystal-ball", Evaluate: crystalBall},
		{ID: "shopping-therapy", Evaluate: shoppingTherapy},
		{ID: "pocket-gap", Evaluate: pocketGap},
		{ID: "description-quality", Evaluate: descriptionQuality},
		{ID: "income-diversity", Evaluate: incomeDiversity},
		{ID: "taxes", Evaluate: taxes},
		{ID: "health-spend", Evaluate: healthSpend},
		{ID: "pet-spend", Evaluate: petSpend},
		{ID: "education-spend", Evaluate: educationSpend},
	}
}

func saverLevel(c *Context) (Insight, bool) {
	if c.TotalIncome.Cents <= 0 {
		return Insight{}, false
	}
	rate := c.SavingsRate()
	level := "Novato"
	for _, tier := range levelTiers {
		if rate > tier.rate {
			level = tier.name
			break
		}
	}
	return Insight{
		Type:    Success,
		Title:   fmt.Sprintf("🏅 Nivel: %s", level),
		Text:    fmt.Sprintf("Tu tasa de ahorro del %.0f%% te otorga el rango de %s.", rate, level),
		Details: "¡Sigue subiendo de nivel!",
		Score:   c.Config.LevelScore,
	}, true
}

func crystalBall(c *Context) (Insight, bool) {
	saved := c.TotalIncome.Sub(c.TotalSpent)
	if saved.Cents <= 0 {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "🔮 Bola de Cristal",
		Text:    fmt.Sprintf("A este ritmo, ahorrarás %s en un año.", eur0(saved.MulInt(12))),
		Details: "¿Qué harías con ese dinero?",
		Score:   c.Config.CrystalBallScore,
	}, true
}

func shoppingTherapy(c *Context) (Insight, bool) {
	whims := c.CatTotals["Caprichos"]
	if whims.Cents <= 0 || whims.Euros() <= c.TotalSpent.Euros()*c.Config.TherapyShare {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "🛍️ Terapia de Compras",
		Text:    "Alto gasto en caprichos detectado.",
		Details: "¿Estás comprando por necesidad o por emoción?",
		Score:   c.Config.TherapyScore,
	}, true
}

// pocketGap checks whether the declared account balances cover the
// configured monthly pocket contributions.
func pocketGap(c *Context) (Insight, bool) {
	gap := c.Profile.PocketTotal().Sub(core.SumAccounts(c.Profile.Accounts))
	if gap.Cents <= 0 {
		return Insight{}, false
	}
	return Insight{
		Type:    Action,
		Title:   "💸 Transferencia Recomendada",
		Text:    "Mueve dinero a tus cuentas para cubrir los sobres del mes.",
		Details: fmt.Sprintf("Faltan %s para cubrir los sobres.", eur0(gap)),
		Score:   c.Config.PocketGapScore,
	}, true
}

func descriptionQuality(c *Context) (Insight, bool) {
	count := 0
	for _, t := range c.Transactions {
		if t.Description == "" || t.Description == core.DefaultExpenseDescription || t.Description == core.DefaultIncomeDescription {
			count++
		}
	}
	if count <= c.Config.BadDescriptionMin {
		return Insight{}, false
	}
	return Insight{
		Type:    Neutral,
		Title:   "📝 Mejora tus Datos",
		Text:    fmt.Sprintf("Tienes %d gastos sin descripción clara.", count),
		Details: "Añade detalles para afinar la detección de patrones.",
		Score:   c.Config.BadDescriptionScore,
	}, true
}

func incomeDiversity(c *Context) (Insight, bool) {
	sources := make(map[string]bool)
	for _, t := range c.Transactions {
		if t.Type == core.Income {
			sources[t.Category] = true
		}
	}
	if len(sources) <= 1 {
		return Insight{}, false
	}
	return Insight{
		Type:    Success,
		Title:   "🌱 Ingresos Diversificados",
		Text:    "Tienes más de una fuente de ingresos.",
		Details: "La diversificación reduce el riesgo financiero.",
		Score:   c.Config.IncomeSourcesScore,
	}, true
}

func taxes(c *Context) (Insight, bool) {
	spend := c.SpendMatching(taxKeywords)
	if spend.Cents <= 0 {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "🏛️ Deber Ciudadano",
		Text:    fmt.Sprintf("Has pagado %s en impuestos.", eur0(spend)),
		Details: "Importante tenerlo previsto en el fondo de emergencia.",
		Score:   c.Config.TaxScore,
	}, true
}

func healthSpend(c *Context) (Insight, bool) {
	spend := c.SpendMatching(healthKeywords)
	if spend.Cents > 0 {
		return Insight{
			Type:    Success,
			Title:   "❤️ Inversión en Salud",
			Text:    fmt.Sprintf("Has dedicado %s a cuidarte.", eur0(spend)),
			Details: "La mejor inversión es tu propio cuerpo.",
			Score:   c.Config.HealthSpendScore,
		}, true
	}
	if c.TotalSpent.Cents > c.Config.NoHealthSpendFloor.Cents {
		return Insight{
			Type:    Info,
			Title:   "🏃‍♂️ ¿Y la Salud?",
			Text:    "No detecto gastos en salud o deporte.",
			Details: "Recuerda que prevenir es más barato que curar.",
			Score:   c.Config.NoHealthScore,
		}, true
	}
	return Insight{}, false
}

func petSpend(c *Context) (Insight, bool) {
	spend := c.SpendMatching(petKeywords)
	if spend.Cents <= 0 {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "🐾 Gasto Peludo",
		Text:    fmt.Sprintf("Tu mascota ha costado %s este mes.", eur0(spend)),
		Details: "Amor incondicional (con coste de mantenimiento).",
		Score:   c.Config.PetScore,
	}, true
}

func educationSpend(c *Context) (Insight, bool) {
	spend := c.SpendMatching(eduKeywords)
	if spend.Cents <= 0 {
		return Insight{}, false
	}
	return Insight{
		Type:    Success,
		Title:   "🧠 Cerebro en Forma",
		Text:    fmt.Sprintf("Has invertido %s en aprender.", eur0(spend)),
		Details: "El conocimiento paga el mejor interés.",
		Score:   c.Config.EducationScore,
	}, true
}
