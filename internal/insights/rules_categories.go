package insights

import (
	"fmt"

	"finanzas/internal/core"
)

// Merchant keyword sets used by description scans. Matching is
// case-insensitive substring, so broad stems like "pull" are intended.
var (
	streamingKeywords = []string{"netflix", "hbo", "disney", "prime", "spotify", "youtube"}
	gamingKeywords    = []string{"steam", "playstation", "xbox", "nintendo", "game"}
	fashionKeywords   = []string{"zara", "h&m", "mango", "bershka", "pull", "stradivarius", "nike", "adidas"}
	fastFoodKeywords  = []string{"mcdonalds", "burger", "kfc", "pizza", "taco", "glovo", "uber eats", "just eat"}
	transportKeywords = []string{"gasolina", "repsol", "cepsa", "bp", "uber", "cabify", "taxi", "metro", "bus", "renfe"}
)

func categoryRules() []Rule {
	return []Rule{
		{ID: "other-black-hole", Evaluate: otherBlackHole},
		{ID: "wants-vs-needs", Evaluate: wantsVsNeeds},
		{ID: "subscription-fatigue", Evaluate: subscriptionFatigue},
		{ID: "food-inflation", Evaluate: foodInflation},
		{ID: "generous-gifts", Evaluate: generousGifts},
		{ID: "mono-category", Evaluate: monoCategory},
		{ID: "latte-count", Evaluate: latteCount},
		{ID: "streaming-war", Evaluate: streamingWar},
		{ID: "gaming-spend", Evaluate: gamingSpend},
		{ID: "fashion-spend", Evaluate: fashionSpend},
		{ID: "fast-food", Evaluate: fastFood},
		{ID: "transport-cost", Evaluate: transportCost},
	}
}

func otherBlackHole(c *Context) (Insight, bool) {
	if c.TotalSpent.Cents <= 0 {
		return Insight{}, false
	}
	other := c.CatTotals[core.CategoryOther]
	if other.Euros()/c.TotalSpent.Euros() <= c.Config.OtherShare {
		return Insight{}, false
	}
	return Insight{
		Type:    Warning,
		Title:   "🕳️ Agujero Negro",
		Text:    "El 30% de tus gastos están en \"Otros\".",
		Details: "Categoriza mejor para saber dónde se va el dinero.",
		Score:   c.Config.OtherScore,
	}, true
}

func wantsVsNeeds(c *Context) (Insight, bool) {
	if c.TotalSpent.Cents <= 0 {
		return Insight{}, false
	}
	wants := c.CatTotals["Caprichos"].Add(c.CatTotals["Planes"]).Add(c.CatTotals["Regalos"])
	needs := c.TotalSpent.Sub(wants)
	if wants.Cents <= needs.Cents {
		return Insight{}, false
	}
	return Insight{
		Type:    Warning,
		Title:   "⚖️ Desequilibrio Deseo/Necesidad",
		Text:    "Gastas más en deseos que en necesidades.",
		Details: "Revisa tus prioridades si quieres ahorrar más.",
		Score:   c.Config.WantsScore,
	}, true
}

func subscriptionCharges(c *Context) []core.Transaction {
	var subs []core.Transaction
	for _, t := range c.Transactions {
		if t.Category == "Suscripciones" {
			subs = append(subs, t)
		}
	}
	return subs
}

func subscriptionFatigue(c *Context) (Insight, bool) {
	subs := subscriptionCharges(c)
	if len(subs) <= c.Config.SubscriptionMinCharges {
		return Insight{}, false
	}
	return Insight{
		Type:    Warning,
		Title:   "📺 Fatiga de Suscripciones",
		Text:    fmt.Sprintf("Tienes %d cargos de suscripción distintos.", len(subs)),
		Details: "¿Realmente usas todos esos servicios?",
		Score:   c.Config.SubscriptionScore,
	}, true
}

func foodInflation(c *Context) (Insight, bool) {
	limit := c.Config.FoodBaseline.Euros() * c.Config.FoodMultiplier
	if c.CatTotals["Comidas"].Euros() <= limit {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "🍔 Amante del Buen Comer",
		Text:    "Tu gasto en comida es un 50% superior al promedio base.",
		Details: "Cocinar en casa podría ahorrarte mucho.",
		Score:   c.Config.FoodScore,
	}, true
}

func generousGifts(c *Context) (Insight, bool) {
	gifts := c.CatTotals["Regalos"]
	if gifts.Cents <= c.Config.GiftsThreshold.Cents {
		return Insight{}, false
	}
	return Insight{
		Type:    Success,
		Title:   "🎁 Espíritu Generoso",
		Text:    fmt.Sprintf("Has destinado %s a los demás.", eur0(gifts)),
		Details: "La generosidad es buena, pero vigila tu presupuesto.",
		Score:   c.Config.GiftsScore,
	}, true
}

func monoCategory(c *Context) (Insight, bool) {
	if len(c.CatTotals) >= c.Config.MinActiveCategories || c.TotalSpent.Cents <= c.Config.MonoSpendFloor.Cents {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "🎯 Gasto Monotemático",
		Text:    "Tus gastos se concentran en muy pocas categorías.",
		Details: "Patrón de consumo muy específico.",
		Score:   c.Config.MonoScore,
	}, true
}

func latteCount(c *Context) (Insight, bool) {
	count := 0
	for _, t := range c.Transactions {
		if t.Category == "Comidas" && t.Amount.Cents < c.Config.CoffeeMaxAmount.Cents {
			count++
		}
	}
	if count <= c.Config.CoffeeMinCount {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "☕ Factor Latte",
		Text:    fmt.Sprintf("Has hecho %d micro-gastos en comida/café.", count),
		Details: "Esos pequeños gastos suman mucho a fin de mes.",
		Score:   c.Config.CoffeeScore,
	}, true
}

func streamingWar(c *Context) (Insight, bool) {
	count := 0
	for _, t := range subscriptionCharges(c) {
		if matchAny(t.Description, streamingKeywords) {
			count++
		}
	}
	if count < c.Config.StreamingMinServices {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "🎬 Guerra de Streaming",
		Text:    fmt.Sprintf("Pagas %d plataformas de video/música.", count),
		Details: "¿Te da tiempo a verlo todo?",
		Score:   c.Config.StreamingScore,
	}, true
}

func gamingSpend(c *Context) (Insight, bool) {
	spend := c.SpendMatching(gamingKeywords)
	if spend.Cents <= c.Config.GamingThreshold.Cents {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "🎮 Gamer Detectado",
		Text:    fmt.Sprintf("Has invertido %s en videojuegos.", eur0(spend)),
		Details: "¡GG WP!",
		Score:   c.Config.GamingScore,
	}, true
}

func fashionSpend(c *Context) (Insight, bool) {
	spend := c.SpendMatching(fashionKeywords)
	if spend.Cents <= c.Config.FashionThreshold.Cents {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "👗 Fashionista",
		Text:    fmt.Sprintf("Has gastado %s en marcas de ropa conocidas.", eur0(spend)),
		Details: "¿Renovando armario?",
		Score:   c.Config.FashionScore,
	}, true
}

func fastFood(c *Context) (Insight, bool) {
	count := c.CountMatching(fastFoodKeywords)
	if count <= c.Config.FastFoodMinOrders {
		return Insight{}, false
	}
	return Insight{
		Type:    Warning,
		Title:   "🍟 Fast Food Lover",
		Text:    fmt.Sprintf("Has pedido comida rápida %d veces.", count),
		Details: "Tu salud y tu cartera te agradecerán cocinar más.",
		Score:   c.Config.FastFoodScore,
	}, true
}

func transportCost(c *Context) (Insight, bool) {
	spend := c.SpendMatching(transportKeywords)
	if spend.Cents <= c.Config.TransportThreshold.Cents {
		return Insight{}, false
	}
	return Insight{
		Type:    Info,
		Title:   "⛽ Alto Coste de Movilidad",
		Text:    fmt.Sprintf("Te has movido por valor de %s.", eur0(spend)),
		Details: "¿Podrías optimizar tus rutas?",
		Score:   c.Config.TransportScore,
	}, true
}
