// Package insights evaluates heuristic rules over one month of
// transactions and produces a ranked list of observations. Every rule
// is a pure function of the shared Context; thresholds and score
// weights live in Config so they can be tuned without touching rules.
package insights

import (
	"fmt"
	"sort"
	"time"

	"finanzas/internal/core"
)

// Type classifies an insight for presentation.
type Type string

const (
	Warning Type = "warning"
	Success Type = "success"
	Info    Type = "info"
	Action  Type = "action"
	Neutral Type = "neutral"
)

// Insight is one scored observation about the month under view.
type Insight struct {
	Type    Type   `json:"type"`
	Title   string `json:"title"`
	Text    string `json:"text"`
	Details string `json:"details,omitempty"`
	Score   int    `json:"score"`
}

// Rule produces zero or one insight for a context.
type Rule struct {
	ID       string
	Evaluate func(*Context) (Insight, bool)
}

// DefaultRules returns the full registry in evaluation order. Order
// matters only as the tie-break of the final stable sort.
func DefaultRules() []Rule {
	var rules []Rule
	rules = append(rules, timingRules()...)
	rules = append(rules, categoryRules()...)
	rules = append(rules, healthRules()...)
	rules = append(rules, anomalyRules()...)
	rules = append(rules, behaviorRules()...)
	rules = append(rules, statsRules()...)
	return rules
}

// Evaluate runs every rule over the given month and returns the
// produced insights sorted by score descending. Equal scores keep
// rule-registry order.
func Evaluate(log core.TransactionLog, profile core.Profile, year, month int, cushion core.Money, now time.Time, cfg Config) []Insight {
	ctx := NewContext(log, profile, year, month, cushion, now, cfg)
	var out []Insight
	for _, r := range DefaultRules() {
		if ins, ok := r.Evaluate(ctx); ok {
			out = append(out, ins)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func eur0(m core.Money) string { return fmt.Sprintf("%.0f€", m.Euros()) }
func eur1(m core.Money) string { return fmt.Sprintf("%.1f€", m.Euros()) }
