package sheets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"finanzas/internal/core"
)

// Plan sheet column headers, as written in the spreadsheet.
const (
	planMonthHeader    = "Mes"
	planSalaryHeader   = "Ingreso (€)"
	planSavingsHeader  = "Ahorro (€)"
	planFlexibleHeader = "Dinero Cartera Flexible"
	planTravelHeader   = "Dinero para viajes"
)

// headerScanRows bounds the search for the header row.
const headerScanRows = 20

var (
	ErrPlanHeaderNotFound = errors.New("plan header row with 'Mes' not found")
	ErrPlanMonthNotFound  = errors.New("plan row for requested month not found")
)

// PlanPatch is the profile subset extracted from one plan row. Budget
// keys follow the default expense categories.
type PlanPatch struct {
	Month         string                `json:"month"`
	MonthlySalary core.Money            `json:"monthlySalary"`
	SavingsTarget core.Money            `json:"savingsTarget"`
	InitialBase   core.Money            `json:"initialBase"`
	Budgets       map[string]core.Money `json:"budgets"`
}

// ApplyTo overlays the patch on a profile, leaving unrelated fields
// untouched. Budget categories missing from the sheet stay as they are.
func (p PlanPatch) ApplyTo(profile core.Profile) core.Profile {
	out := profile.Clone()
	out.MonthlySalary = p.MonthlySalary
	out.SavingsTarget = p.SavingsTarget
	out.InitialBase = p.InitialBase
	if out.Budgets == nil {
		out.Budgets = make(map[string]core.Money, len(p.Budgets))
	}
	for cat, limit := range p.Budgets {
		out.Budgets[cat] = limit
	}
	return out
}

// ParsePlan locates the header row containing "Mes" within the first
// twenty rows, then the data row whose Mes cell equals
// "<EnglishMonth> <Year>" case-insensitively, and extracts the numeric
// columns. Missing columns read as zero; decimal commas are accepted.
func ParsePlan(values [][]interface{}, year, month int) (PlanPatch, error) {
	if month < 1 || month > 12 {
		return PlanPatch{}, fmt.Errorf("invalid month: %d", month)
	}

	headerIdx := -1
	scan := len(values)
	if scan > headerScanRows {
		scan = headerScanRows
	}
	for i := 0; i < scan; i++ {
		if indexOf(toStrings(values[i]), planMonthHeader) >= 0 {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return PlanPatch{}, ErrPlanHeaderNotFound
	}

	header := toStrings(values[headerIdx])
	monthCol := indexOf(header, planMonthHeader)
	wanted := monthLabel(year, month)

	var row []string
	for i := headerIdx + 1; i < len(values); i++ {
		cols := toStrings(values[i])
		if monthCol >= len(cols) || cols[monthCol] == "" {
			continue
		}
		if strings.EqualFold(cols[monthCol], wanted) {
			row = cols
			break
		}
	}
	if row == nil {
		return PlanPatch{}, fmt.Errorf("%w: %s", ErrPlanMonthNotFound, wanted)
	}

	cell := func(name string) core.Money {
		cents, _ := parseEurosToCents(safeGet(row, indexOf(header, name)))
		return core.Money{Cents: cents}
	}

	patch := PlanPatch{
		Month:         core.MonthKey(year, month),
		MonthlySalary: cell(planSalaryHeader),
		SavingsTarget: cell(planSavingsHeader),
		InitialBase:   cell(planFlexibleHeader).Add(cell(planTravelHeader)),
		Budgets:       make(map[string]core.Money, len(core.DefaultExpenseCategories)),
	}
	for _, cat := range core.DefaultExpenseCategories {
		patch.Budgets[cat] = cell(cat)
	}
	return patch, nil
}

// monthLabel renders the plan sheet's month key, e.g. "March 2024".
func monthLabel(year, month int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(target)) {
			return i
		}
	}
	return -1
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}

func parseEurosToCents(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return core.CentsFromFloat(f), true
}
