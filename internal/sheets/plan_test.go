package sheets

import (
	"errors"
	"testing"

	"finanzas/internal/core"
)

func row(cells ...interface{}) []interface{} { return cells }

func planMatrix() [][]interface{} {
	return [][]interface{}{
		row("Plan Financiero 2024"),
		row(),
		row("Mes", "Ingreso (€)", "Ahorro (€)", "Comidas", "Planes", "Regalos",
			"Suscripciones", "Caprichos", "Otros", "Dinero Cartera Flexible", "Dinero para viajes"),
		row("February 2024", "2000", "400", "250", "100", "30", "45", "60", "80", "500", "200"),
		row("March 2024", "2100,50", "450", "300,25", "120", "40", "45,99", "70", "90", "600,10", "250"),
	}
}

func TestParsePlan(t *testing.T) {
	patch, err := ParsePlan(planMatrix(), 2024, 3)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if patch.Month != "2024-03" {
		t.Fatalf("month = %q", patch.Month)
	}
	if patch.MonthlySalary.Cents != 210050 {
		t.Fatalf("salary = %d, comma decimal mishandled", patch.MonthlySalary.Cents)
	}
	if patch.SavingsTarget.Cents != 45000 {
		t.Fatalf("savings = %d", patch.SavingsTarget.Cents)
	}
	// Flexible 600,10 + travel 250
	if patch.InitialBase.Cents != 85010 {
		t.Fatalf("initial base = %d", patch.InitialBase.Cents)
	}
	if patch.Budgets["Comidas"].Cents != 30025 {
		t.Fatalf("Comidas = %d", patch.Budgets["Comidas"].Cents)
	}
	if patch.Budgets["Suscripciones"].Cents != 4599 {
		t.Fatalf("Suscripciones = %d", patch.Budgets["Suscripciones"].Cents)
	}
}

func TestParsePlanMonthMatchIsCaseInsensitive(t *testing.T) {
	m := planMatrix()
	m[4][0] = "mARCH 2024"
	if _, err := ParsePlan(m, 2024, 3); err != nil {
		t.Fatalf("case-insensitive match failed: %v", err)
	}
}

func TestParsePlanMissingColumnReadsZero(t *testing.T) {
	m := [][]interface{}{
		row("Mes", "Ingreso (€)"),
		row("March 2024", "2000"),
	}
	patch, err := ParsePlan(m, 2024, 3)
	if err != nil {
		t.Fatal(err)
	}
	if patch.SavingsTarget.Cents != 0 || patch.Budgets["Comidas"].Cents != 0 {
		t.Fatalf("missing columns should read zero: %+v", patch)
	}
}

func TestParsePlanErrors(t *testing.T) {
	noHeader := [][]interface{}{row("nothing"), row("here")}
	if _, err := ParsePlan(noHeader, 2024, 3); !errors.Is(err, ErrPlanHeaderNotFound) {
		t.Fatalf("expected ErrPlanHeaderNotFound, got %v", err)
	}

	if _, err := ParsePlan(planMatrix(), 2024, 7); !errors.Is(err, ErrPlanMonthNotFound) {
		t.Fatalf("expected ErrPlanMonthNotFound, got %v", err)
	}

	if _, err := ParsePlan(planMatrix(), 2024, 13); err == nil {
		t.Fatal("expected invalid month error")
	}
}

func TestParsePlanHeaderBeyondScanWindow(t *testing.T) {
	var m [][]interface{}
	for i := 0; i < 25; i++ {
		m = append(m, row("filler"))
	}
	m = append(m, row("Mes", "Ingreso (€)"))
	m = append(m, row("March 2024", "2000"))
	if _, err := ParsePlan(m, 2024, 3); !errors.Is(err, ErrPlanHeaderNotFound) {
		t.Fatalf("header past row 20 should not be found, got %v", err)
	}
}

func TestApplyTo(t *testing.T) {
	profile := core.DefaultProfile()
	profile.Payday = 25
	profile.Budgets["Viajes especiales"] = core.Money{Cents: 12345}

	patch := PlanPatch{
		MonthlySalary: core.Money{Cents: 200000},
		SavingsTarget: core.Money{Cents: 40000},
		InitialBase:   core.Money{Cents: 80000},
		Budgets:       map[string]core.Money{"Comidas": {Cents: 30000}},
	}

	got := patch.ApplyTo(profile)
	if got.MonthlySalary.Cents != 200000 || got.InitialBase.Cents != 80000 {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.Payday != 25 {
		t.Fatal("unrelated field overwritten")
	}
	if got.Budgets["Viajes especiales"].Cents != 12345 {
		t.Fatal("unpatched budget category lost")
	}
	if got.Budgets["Comidas"].Cents != 30000 {
		t.Fatal("patched budget not applied")
	}
	if profile.MonthlySalary.Cents != 0 {
		t.Fatal("input profile mutated")
	}
}
