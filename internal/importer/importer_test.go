package importer

import (
	"strings"
	"testing"
	"time"

	"finanzas/internal/core"
)

func sampleLog() core.TransactionLog {
	d, _ := core.ParseDate("2024-03-05")
	l := core.TransactionLog{}
	l.Add(core.Transaction{
		ID: "a", Date: d, Amount: core.Money{Cents: 1500},
		Description: "café", Type: core.Expense, Category: "Comidas",
		CreatedAt: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), UserID: "u1",
	})
	return l
}

func TestExportImportRoundTrip(t *testing.T) {
	profile := core.DefaultProfile()
	profile.MonthlySalary = core.Money{Cents: 200000}

	data, err := Export(sampleLog(), profile)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	txLog, got, err := Import(data, "u1")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if got == nil || got.MonthlySalary.Cents != 200000 {
		t.Fatalf("profile lost: %+v", got)
	}
	tx, ok := txLog.Find("a")
	if !ok || tx.Amount.Cents != 1500 || tx.Description != "café" {
		t.Fatalf("transaction lost: %+v", tx)
	}
}

func TestImportBackfillsIdentity(t *testing.T) {
	doc := `{
	  "expenses": {
	    "2024-03-05": [
	      {"date": "2024-03-05", "amount": 12.5, "type": "expense", "category": ""}
	    ]
	  },
	  "financialProfile": {"payday": 5, "currency": "EUR"}
	}`

	txLog, profile, err := Import([]byte(doc), "u9")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	flat := txLog.Flatten()
	if len(flat) != 1 {
		t.Fatalf("got %d transactions", len(flat))
	}
	tx := flat[0]
	if tx.ID == "" {
		t.Fatal("missing id not backfilled")
	}
	if tx.UserID != "u9" {
		t.Fatalf("userId = %q", tx.UserID)
	}
	if tx.Category != core.CategoryOther || tx.Description != core.DefaultExpenseDescription {
		t.Fatalf("not normalized: %+v", tx)
	}
	if profile.Payday != 5 {
		t.Fatalf("profile payday = %d", profile.Payday)
	}
}

func TestImportLegacyBareLog(t *testing.T) {
	doc := `{
	  "2024-03-05": [
	    {"id": "a", "date": "2024-03-05", "amount": 10, "type": "income", "category": "Nómina"}
	  ]
	}`

	txLog, profile, err := Import([]byte(doc), "u1")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if profile != nil {
		t.Fatalf("legacy import should keep the current profile, got %+v", profile)
	}
	if _, ok := txLog.Find("a"); !ok {
		t.Fatal("transaction lost")
	}
}

func TestImportRekeysMisfiledTransactions(t *testing.T) {
	// The date key says March 6th but the transaction is the 5th.
	doc := `{
	  "expenses": {
	    "2024-03-06": [
	      {"id": "a", "date": "2024-03-05", "amount": 10, "type": "expense"}
	    ]
	  },
	  "financialProfile": {"payday": 1}
	}`

	txLog, _, err := Import([]byte(doc), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(txLog["2024-03-05"]) != 1 || len(txLog["2024-03-06"]) != 0 {
		t.Fatalf("log not rekeyed by transaction date: %v", txLog)
	}
}

func TestImportRejectsMalformed(t *testing.T) {
	if _, _, err := Import([]byte("not json"), "u1"); err == nil {
		t.Fatal("expected parse error")
	}

	bad := `{
	  "expenses": {"2024-03-05": [{"id": "a", "date": "2024-03-05", "amount": -5, "type": "expense"}]},
	  "financialProfile": {"payday": 1}
	}`
	if _, _, err := Import([]byte(bad), "u1"); err == nil || !strings.Contains(err.Error(), "invalid transaction") {
		t.Fatalf("expected invalid transaction error, got %v", err)
	}
}

func TestImportDefaultsMissingPayday(t *testing.T) {
	doc := `{"expenses": {}, "financialProfile": {}}`
	_, profile, err := Import([]byte(doc), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if profile == nil || profile.Payday != 1 {
		t.Fatalf("payday not defaulted: %+v", profile)
	}
}
