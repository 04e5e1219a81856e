// Package sheets defines the spreadsheet ports and the pure parsing of
// the financial plan sheet. The google subpackage is the outbound
// adapter.
package sheets

import (
	"context"

	"finanzas/internal/core"
)

// Ports for outbound adapters.
type (
	// LedgerWriter mirrors transactions into a ledger sheet.
	LedgerWriter interface {
		Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
	}

	// LedgerDeleter removes a mirrored transaction row.
	LedgerDeleter interface {
		Delete(ctx context.Context, transactionID string) error
	}

	// PlanReader extracts the profile patch for one month from the
	// plan sheet.
	PlanReader interface {
		ReadPlan(ctx context.Context, year, month int) (PlanPatch, error)
	}
)
