// Package importer reads and writes the JSON backup document:
// { "expenses": <transaction log>, "financialProfile": <profile> }.
// Legacy backups holding a bare transaction log are accepted too.
package importer

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"finanzas/internal/core"
)

// Document is the backup file layout.
type Document struct {
	Expenses         core.TransactionLog `json:"expenses"`
	FinancialProfile core.Profile        `json:"financialProfile"`
}

// Export marshals the snapshot as an indented backup document.
func Export(txLog core.TransactionLog, profile core.Profile) ([]byte, error) {
	doc := Document{Expenses: txLog, FinancialProfile: profile}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	return data, nil
}

// Import parses a backup document. Transactions missing an id or owner
// are backfilled, descriptions and categories normalized, and the log
// is rebuilt so every entry sits under its own date key. The returned
// profile is nil for legacy bare-log backups, meaning keep the current
// one. Any validation failure rejects the whole document.
func Import(data []byte, userID string) (core.TransactionLog, *core.Profile, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse backup: %w", err)
	}

	var profile *core.Profile
	if doc.Expenses == nil {
		// Legacy layout: the whole document is the log.
		var bare core.TransactionLog
		if err := json.Unmarshal(data, &bare); err != nil {
			return nil, nil, fmt.Errorf("parse backup: %w", err)
		}
		doc.Expenses = bare
	} else {
		p := doc.FinancialProfile
		if p.Payday == 0 {
			p.Payday = 1
		}
		if err := p.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid profile: %w", err)
		}
		profile = &p
	}

	txLog := core.TransactionLog{}
	for key, day := range doc.Expenses {
		for _, tx := range day {
			if tx.ID == "" {
				tx.ID = uuid.NewString()
			}
			if tx.UserID == "" {
				tx.UserID = userID
			}
			tx = tx.Normalize()
			if err := tx.Validate(); err != nil {
				return nil, nil, fmt.Errorf("invalid transaction under %q: %w", key, err)
			}
			txLog.Add(tx)
		}
	}

	return txLog, profile, nil
}
