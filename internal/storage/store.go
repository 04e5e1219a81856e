// Package storage persists the transaction log and financial profile.
// The SQLite repository is the production backend; the memory store
// backs tests and ephemeral runs.
package storage

import (
	"context"

	"finanzas/internal/core"
)

// Store is the persistence port used by the tracker service.
type Store interface {
	// LoadTransactions returns the full log for a user, empty when the
	// user has no rows.
	LoadTransactions(ctx context.Context, userID string) (core.TransactionLog, error)
	SaveTransaction(ctx context.Context, userID string, tx core.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id string) error
	// SaveAllTransactions replaces the stored log wholesale. Used by
	// imports.
	SaveAllTransactions(ctx context.Context, userID string, log core.TransactionLog) error

	// LoadProfile returns nil without error when the user has never
	// saved a profile.
	LoadProfile(ctx context.Context, userID string) (*core.Profile, error)
	SaveProfile(ctx context.Context, userID string, p core.Profile) error

	Close() error
}
