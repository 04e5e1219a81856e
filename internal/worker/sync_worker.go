// Package worker mirrors transaction changes into the spreadsheet
// ledger, driven by AMQP sync messages.
package worker

import (
	"context"
	"fmt"

	"finanzas/internal/amqp"
	"finanzas/internal/log"
	"finanzas/internal/sheets"
	"finanzas/internal/storage"
)

// SyncWorker applies sync messages: it fetches the current row from the
// store and appends or clears the matching ledger row. The store is the
// source of truth, so a message that arrives after further edits simply
// mirrors the newest state.
type SyncWorker struct {
	store   storage.Store
	writer  sheets.LedgerWriter
	deleter sheets.LedgerDeleter
	logger  *log.Logger
}

func NewSyncWorker(store storage.Store, writer sheets.LedgerWriter, deleter sheets.LedgerDeleter, logger *log.Logger) *SyncWorker {
	return &SyncWorker{
		store:   store,
		writer:  writer,
		deleter: deleter,
		logger:  logger.WithComponent(log.ComponentWorker),
	}
}

// Handle dispatches one sync message.
func (w *SyncWorker) Handle(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	switch msg.Action {
	case amqp.ActionSync:
		return w.handleSync(ctx, msg)
	case amqp.ActionDelete:
		return w.handleDelete(ctx, msg)
	default:
		return fmt.Errorf("unknown action %q", msg.Action)
	}
}

func (w *SyncWorker) handleSync(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	txLog, err := w.store.LoadTransactions(ctx, msg.UserID)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	tx, ok := txLog.Find(msg.TransactionID)
	if !ok {
		// Deleted before we got here; the delete message will follow.
		w.logger.WarnContext(ctx, "Transaction gone before sync, skipping",
			log.FieldTransactionID, msg.TransactionID)
		return nil
	}

	// Drop a possible stale row first so edits don't duplicate.
	if w.deleter != nil {
		if err := w.deleter.Delete(ctx, tx.ID); err != nil {
			return fmt.Errorf("clear stale ledger row: %w", err)
		}
	}

	ref, err := w.writer.Append(ctx, tx)
	if err != nil {
		return fmt.Errorf("append to ledger: %w", err)
	}

	w.logger.InfoContext(ctx, "Transaction mirrored",
		log.FieldTransactionID, tx.ID,
		log.FieldSheetsRef, ref,
		log.FieldAmountCents, tx.Amount.Cents)
	return nil
}

func (w *SyncWorker) handleDelete(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	if w.deleter == nil {
		w.logger.WarnContext(ctx, "No ledger deleter configured, skipping",
			log.FieldTransactionID, msg.TransactionID)
		return nil
	}

	if err := w.deleter.Delete(ctx, msg.TransactionID); err != nil {
		return fmt.Errorf("delete ledger row: %w", err)
	}

	w.logger.InfoContext(ctx, "Ledger row removed",
		log.FieldTransactionID, msg.TransactionID)
	return nil
}
