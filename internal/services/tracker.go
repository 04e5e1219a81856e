// Package services orchestrates domain operations across the store and
// the message broker.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"finanzas/internal/core"
	"finanzas/internal/log"
	"finanzas/internal/storage"
)

// Publisher is the async side of a mutation. Nil disables publishing.
type Publisher interface {
	PublishTransactionSync(ctx context.Context, userID, transactionID string) error
	PublishTransactionDelete(ctx context.Context, userID, transactionID string) error
}

// Tracker owns the in-memory snapshot of one user's log and profile.
// Mutations apply to the snapshot first, then persist, then publish a
// sync message. Publish failures are logged and never rolled back; the
// local write is the source of truth.
type Tracker struct {
	mu        sync.RWMutex
	store     storage.Store
	publisher Publisher
	logger    *log.Logger
	userID    string

	txLog   core.TransactionLog
	profile core.Profile
	version uint64
}

func NewTracker(ctx context.Context, store storage.Store, publisher Publisher, logger *log.Logger, userID string) (*Tracker, error) {
	txLog, err := store.LoadTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	profile, err := store.LoadProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		p := core.DefaultProfile()
		profile = &p
	}

	return &Tracker{
		store:     store,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentTracker),
		userID:    userID,
		txLog:     txLog,
		profile:   *profile,
	}, nil
}

// TransactionInput is what a caller supplies for a new transaction.
// Identity fields are filled in here.
type TransactionInput struct {
	Date        core.Date
	Amount      core.Money
	Description string
	Type        core.TxType
	Category    string
}

// AddTransaction validates, stamps identity and records a transaction.
func (t *Tracker) AddTransaction(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	tx := core.Transaction{
		ID:          uuid.NewString(),
		Date:        in.Date,
		Amount:      in.Amount,
		Description: in.Description,
		Type:        in.Type,
		Category:    in.Category,
		CreatedAt:   time.Now().UTC(),
		UserID:      t.userID,
	}.Normalize()
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	t.mu.Lock()
	t.txLog.Add(tx)
	t.version++
	t.mu.Unlock()

	if err := t.store.SaveTransaction(ctx, t.userID, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("persist transaction: %w", err)
	}
	t.publishSync(ctx, tx.ID)

	log.NewStructuredLogger(t.logger).
		LogTransactionSaved(ctx, tx.ID, tx.Amount.Cents, string(tx.Type), tx.Category)
	return tx, nil
}

// UpdateTransaction replaces an existing transaction, moving it across
// days when the date changed. Identity fields of the stored row win.
func (t *Tracker) UpdateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	t.mu.Lock()
	current, ok := t.txLog.Find(tx.ID)
	if !ok {
		t.mu.Unlock()
		return core.Transaction{}, core.ErrNotFound
	}
	tx.CreatedAt = current.CreatedAt
	tx.UserID = current.UserID
	tx = tx.Normalize()
	if err := tx.Validate(); err != nil {
		t.mu.Unlock()
		return core.Transaction{}, err
	}
	if err := t.txLog.Replace(tx); err != nil {
		t.mu.Unlock()
		return core.Transaction{}, err
	}
	t.version++
	t.mu.Unlock()

	if err := t.store.SaveTransaction(ctx, t.userID, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("persist transaction: %w", err)
	}
	t.publishSync(ctx, tx.ID)
	return tx, nil
}

// DeleteTransaction removes a transaction from the snapshot and store.
func (t *Tracker) DeleteTransaction(ctx context.Context, id string) error {
	t.mu.Lock()
	if err := t.txLog.Remove(id); err != nil {
		t.mu.Unlock()
		return err
	}
	t.version++
	t.mu.Unlock()

	if err := t.store.DeleteTransaction(ctx, t.userID, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	t.publishDelete(ctx, id)

	t.logger.InfoContext(ctx, "Transaction deleted", log.FieldTransactionID, id)
	return nil
}

// Profile returns a copy of the current profile.
func (t *Tracker) Profile() core.Profile {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.profile.Clone()
}

// SaveProfile replaces the profile wholesale. Last write wins.
func (t *Tracker) SaveProfile(ctx context.Context, p core.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	t.profile = p.Clone()
	t.version++
	t.mu.Unlock()

	if err := t.store.SaveProfile(ctx, t.userID, p); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}
	return nil
}

// CreateCheckpoint reconciles the declared real balance against the
// computed one at target, recording at most one adjustment transaction.
// A non-nil accounts map overrides declared with its sum and is saved
// to the profile either way.
func (t *Tracker) CreateCheckpoint(ctx context.Context, target core.Date, declared core.Money, accounts map[string]core.Money) (core.CheckpointResult, error) {
	if accounts != nil {
		declared = core.SumAccounts(accounts)
	}

	t.mu.Lock()
	result := core.Reconcile(t.txLog, t.profile, target, declared)
	var adjusted *core.Transaction
	if result.Adjustment != nil {
		tx := *result.Adjustment
		tx.ID = uuid.NewString()
		tx.CreatedAt = time.Now().UTC()
		tx.UserID = t.userID
		t.txLog.Add(tx)
		result.Adjustment = &tx
		adjusted = &tx
	}
	if accounts != nil {
		t.profile.Accounts = accounts
	}
	t.version++
	profile := t.profile.Clone()
	t.mu.Unlock()

	if adjusted != nil {
		if err := t.store.SaveTransaction(ctx, t.userID, *adjusted); err != nil {
			return result, fmt.Errorf("persist adjustment: %w", err)
		}
		t.publishSync(ctx, adjusted.ID)
	}
	if accounts != nil {
		if err := t.store.SaveProfile(ctx, t.userID, profile); err != nil {
			return result, fmt.Errorf("persist profile: %w", err)
		}
	}

	t.logger.InfoContext(ctx, "Checkpoint reconciled",
		"declared_cents", result.Declared.Cents,
		"calculated_cents", result.Calculated.Cents,
		"difference_cents", result.Difference.Cents)
	return result, nil
}

// FundAdd deposits into or withdraws from a fund.
func (t *Tracker) FundAdd(ctx context.Context, fund string, delta core.Money, impactMain bool, day core.Date) (core.FundChange, error) {
	if strings.TrimSpace(fund) == "" {
		return core.FundChange{}, fmt.Errorf("empty fund name")
	}
	return t.applyFundChange(ctx, func(p core.Profile) core.FundChange {
		return core.ApplyFundDelta(p, fund, delta, impactMain, day)
	})
}

// FundSet moves a fund to an absolute balance.
func (t *Tracker) FundSet(ctx context.Context, fund string, target core.Money, impactMain bool, day core.Date) (core.FundChange, error) {
	if strings.TrimSpace(fund) == "" {
		return core.FundChange{}, fmt.Errorf("empty fund name")
	}
	return t.applyFundChange(ctx, func(p core.Profile) core.FundChange {
		return core.SetFundBalance(p, fund, target, impactMain, day)
	})
}

func (t *Tracker) applyFundChange(ctx context.Context, op func(core.Profile) core.FundChange) (core.FundChange, error) {
	t.mu.Lock()
	change := op(t.profile)
	if t.profile.FundBalances == nil {
		t.profile.FundBalances = make(map[string]core.Money)
	}
	t.profile.FundBalances[change.Fund] = change.NewBalance
	var emitted *core.Transaction
	if change.Emitted != nil {
		tx := *change.Emitted
		tx.ID = uuid.NewString()
		tx.CreatedAt = time.Now().UTC()
		tx.UserID = t.userID
		t.txLog.Add(tx)
		change.Emitted = &tx
		emitted = &tx
	}
	t.version++
	profile := t.profile.Clone()
	t.mu.Unlock()

	if err := t.store.SaveProfile(ctx, t.userID, profile); err != nil {
		return change, fmt.Errorf("persist profile: %w", err)
	}
	if emitted != nil {
		if err := t.store.SaveTransaction(ctx, t.userID, *emitted); err != nil {
			return change, fmt.Errorf("persist fund transaction: %w", err)
		}
		t.publishSync(ctx, emitted.ID)
	}

	t.logger.InfoContext(ctx, "Fund balance changed",
		log.FieldFund, change.Fund,
		"old_cents", change.OldBalance.Cents,
		"new_cents", change.NewBalance.Cents)
	return change, nil
}

// Distribute runs the monthly pocket distribution for today. Returns
// ok=false when the month has already been distributed or no pocket
// has a positive amount; a month never runs twice.
func (t *Tracker) Distribute(ctx context.Context, today core.Date) (core.DistributionResult, bool, error) {
	t.mu.Lock()
	if t.profile.LastDistributionMonth == today.MonthKey() {
		t.mu.Unlock()
		return core.DistributionResult{}, false, nil
	}
	result, ok := core.Distribute(t.profile, today)
	if !ok {
		t.mu.Unlock()
		return core.DistributionResult{}, false, nil
	}
	for i := range result.Transactions {
		result.Transactions[i].ID = uuid.NewString()
		result.Transactions[i].CreatedAt = time.Now().UTC()
		result.Transactions[i].UserID = t.userID
		t.txLog.Add(result.Transactions[i])
	}
	if t.profile.FundBalances == nil {
		t.profile.FundBalances = make(map[string]core.Money)
	}
	for fund, balance := range result.NewBalances {
		t.profile.FundBalances[fund] = balance
	}
	t.profile.LastDistributionMonth = result.Month
	t.version++
	profile := t.profile.Clone()
	t.mu.Unlock()

	if err := t.store.SaveProfile(ctx, t.userID, profile); err != nil {
		return result, true, fmt.Errorf("persist profile: %w", err)
	}
	for _, tx := range result.Transactions {
		if err := t.store.SaveTransaction(ctx, t.userID, tx); err != nil {
			return result, true, fmt.Errorf("persist distribution transaction: %w", err)
		}
		t.publishSync(ctx, tx.ID)
	}

	t.logger.InfoContext(ctx, "Monthly distribution applied",
		log.FieldMonth, result.Month,
		"transfers", len(result.Transactions))
	return result, true, nil
}

// DistributionPending reports whether the user should be prompted to
// distribute this month.
func (t *Tracker) DistributionPending(today core.Date) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return core.DistributionPending(t.profile, today)
}

// Log returns a copy of the full transaction log.
func (t *Tracker) Log() core.TransactionLog {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.txLog.Clone()
}

// ReplaceAll swaps the entire snapshot, used by imports.
func (t *Tracker) ReplaceAll(ctx context.Context, txLog core.TransactionLog, profile core.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	t.txLog = txLog.Clone()
	t.profile = profile.Clone()
	t.version++
	t.mu.Unlock()

	if err := t.store.SaveAllTransactions(ctx, t.userID, txLog); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	if err := t.store.SaveProfile(ctx, t.userID, profile); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}

	t.logger.InfoContext(ctx, "Snapshot replaced from import",
		"transactions", len(txLog.Flatten()))
	return nil
}

// Version increments on every mutation; derived-view caches key on it.
func (t *Tracker) Version() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.version
}

// UserID returns the owning user of this snapshot.
func (t *Tracker) UserID() string { return t.userID }

func (t *Tracker) publishSync(ctx context.Context, id string) {
	if t.publisher == nil {
		return
	}
	if err := t.publisher.PublishTransactionSync(ctx, t.userID, id); err != nil {
		t.logger.ErrorContext(ctx, "Failed to publish sync message",
			log.FieldTransactionID, id, "error", err)
	}
}

func (t *Tracker) publishDelete(ctx context.Context, id string) {
	if t.publisher == nil {
		return
	}
	if err := t.publisher.PublishTransactionDelete(ctx, t.userID, id); err != nil {
		t.logger.ErrorContext(ctx, "Failed to publish delete message",
			log.FieldTransactionID, id, "error", err)
	}
}
