package core

// CheckpointDescription is the description given to adjustment
// transactions; it contains CheckpointMarker so the UI can flag them.
const CheckpointDescription = "Ajuste de Balance (Checkpoint)"

// CheckpointResult is the outcome of reconciling a declared balance
// against the computed one. Adjustment is nil when they already agree
// to the cent; otherwise it is the single transaction that closes the
// gap (identity fields filled in by the caller).
type CheckpointResult struct {
	Calculated Money        `json:"calculated"`
	Declared   Money        `json:"declared"`
	Difference Money        `json:"difference"`
	Adjustment *Transaction `json:"adjustment,omitempty"`
}

// SumAccounts folds per-account balances into the declared total.
func SumAccounts(accounts map[string]Money) Money {
	var total Money
	for _, v := range accounts {
		total = total.Add(v)
	}
	return total
}

// Reconcile compares the declared actual balance at target against the
// computed cushion and, when they differ, produces one adjustment
// transaction dated target: income when the real balance is higher,
// expense when it is lower. Running it again after applying the
// adjustment yields a zero difference and no second transaction.
func Reconcile(log TransactionLog, profile Profile, target Date, declared Money) CheckpointResult {
	calculated := BalanceAt(log, profile, target)
	diff := declared.Sub(calculated)

	result := CheckpointResult{
		Calculated: calculated,
		Declared:   declared,
		Difference: diff,
	}
	if diff.IsZero() {
		return result
	}

	txType := Expense
	if diff.Cents > 0 {
		txType = Income
	}
	result.Adjustment = &Transaction{
		Date:        target,
		Amount:      diff.Abs(),
		Description: CheckpointDescription,
		Type:        txType,
		Category:    CategoryOther,
	}
	return result
}
