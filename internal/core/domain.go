package core

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// TxType tags the direction of a transaction. Transfers move money from
// the main balance into a fund: they subtract from the balance like an
// expense but are excluded from expense analytics, because they are
// internal movement, not consumption.
type TxType string

const (
	Income   TxType = "income"
	Expense  TxType = "expense"
	Transfer TxType = "transfer"
)

func (t TxType) Valid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

// Default categories matching the plan spreadsheet's column names.
const (
	CategoryOther  = "Otros"
	CategorySalary = "Nómina"
)

// DefaultExpenseCategories is the budgetable category set.
var DefaultExpenseCategories = []string{
	"Comidas", "Planes", "Regalos", "Suscripciones", "Caprichos", CategoryOther,
}

// Fallback descriptions when the user leaves the field empty.
const (
	DefaultExpenseDescription = "Gasto"
	DefaultIncomeDescription  = "Ingreso"
)

// CheckpointMarker tags balance adjustment transactions. Any transaction
// whose description contains it is treated as an adjustment everywhere.
const CheckpointMarker = "Checkpoint"

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrEmptyID       = errors.New("empty transaction id")
	ErrNotFound      = errors.New("transaction not found")
	ErrInvalidPayday = errors.New("payday must be between 1 and 31")
)

// Transaction is one dated income, expense or transfer. Amount is
// always positive; Type carries the sign.
type Transaction struct {
	ID          string    `json:"id"`
	Date        Date      `json:"date"`
	Amount      Money     `json:"amount"`
	Description string    `json:"description"`
	Type        TxType    `json:"type"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      string    `json:"userId"`
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

// Normalize fills the sentinel defaults for missing category and
// description instead of failing.
func (t Transaction) Normalize() Transaction {
	if strings.TrimSpace(t.Category) == "" {
		t.Category = CategoryOther
	}
	if strings.TrimSpace(t.Description) == "" {
		if t.Type == Income {
			t.Description = DefaultIncomeDescription
		} else {
			t.Description = DefaultExpenseDescription
		}
	}
	return t
}

// IsAdjustment reports whether this is a checkpoint adjustment.
func (t Transaction) IsAdjustment() bool {
	return strings.Contains(t.Description, CheckpointMarker)
}

// Signed returns the amount with its balance sign applied: positive for
// income, negative for expense and transfer.
func (t Transaction) Signed() Money {
	if t.Type == Income {
		return t.Amount
	}
	return Money{Cents: -t.Amount.Cents}
}

// TransactionLog maps a date key ("YYYY-MM-DD") to the transactions of
// that day. A key is either absent or maps to a non-empty slice; Remove
// prunes emptied days.
type TransactionLog map[string][]Transaction

// Flatten returns every transaction in the log. Order is by date key,
// then insertion order within a day, so consumers see a deterministic
// sequence.
func (l TransactionLog) Flatten() []Transaction {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []Transaction
	for _, k := range keys {
		out = append(out, l[k]...)
	}
	return out
}

// Add appends a transaction under its date key.
func (l TransactionLog) Add(tx Transaction) {
	key := tx.Date.Key()
	l[key] = append(l[key], tx)
}

// Replace swaps the stored transaction with the same ID for tx,
// moving it between date keys when the date changed.
func (l TransactionLog) Replace(tx Transaction) error {
	if err := l.Remove(tx.ID); err != nil {
		return err
	}
	l.Add(tx)
	return nil
}

// Remove deletes a transaction by ID and prunes its day when emptied.
func (l TransactionLog) Remove(id string) error {
	for key, day := range l {
		for i, tx := range day {
			if tx.ID != id {
				continue
			}
			day = append(day[:i:i], day[i+1:]...)
			if len(day) == 0 {
				delete(l, key)
			} else {
				l[key] = day
			}
			return nil
		}
	}
	return ErrNotFound
}

// Find returns the transaction with the given ID.
func (l TransactionLog) Find(id string) (Transaction, bool) {
	for _, day := range l {
		for _, tx := range day {
			if tx.ID == id {
				return tx, true
			}
		}
	}
	return Transaction{}, false
}

// Clone copies the log one level deep so optimistic mutations never
// alias the previous snapshot's slices.
func (l TransactionLog) Clone() TransactionLog {
	out := make(TransactionLog, len(l))
	for k, day := range l {
		cp := make([]Transaction, len(day))
		copy(cp, day)
		out[k] = cp
	}
	return out
}

// Profile is the single per-user financial configuration record.
// It is saved wholesale; last write wins.
type Profile struct {
	MonthlySalary Money  `json:"monthlySalary"`
	Payday        int    `json:"payday"`
	SavingsTarget Money  `json:"savingsTarget"`
	Currency      string `json:"currency"`
	InitialBase   Money  `json:"initialBase"`

	// Budgets holds the default monthly limit per category.
	// MonthlyBudgets overrides it for specific "YYYY-MM" months.
	Budgets        map[string]Money            `json:"budgets"`
	MonthlyBudgets map[string]map[string]Money `json:"monthlyBudgets,omitempty"`

	// Accounts are informational per-account balances declared at the
	// last checkpoint.
	Accounts map[string]Money `json:"accounts,omitempty"`

	// FundBalances holds the current balance per fund; Pockets holds
	// the configured monthly contribution per fund.
	FundBalances map[string]Money `json:"fundBalances,omitempty"`
	Pockets      map[string]Money `json:"pockets,omitempty"`

	// LastDistributionMonth ("YYYY-MM") makes the monthly distribution
	// idempotent per month.
	LastDistributionMonth string `json:"lastDistributionMonth,omitempty"`
}

// Well-known fund keys. The fund set is open; these are the defaults
// the profile starts with.
const (
	FundInvestments = "investments"
	FundTravel      = "travel"
	FundFlexible    = "flexible"
)

func DefaultFundKeys() []string {
	return []string{FundInvestments, FundTravel, FundFlexible}
}

// DefaultProfile returns the profile a fresh user starts with.
func DefaultProfile() Profile {
	budgets := make(map[string]Money, len(DefaultExpenseCategories))
	for _, c := range DefaultExpenseCategories {
		budgets[c] = Money{}
	}
	funds := make(map[string]Money, 3)
	pockets := make(map[string]Money, 3)
	for _, k := range DefaultFundKeys() {
		funds[k] = Money{}
		pockets[k] = Money{}
	}
	return Profile{
		Payday:       1,
		Currency:     "EUR",
		Budgets:      budgets,
		FundBalances: funds,
		Pockets:      pockets,
	}
}

func (p Profile) Validate() error {
	if p.Payday < 1 || p.Payday > 31 {
		return ErrInvalidPayday
	}
	return nil
}

// Clone deep-copies the profile's maps.
func (p Profile) Clone() Profile {
	out := p
	out.Budgets = cloneMoneyMap(p.Budgets)
	out.Accounts = cloneMoneyMap(p.Accounts)
	out.FundBalances = cloneMoneyMap(p.FundBalances)
	out.Pockets = cloneMoneyMap(p.Pockets)
	if p.MonthlyBudgets != nil {
		out.MonthlyBudgets = make(map[string]map[string]Money, len(p.MonthlyBudgets))
		for k, v := range p.MonthlyBudgets {
			out.MonthlyBudgets[k] = cloneMoneyMap(v)
		}
	}
	return out
}

func cloneMoneyMap(in map[string]Money) map[string]Money {
	if in == nil {
		return nil
	}
	out := make(map[string]Money, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// PocketTotal sums the configured monthly fund contributions.
func (p Profile) PocketTotal() Money {
	var total Money
	for _, v := range p.Pockets {
		total = total.Add(v)
	}
	return total
}

// FundTotal sums the current fund balances.
func (p Profile) FundTotal() Money {
	var total Money
	for _, v := range p.FundBalances {
		total = total.Add(v)
	}
	return total
}

// BudgetTotal sums the effective category limits for a month
// (month-specific override first, default budgets otherwise).
func (p Profile) BudgetTotal(monthKey string) Money {
	budgets := p.Budgets
	if override, ok := p.MonthlyBudgets[monthKey]; ok {
		budgets = override
	}
	var total Money
	for _, v := range budgets {
		total = total.Add(v)
	}
	return total
}
