package core

import (
	"fmt"
	"sort"
)

// FundChange is the outcome of one manual fund operation. Emitted is
// the counterpart movement on the main balance (transfer on deposit,
// income on withdrawal); nil when the operation was fund-only or a
// no-op. Identity fields of Emitted are filled in by the caller.
type FundChange struct {
	Fund       string       `json:"fund"`
	OldBalance Money        `json:"oldBalance"`
	NewBalance Money        `json:"newBalance"`
	Emitted    *Transaction `json:"emitted,omitempty"`
}

// ApplyFundDelta deposits (delta > 0) or withdraws (delta < 0) on a
// fund. When impactMain is set, the matching main-balance transaction
// is emitted; otherwise only the fund balance moves.
func ApplyFundDelta(profile Profile, fund string, delta Money, impactMain bool, day Date) FundChange {
	current := profile.FundBalances[fund]
	change := FundChange{
		Fund:       fund,
		OldBalance: current,
		NewBalance: current.Add(delta),
	}
	if delta.IsZero() || !impactMain {
		return change
	}

	if delta.Cents > 0 {
		change.Emitted = &Transaction{
			Date:        day,
			Amount:      delta,
			Description: fmt.Sprintf("Aportación a %s", fund),
			Type:        Transfer,
			Category:    CategoryOther,
		}
	} else {
		change.Emitted = &Transaction{
			Date:        day,
			Amount:      delta.Abs(),
			Description: fmt.Sprintf("Retirada de %s", fund),
			Type:        Income,
			Category:    CategoryOther,
		}
	}
	return change
}

// SetFundBalance moves a fund to an absolute target. The diff against
// the current balance follows the same emission rule as ApplyFundDelta,
// so the new balance always equals target.
func SetFundBalance(profile Profile, fund string, target Money, impactMain bool, day Date) FundChange {
	diff := target.Sub(profile.FundBalances[fund])
	return ApplyFundDelta(profile, fund, diff, impactMain, day)
}

// DistributionResult is the outcome of one monthly distribution run.
type DistributionResult struct {
	Month        string
	Transactions []Transaction
	NewBalances  map[string]Money
}

// Distribute performs the monthly pocket distribution: one transfer per
// fund with a positive configured contribution, dated today, and the
// fund balance incremented by the same amount. The caller stamps
// LastDistributionMonth with the returned Month. Returns ok=false when
// no pocket has a positive amount.
func Distribute(profile Profile, today Date) (DistributionResult, bool) {
	result := DistributionResult{
		Month:       today.MonthKey(),
		NewBalances: make(map[string]Money),
	}

	funds := make([]string, 0, len(profile.Pockets))
	for fund := range profile.Pockets {
		funds = append(funds, fund)
	}
	sort.Strings(funds)

	for _, fund := range funds {
		amount := profile.Pockets[fund]
		if amount.Cents <= 0 {
			continue
		}
		result.Transactions = append(result.Transactions, Transaction{
			Date:        today,
			Amount:      amount,
			Description: fmt.Sprintf("Distribución mensual a %s", fund),
			Type:        Transfer,
			Category:    CategoryOther,
		})
		result.NewBalances[fund] = profile.FundBalances[fund].Add(amount)
	}

	if len(result.Transactions) == 0 {
		return DistributionResult{}, false
	}
	return result, true
}

// DistributionPending reports whether the user should be prompted to
// distribute: the payday has been reached and this month has not been
// distributed yet. The engine never triggers on its own.
func DistributionPending(profile Profile, today Date) bool {
	return today.Day() >= profile.Payday &&
		profile.LastDistributionMonth != today.MonthKey()
}
