package core

import "testing"

func TestApplyFundDeltaDeposit(t *testing.T) {
	profile := Profile{FundBalances: map[string]Money{FundTravel: {Cents: 10000}}}
	day := NewDate(2024, 3, 25)

	change := ApplyFundDelta(profile, FundTravel, Money{Cents: 5000}, true, day)
	if change.NewBalance.Cents != 15000 {
		t.Fatalf("balance %d", change.NewBalance.Cents)
	}
	if change.Emitted == nil || change.Emitted.Type != Transfer {
		t.Fatalf("deposit must emit a transfer, got %+v", change.Emitted)
	}
	if change.Emitted.Amount.Cents != 5000 {
		t.Fatalf("amount %d", change.Emitted.Amount.Cents)
	}
}

func TestApplyFundDeltaWithdrawal(t *testing.T) {
	profile := Profile{FundBalances: map[string]Money{FundTravel: {Cents: 10000}}}
	change := ApplyFundDelta(profile, FundTravel, Money{Cents: -4000}, true, NewDate(2024, 3, 25))
	if change.NewBalance.Cents != 6000 {
		t.Fatalf("balance %d", change.NewBalance.Cents)
	}
	if change.Emitted == nil || change.Emitted.Type != Income {
		t.Fatalf("withdrawal must emit an income, got %+v", change.Emitted)
	}
	if change.Emitted.Amount.Cents != 4000 {
		t.Fatalf("amount %d", change.Emitted.Amount.Cents)
	}
}

func TestApplyFundDeltaNoImpact(t *testing.T) {
	profile := Profile{FundBalances: map[string]Money{FundTravel: {Cents: 10000}}}
	change := ApplyFundDelta(profile, FundTravel, Money{Cents: 5000}, false, NewDate(2024, 3, 25))
	if change.Emitted != nil {
		t.Fatalf("fund-only operation emitted %+v", change.Emitted)
	}
	if change.NewBalance.Cents != 15000 {
		t.Fatalf("balance %d", change.NewBalance.Cents)
	}
}

func TestSetFundBalance(t *testing.T) {
	day := NewDate(2024, 3, 25)
	cases := []struct {
		prior, target  int64
		wantEmitted    bool
		wantEmitCents  int64
		wantAdjustType TxType
	}{
		{10000, 15000, true, 5000, Transfer},
		{10000, 4000, true, 6000, Income},
		{10000, 10000, false, 0, ""},
		{0, 2500, true, 2500, Transfer},
	}
	for _, tc := range cases {
		profile := Profile{FundBalances: map[string]Money{FundFlexible: {Cents: tc.prior}}}
		change := SetFundBalance(profile, FundFlexible, Money{Cents: tc.target}, true, day)
		if change.NewBalance.Cents != tc.target {
			t.Fatalf("prior %d target %d: balance %d", tc.prior, tc.target, change.NewBalance.Cents)
		}
		if tc.wantEmitted {
			if change.Emitted == nil {
				t.Fatalf("prior %d target %d: no emission", tc.prior, tc.target)
			}
			if change.Emitted.Amount.Cents != tc.wantEmitCents || change.Emitted.Type != tc.wantAdjustType {
				t.Fatalf("prior %d target %d: got %+v", tc.prior, tc.target, change.Emitted)
			}
		} else if change.Emitted != nil {
			t.Fatalf("no-op emitted %+v", change.Emitted)
		}
	}
}

func TestDistribute(t *testing.T) {
	profile := Profile{
		FundBalances: map[string]Money{
			FundInvestments: {Cents: 10000},
			FundTravel:      {Cents: 5000},
		},
		Pockets: map[string]Money{
			FundInvestments: {Cents: 20000},
			FundTravel:      {Cents: 0}, // unfunded pocket skipped
		},
	}
	today := NewDate(2024, 3, 25)

	result, ok := Distribute(profile, today)
	if !ok {
		t.Fatal("expected a distribution")
	}
	if result.Month != "2024-03" {
		t.Fatalf("month %s", result.Month)
	}
	if len(result.Transactions) != 1 {
		t.Fatalf("got %d transactions", len(result.Transactions))
	}
	mv := result.Transactions[0]
	if mv.Type != Transfer || mv.Amount.Cents != 20000 || mv.Date.Key() != "2024-03-25" {
		t.Fatalf("got %+v", mv)
	}
	if result.NewBalances[FundInvestments].Cents != 30000 {
		t.Fatalf("balance %d", result.NewBalances[FundInvestments].Cents)
	}
	if _, moved := result.NewBalances[FundTravel]; moved {
		t.Fatal("zero pocket must not move")
	}
}

func TestDistributeNothingConfigured(t *testing.T) {
	profile := Profile{Pockets: map[string]Money{FundTravel: {}}}
	if _, ok := Distribute(profile, NewDate(2024, 3, 25)); ok {
		t.Fatal("expected nothing to distribute")
	}
}

func TestDistributionPending(t *testing.T) {
	today := NewDate(2024, 3, 25)
	cases := []struct {
		payday    int
		lastMonth string
		want      bool
	}{
		{25, "", true},
		{25, "2024-02", true},
		{25, "2024-03", false}, // already done this month
		{26, "", false},        // payday not reached
	}
	for _, tc := range cases {
		profile := Profile{Payday: tc.payday, LastDistributionMonth: tc.lastMonth}
		if got := DistributionPending(profile, today); got != tc.want {
			t.Fatalf("payday %d last %q: got %v", tc.payday, tc.lastMonth, got)
		}
	}
}
