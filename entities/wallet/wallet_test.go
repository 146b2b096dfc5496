package wallet

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDepositWithdraw(t *testing.T) {
	w := NewWallet()
	if err := w.Deposit("USD", d("100.50")); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := w.Withdraw("USD", d("0.50")); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	avail, _ := w.Balance("USD")
	if !avail.Equal(d("100")) {
		t.Fatalf("expected 100 available, got %s", avail)
	}
}

func TestWithdrawRejectsOverdraft(t *testing.T) {
	w := NewWallet()
	_ = w.Deposit("USD", d("10"))
	if err := w.Withdraw("USD", d("10.01")); err == nil {
		t.Fatalf("expected overdraft rejection")
	}
}

func TestDepositRejectsNonPositive(t *testing.T) {
	w := NewWallet()
	if err := w.Deposit("USD", d("0")); err == nil {
		t.Fatalf("zero deposit must be rejected")
	}
	if err := w.Deposit("USD", d("-5")); err == nil {
		t.Fatalf("negative deposit must be rejected")
	}
}

func TestHoldPreventsDoubleSpend(t *testing.T) {
	w := NewWallet()
	_ = w.Deposit("USD", d("100"))
	if err := w.Hold("USD", d("60")); err != nil {
		t.Fatalf("hold: %v", err)
	}
	if err := w.Withdraw("USD", d("50")); err == nil {
		t.Fatalf("held funds must not be withdrawable")
	}
	avail, held := w.Balance("USD")
	if !avail.Equal(d("40")) || !held.Equal(d("60")) {
		t.Fatalf("expected 40/60 split, got %s/%s", avail, held)
	}
}

func TestReleaseHoldRestoresAvailable(t *testing.T) {
	w := NewWallet()
	_ = w.Deposit("USD", d("100"))
	_ = w.Hold("USD", d("60"))
	if err := w.ReleaseHold("USD", d("60")); err != nil {
		t.Fatalf("release: %v", err)
	}
	avail, held := w.Balance("USD")
	if !avail.Equal(d("100")) || !held.IsZero() {
		t.Fatalf("expected full release, got %s/%s", avail, held)
	}
}

func TestSettleTradeMovesValueAtomically(t *testing.T) {
	w := NewWallet()
	_ = w.Deposit("USD", d("10000"))
	_ = w.Hold("USD", d("10000"))
	if err := w.SettleTrade("USD", d("10000"), "BTC", d("0.25")); err != nil {
		t.Fatalf("settle: %v", err)
	}
	usdAvail, usdHeld := w.Balance("USD")
	btcAvail, _ := w.Balance("BTC")
	if !usdAvail.IsZero() || !usdHeld.IsZero() {
		t.Fatalf("USD should be fully consumed, got %s/%s", usdAvail, usdHeld)
	}
	if !btcAvail.Equal(d("0.25")) {
		t.Fatalf("expected 0.25 BTC, got %s", btcAvail)
	}
}

func TestSettleRejectsUnheldFunds(t *testing.T) {
	w := NewWallet()
	_ = w.Deposit("USD", d("100"))
	if err := w.SettleTrade("USD", d("100"), "BTC", d("1")); err == nil {
		t.Fatalf("settlement must require a prior hold")
	}
}

func TestConcurrentDepositsSum(t *testing.T) {
	w := NewWallet()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.Deposit("USD", d("1"))
		}()
	}
	wg.Wait()
	avail, _ := w.Balance("USD")
	if !avail.Equal(d("100")) {
		t.Fatalf("expected 100 after concurrent deposits, got %s", avail)
	}
}
