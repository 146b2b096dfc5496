package wallet

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Wallet is an in-memory multi-token ledger with exact decimal arithmetic.
// Amounts on hold are tracked separately from the available balance so a
// pending order can never double-spend.
type Wallet struct {
	mu        sync.Mutex
	available map[string]decimal.Decimal
	held      map[string]decimal.Decimal
}

func NewWallet() *Wallet {
	return &Wallet{
		available: map[string]decimal.Decimal{},
		held:      map[string]decimal.Decimal{},
	}
}

// Balance returns the available and held amounts for a token.
func (w *Wallet) Balance(token string) (available, held decimal.Decimal) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.available[token], w.held[token]
}

// Balances snapshots every token with a nonzero available or held amount.
func (w *Wallet) Balances() map[string]decimal.Decimal {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]decimal.Decimal, len(w.available))
	for token, amt := range w.available {
		total := amt.Add(w.held[token])
		if !total.IsZero() {
			out[token] = total
		}
	}
	for token, amt := range w.held {
		if _, seen := w.available[token]; !seen && !amt.IsZero() {
			out[token] = amt
		}
	}
	return out
}

func (w *Wallet) Deposit(token string, amount decimal.Decimal) error {
	if amount.IsNegative() || amount.IsZero() {
		return fmt.Errorf("deposit amount must be positive, got %s", amount)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.available[token] = w.available[token].Add(amount)
	return nil
}

func (w *Wallet) Withdraw(token string, amount decimal.Decimal) error {
	if amount.IsNegative() || amount.IsZero() {
		return fmt.Errorf("withdraw amount must be positive, got %s", amount)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.available[token].LessThan(amount) {
		return fmt.Errorf("insufficient %s balance: have %s, want %s", token, w.available[token], amount)
	}
	w.available[token] = w.available[token].Sub(amount)
	return nil
}

// Hold moves an amount from available to held, reserving it for a pending
// order.
func (w *Wallet) Hold(token string, amount decimal.Decimal) error {
	if amount.IsNegative() || amount.IsZero() {
		return fmt.Errorf("hold amount must be positive, got %s", amount)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.available[token].LessThan(amount) {
		return fmt.Errorf("insufficient %s balance to hold: have %s, want %s", token, w.available[token], amount)
	}
	w.available[token] = w.available[token].Sub(amount)
	w.held[token] = w.held[token].Add(amount)
	return nil
}

// ReleaseHold moves a held amount back to available, e.g. on order cancel.
func (w *Wallet) ReleaseHold(token string, amount decimal.Decimal) error {
	if amount.IsNegative() || amount.IsZero() {
		return fmt.Errorf("release amount must be positive, got %s", amount)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.held[token].LessThan(amount) {
		return fmt.Errorf("cannot release %s %s: only %s on hold", amount, token, w.held[token])
	}
	w.held[token] = w.held[token].Sub(amount)
	w.available[token] = w.available[token].Add(amount)
	return nil
}

// SettleTrade consumes a held from-amount and credits the to-token in one
// atomic step, so no interleaving can observe the funds in both tokens.
func (w *Wallet) SettleTrade(fromToken string, fromAmount decimal.Decimal, toToken string, toAmount decimal.Decimal) error {
	if fromAmount.IsNegative() || fromAmount.IsZero() || toAmount.IsNegative() {
		return fmt.Errorf("invalid settlement amounts %s -> %s", fromAmount, toAmount)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.held[fromToken].LessThan(fromAmount) {
		return fmt.Errorf("cannot settle %s %s: only %s on hold", fromAmount, fromToken, w.held[fromToken])
	}
	w.held[fromToken] = w.held[fromToken].Sub(fromAmount)
	w.available[toToken] = w.available[toToken].Add(toAmount)
	return nil
}
