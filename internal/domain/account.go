package domain

import (
	"github.com/shopspring/decimal"
)

// Account is the balance-holding projection of a user, addressed by its
// public account ID. Balances are mutated only inside a transfer transaction
// or by an explicit administrative update.
type Account struct {
	AccountID string
	Balance   decimal.Decimal
}

// CanDebit reports whether the account holds at least amount.
func (a *Account) CanDebit(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
