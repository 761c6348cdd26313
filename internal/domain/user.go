package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a registered account holder. The account fields (AccountID,
// Balance) live on the same row; Account is the transfer engine's view of
// them.
type User struct {
	ID             string
	Username       string
	Email          string
	HashedPassword string
	AccountID      string
	Balance        decimal.Decimal
	DateJoined     time.Time
	Active         bool
}

// Account returns the balance-holding projection of the user.
func (u *User) Account() *Account {
	return &Account{
		AccountID: u.AccountID,
		Balance:   u.Balance,
	}
}
