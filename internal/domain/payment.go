package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethodTransfer tags engine-initiated transfers.
const PaymentMethodTransfer = "Transfer"

// Payment is an immutable ledger record of a completed transfer. The ledger
// store assigns the ID; the engine assigns Date at commit time.
type Payment struct {
	ID       int64
	Amount   decimal.Decimal
	Payer    string
	Receiver string
	Date     time.Time
	Method   string
}

// Validate checks record-level invariants before the ledger append.
func (p *Payment) Validate() error {
	if p.Payer == p.Receiver {
		return ErrSelfTransfer
	}

	if err := ValidateAmount(p.Amount); err != nil {
		return err
	}

	return nil
}
