package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/qwellan/peerpay/internal/domain"
)

// AccountRepository is the transfer engine's view of the account store.
type AccountRepository interface {
	// GetByAccountID returns the account or domain.ErrAccountNotFound.
	GetByAccountID(ctx context.Context, accountID string) (*domain.Account, error)
	// GetByAccountIDsForUpdate locks the matching rows for the duration of
	// the transaction. Rows are locked in sorted accountID order; missing
	// accounts are simply absent from the result.
	GetByAccountIDsForUpdate(ctx context.Context, tx Transaction, accountIDs []string) ([]*domain.Account, error)
	// UpdateBalance sets the balance of an account inside the transaction.
	UpdateBalance(ctx context.Context, tx Transaction, accountID string, balance decimal.Decimal) error
}

// PaymentRepository is the append-only payment ledger.
type PaymentRepository interface {
	// Create appends the payment inside the transaction and fills in the
	// ledger-assigned ID.
	Create(ctx context.Context, tx Transaction, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	// ListByAccount returns committed payments where the account is payer or
	// receiver, newest first. fromYear, when non-nil, keeps only payments
	// whose commit year is >= fromYear.
	ListByAccount(ctx context.Context, accountID string, fromYear *int, limit, offset int) ([]*domain.Payment, error)
}

// UserRepository defines data access for registered users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByAccountID(ctx context.Context, accountID string) (*domain.User, error)
	// UpdateBalance is the administrative balance set; it runs in its own
	// statement, serialized against transfers by the row lock.
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates internal user IDs.
type IDGenerator interface {
	Generate() string
}

// AccountIDGenerator generates public transfer addresses.
type AccountIDGenerator interface {
	Generate() string
}

// Cache defines caching operations for account lookups.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier retries an operation on transient storage conflicts. The transfer
// engine never retries on its own; callers wrap Transfer with a Retrier.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
