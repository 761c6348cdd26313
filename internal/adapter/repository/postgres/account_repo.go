package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/qwellan/peerpay/internal/domain"
	"github.com/qwellan/peerpay/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository over the users
// table: the account is the (account_id, balance) projection of a user row.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// GetByAccountID retrieves an account by its public account ID.
func (r *AccountRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT account_id, balance
		FROM users
		WHERE account_id = $1 AND active
	`

	var (
		account domain.Account
		balance pgtype.Numeric
	)

	err := r.pool.QueryRow(ctx, query, accountID).Scan(&account.AccountID, &balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.Balance = numericToDecimal(balance)

	return &account, nil
}

// GetByAccountIDsForUpdate locks the matching account rows for the duration
// of the transaction. Rows come back in sorted account_id order so callers
// locking the same pair always acquire in the same order.
func (r *AccountRepository) GetByAccountIDsForUpdate(ctx context.Context, tx usecase.Transaction, accountIDs []string) ([]*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT account_id, balance
		FROM users
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE
	`

	rows, err := pgxTx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var (
			account domain.Account
			balance pgtype.Numeric
		)

		if err := rows.Scan(&account.AccountID, &balance); err != nil {
			return nil, err
		}

		account.Balance = numericToDecimal(balance)
		accounts = append(accounts, &account)
	}

	return accounts, rows.Err()
}

// UpdateBalance sets the balance of an account inside the transaction.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, accountID string, balance decimal.Decimal) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `UPDATE users SET balance = $2 WHERE account_id = $1`

	_, err := pgxTx.Exec(ctx, query, accountID, decimalToNumeric(balance))

	return err
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
