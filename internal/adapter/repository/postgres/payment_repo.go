package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qwellan/peerpay/internal/domain"
	"github.com/qwellan/peerpay/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository. Payments are
// append-only; there is no update or delete path.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Create appends a payment inside the transaction and fills in the assigned
// ledger ID.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO payments (amount, payer, receiver, date, method)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return pgxTx.QueryRow(ctx, query,
		decimalToNumeric(payment.Amount),
		payment.Payer,
		payment.Receiver,
		payment.Date,
		payment.Method,
	).Scan(&payment.ID)
}

// GetByID retrieves a payment by ledger ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	query := `
		SELECT id, amount, payer, receiver, date, method
		FROM payments
		WHERE id = $1
	`

	payment, err := scanPayment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	return payment, nil
}

// ListByAccount lists payments where the account is payer or receiver,
// newest first, optionally restricted to commit years >= fromYear.
func (r *PaymentRepository) ListByAccount(ctx context.Context, accountID string, fromYear *int, limit, offset int) ([]*domain.Payment, error) {
	query := `
		SELECT id, amount, payer, receiver, date, method
		FROM payments
		WHERE (payer = $1 OR receiver = $1)
		  AND ($2::int IS NULL OR EXTRACT(YEAR FROM date)::int >= $2)
		ORDER BY date DESC, id DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query, accountID, fromYear, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}

		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		payment domain.Payment
		amount  pgtype.Numeric
		date    pgtype.Timestamptz
	)

	err := row.Scan(
		&payment.ID,
		&amount,
		&payment.Payer,
		&payment.Receiver,
		&date,
		&payment.Method,
	)
	if err != nil {
		return nil, err
	}

	payment.Amount = numericToDecimal(amount)
	payment.Date = date.Time

	return &payment, nil
}
