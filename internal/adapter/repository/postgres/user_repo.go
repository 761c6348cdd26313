package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/qwellan/peerpay/internal/domain"
)

const pgErrUniqueViolation = "23505"

// UserRepository implements user persistence.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user. Unique violations map to the matching domain
// error so the use case can retry account ID generation.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, email, hashed_password, account_id, balance, date_joined, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.HashedPassword,
		user.AccountID,
		decimalToNumeric(user.Balance),
		user.DateJoined,
		user.Active,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return domain.ErrUsernameTaken
		case "users_email_key":
			return domain.ErrEmailTaken
		case "users_account_id_key":
			return domain.ErrDuplicateAccountID
		}
	}

	return err
}

// GetByID retrieves a user by internal ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByUsername retrieves a user by username. A missing user is (nil, nil);
// registration treats absence as the normal case.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := r.getOne(ctx, `WHERE username = $1`, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil
	}

	return user, err
}

// GetByEmail retrieves a user by email. A missing user is (nil, nil).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.getOne(ctx, `WHERE email = $1`, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil
	}

	return user, err
}

// GetByAccountID retrieves a user by public account ID.
func (r *UserRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.User, error) {
	return r.getOne(ctx, `WHERE account_id = $1`, accountID)
}

// UpdateBalance administratively sets a user's balance in a single
// statement; the row lock serializes it against concurrent transfers.
func (r *UserRepository) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	query := `UPDATE users SET balance = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, decimalToNumeric(balance))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `
		SELECT id, username, email, hashed_password, account_id, balance, date_joined, active
		FROM users ` + where

	var (
		user    domain.User
		balance pgtype.Numeric
	)

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.AccountID,
		&balance,
		&user.DateJoined,
		&user.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		return nil, err
	}

	user.Balance = numericToDecimal(balance)

	return &user, nil
}
