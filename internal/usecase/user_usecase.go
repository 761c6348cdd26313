package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/qwellan/peerpay/internal/domain"
)

// accountIDAttempts bounds retries when a generated account ID collides
// with an existing one.
const accountIDAttempts = 5

// StartingBalance is credited to every new account at registration.
var StartingBalance = decimal.RequireFromString("1000.00")

// UserUseCase handles registration, authentication and administrative
// balance updates.
type UserUseCase struct {
	userRepo     UserRepository
	cache        Cache
	idGen        IDGenerator
	accountIDGen AccountIDGenerator
}

// NewUserUseCase creates a new UserUseCase. cache may be nil.
func NewUserUseCase(userRepo UserRepository, cache Cache, idGen IDGenerator, accountIDGen AccountIDGenerator) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		cache:        cache,
		idGen:        idGen,
		accountIDGen: accountIDGen,
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new user with a hashed password, a fresh account ID and
// the starting balance.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := domain.ValidateUsername(input.Username); err != nil {
		return nil, err
	}

	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if existing, err := uc.userRepo.GetByUsername(ctx, input.Username); err == nil && existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	if existing, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Username:       input.Username,
		Email:          input.Email,
		HashedPassword: string(hashed),
		Balance:        StartingBalance,
		DateJoined:     time.Now().UTC(),
		Active:         true,
	}

	// The account ID space is large, but the unique constraint is the real
	// guard; retry a few times on collision.
	for attempt := 0; attempt < accountIDAttempts; attempt++ {
		user.AccountID = uc.accountIDGen.Generate()

		err = uc.userRepo.Create(ctx, user)
		if err == nil {
			user.HashedPassword = ""
			return user, nil
		}

		if !errors.Is(err, domain.ErrDuplicateAccountID) {
			return nil, err
		}
	}

	return nil, err
}

// AuthenticateInput represents login credentials.
type AuthenticateInput struct {
	Username string
	Password string
}

// Authenticate verifies credentials for an active user.
func (uc *UserUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error) {
	user, err := uc.userRepo.GetByUsername(ctx, input.Username)
	if err != nil || user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, domain.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user.HashedPassword = ""

	return user, nil
}

// GetUser retrieves an active user by internal ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, domain.ErrUserNotFound
	}

	user.HashedPassword = ""

	return user, nil
}

// UpdateBalance administratively sets a user's balance. Negative balances
// are rejected; the cached account entry is dropped.
func (uc *UserUseCase) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	if balance.IsNegative() {
		return domain.ErrNegativeBalance
	}

	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !user.Active {
		return domain.ErrUserNotFound
	}

	if err := uc.userRepo.UpdateBalance(ctx, id, balance); err != nil {
		return err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, accountCacheKey(user.AccountID))
	}

	return nil
}
