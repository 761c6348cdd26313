package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/qwellan/peerpay/internal/domain"
)

// AccountUseCase serves read-only account lookups, including the recipient
// verification step clients run before sending money. Verification is a
// convenience read only; the transfer engine re-validates existence inside
// its own transaction.
type AccountUseCase struct {
	accountRepo AccountRepository
	cache       Cache
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase. cache may be nil.
func NewAccountUseCase(accountRepo AccountRepository, cache Cache, cacheTTL time.Duration, logger zerolog.Logger) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

type cachedAccount struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}

// GetAccount returns the account for a public account ID, serving from the
// cache when possible.
func (uc *AccountUseCase) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if acc := uc.fromCache(ctx, accountID); acc != nil {
		return acc, nil
	}

	account, err := uc.accountRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	uc.toCache(ctx, account)

	return account, nil
}

func (uc *AccountUseCase) fromCache(ctx context.Context, accountID string) *domain.Account {
	if uc.cache == nil {
		return nil
	}

	raw, err := uc.cache.Get(ctx, accountCacheKey(accountID))
	if err != nil {
		return nil
	}

	var cached cachedAccount
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil
	}

	account, err := accountFromCached(cached)
	if err != nil {
		return nil
	}

	return account
}

func accountFromCached(c cachedAccount) (*domain.Account, error) {
	balance, err := decimal.NewFromString(c.Balance)
	if err != nil {
		return nil, err
	}

	return &domain.Account{
		AccountID: c.AccountID,
		Balance:   balance,
	}, nil
}

func (uc *AccountUseCase) toCache(ctx context.Context, account *domain.Account) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(cachedAccount{
		AccountID: account.AccountID,
		Balance:   account.Balance.StringFixed(2),
	})
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, accountCacheKey(account.AccountID), string(raw), uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("account_id", account.AccountID).Msg("cache write failed")
	}
}
