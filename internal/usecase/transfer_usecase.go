package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/qwellan/peerpay/internal/domain"
)

// TransferUseCase validates and atomically executes balance transfers. It is
// the sole writer of account balances in the transfer path and the sole
// creator of payment records.
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	paymentRepo PaymentRepository
	cache       Cache
	logger      zerolog.Logger
}

// NewTransferUseCase creates a new TransferUseCase. cache may be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	paymentRepo PaymentRepository,
	cache Cache,
	logger zerolog.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		paymentRepo: paymentRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Transfer moves amount from the sender account to the receiver account and
// appends the payment record, all inside one transaction. Preconditions are
// checked in a fixed order, each aborting before any mutation:
//
//  1. sender exists
//  2. receiver exists
//  3. sender != receiver
//  4. amount > 0 with at most two decimal places
//  5. sender balance >= amount
//
// A storage failure inside the unit rolls back fully and is reported as
// domain.ErrCommitFailed.
func (uc *TransferUseCase) Transfer(ctx context.Context, senderAccountID, receiverAccountID string, amount decimal.Decimal) (*domain.Payment, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCommitFailed, err)
	}
	defer tx.Rollback(ctx)

	// Lock in sorted order so concurrent transfers over the same pair
	// cannot deadlock.
	ids := uniqueSorted(senderAccountID, receiverAccountID)

	accounts, err := uc.accountRepo.GetByAccountIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCommitFailed, err)
	}

	byID := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}

	sender := byID[senderAccountID]
	if sender == nil {
		return nil, domain.ErrUnknownSender
	}

	receiver := byID[receiverAccountID]
	if receiver == nil {
		return nil, domain.ErrUnknownReceiver
	}

	if senderAccountID == receiverAccountID {
		return nil, domain.ErrSelfTransfer
	}

	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	if !sender.CanDebit(amount) {
		return nil, domain.ErrInsufficientBalance
	}

	// Date reflects the commit instant, not request receipt.
	now := time.Now().UTC()

	if err := uc.accountRepo.UpdateBalance(ctx, tx, sender.AccountID, sender.ApplyDebit(amount)); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCommitFailed, err)
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, receiver.AccountID, receiver.ApplyCredit(amount)); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCommitFailed, err)
	}

	payment := &domain.Payment{
		Amount:   amount,
		Payer:    senderAccountID,
		Receiver: receiverAccountID,
		Date:     now,
		Method:   domain.PaymentMethodTransfer,
	}

	if err := uc.paymentRepo.Create(ctx, tx, payment); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCommitFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCommitFailed, err)
	}

	uc.invalidate(ctx, senderAccountID, receiverAccountID)

	uc.logger.Info().
		Int64("payment_id", payment.ID).
		Str("payer", senderAccountID).
		Str("receiver", receiverAccountID).
		Str("amount", amount.StringFixed(2)).
		Msg("transfer committed")

	return payment, nil
}

// invalidate drops cached balances after a committed transfer. Best effort:
// the cache is TTL-bounded and never consulted inside the atomic unit.
func (uc *TransferUseCase) invalidate(ctx context.Context, accountIDs ...string) {
	if uc.cache == nil {
		return
	}

	for _, id := range accountIDs {
		if err := uc.cache.Delete(ctx, accountCacheKey(id)); err != nil {
			uc.logger.Warn().Err(err).Str("account_id", id).Msg("cache invalidation failed")
		}
	}
}

func uniqueSorted(ids ...string) []string {
	seen := make(map[string]bool, len(ids))

	var out []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	sort.Strings(out)

	return out
}

func accountCacheKey(accountID string) string {
	return "account:" + accountID
}
