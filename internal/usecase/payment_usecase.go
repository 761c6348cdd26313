package usecase

import (
	"context"

	"github.com/qwellan/peerpay/internal/domain"
)

// PaymentUseCase serves read-only payment history. History reflects only
// committed transfers; the ledger never exposes partial entries.
type PaymentUseCase struct {
	paymentRepo PaymentRepository
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(paymentRepo PaymentRepository) *PaymentUseCase {
	return &PaymentUseCase{paymentRepo: paymentRepo}
}

// GetPayment retrieves a payment by ledger ID.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	return uc.paymentRepo.GetByID(ctx, id)
}

// ListPaymentsInput represents input for listing payment history.
type ListPaymentsInput struct {
	AccountID string
	FromYear  *int
	Limit     int
	Offset    int
}

// ListPayments lists payments involving an account, newest first, optionally
// restricted to commit years >= FromYear.
func (uc *PaymentUseCase) ListPayments(ctx context.Context, input ListPaymentsInput) ([]*domain.Payment, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.paymentRepo.ListByAccount(ctx, input.AccountID, input.FromYear, limit, offset)
}
