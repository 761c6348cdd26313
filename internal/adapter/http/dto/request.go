package dto

import (
	"github.com/shopspring/decimal"

	"github.com/qwellan/peerpay/internal/usecase"
)

// CreateTransferRequest represents a request to transfer money between accounts.
type CreateTransferRequest struct {
	SenderAccountID   string          `json:"sender_account_id"`
	ReceiverAccountID string          `json:"receiver_account_id"`
	Amount            decimal.Decimal `json:"amount"`
}

// RegisterRequest represents a request to register a user.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Username: r.Username,
		Password: r.Password,
	}
}

// UpdateBalanceRequest represents an administrative balance update.
type UpdateBalanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
}
