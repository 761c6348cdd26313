package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/qwellan/peerpay/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		AccountID: a.AccountID,
		Balance:   a.Balance,
	}
}

// PaymentResponse represents a payment record in API responses.
type PaymentResponse struct {
	ID       int64           `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Payer    string          `json:"payer"`
	Receiver string          `json:"receiver"`
	Date     time.Time       `json:"date"`
	Method   string          `json:"method"`
}

// PaymentFromDomain converts domain payment to response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:       p.ID,
		Amount:   p.Amount,
		Payer:    p.Payer,
		Receiver: p.Receiver,
		Date:     p.Date,
		Method:   p.Method,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID         string          `json:"id"`
	Username   string          `json:"username"`
	Email      string          `json:"email"`
	AccountID  string          `json:"account_id"`
	Balance    decimal.Decimal `json:"balance"`
	DateJoined time.Time       `json:"date_joined"`
}

// UserFromDomain converts domain user to response. The password hash never
// leaves the use case layer.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		AccountID:  u.AccountID,
		Balance:    u.Balance,
		DateJoined: u.DateJoined,
	}
}

// TokenResponse represents a successful login.
type TokenResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
