package domain

import "errors"

var (
	// Transfer errors, in precondition order.
	ErrUnknownSender       = errors.New("sender account not found")
	ErrUnknownReceiver     = errors.New("receiver account not found")
	ErrSelfTransfer        = errors.New("cannot transfer to same account")
	ErrInvalidAmount       = errors.New("amount must be positive with at most two decimal places")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrCommitFailed signals a storage failure inside the atomic transfer
	// unit. Both balances and the ledger are unchanged; the whole operation
	// may be retried by the caller.
	ErrCommitFailed = errors.New("transfer commit failed")

	// Lookup errors
	ErrAccountNotFound = errors.New("account not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrUserNotFound    = errors.New("user not found")

	// Registration errors
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrDuplicateAccountID = errors.New("account id already exists")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")

	// ErrNegativeBalance rejects administrative balance updates below zero.
	ErrNegativeBalance = errors.New("balance cannot be negative")
)
