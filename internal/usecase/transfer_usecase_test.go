package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/qwellan/peerpay/internal/domain"
	"github.com/qwellan/peerpay/internal/usecase"
	"github.com/qwellan/peerpay/internal/usecase/mocks"
)

func newTransferFixture() (*usecase.TransferUseCase, *mocks.MockAccountRepository, *mocks.MockPaymentRepository, *mocks.MockTransactionManager, *mocks.MockCache) {
	accRepo := mocks.NewMockAccountRepository()
	payRepo := mocks.NewMockPaymentRepository()
	txMgr := mocks.NewMockTransactionManager()
	cache := mocks.NewMockCache()

	uc := usecase.NewTransferUseCase(txMgr, accRepo, payRepo, cache, zerolog.Nop())

	return uc, accRepo, payRepo, txMgr, cache
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTransferUseCase_Transfer(t *testing.T) {
	const (
		accA = "AAAA111111"
		accB = "BBBB222222"
	)

	tests := []struct {
		name      string
		balanceA  string
		sender    string
		receiver  string
		amount    string
		wantErr   error
		wantA     string
		wantB     string
		wantCount int
	}{
		{
			name:      "successful transfer",
			balanceA:  "1000.00",
			sender:    accA,
			receiver:  accB,
			amount:    "250.00",
			wantErr:   nil,
			wantA:     "750.00",
			wantB:     "250.00",
			wantCount: 1,
		},
		{
			name:     "insufficient balance",
			balanceA: "100.00",
			sender:   accA,
			receiver: accB,
			amount:   "150.00",
			wantErr:  domain.ErrInsufficientBalance,
			wantA:    "100.00",
			wantB:    "0.00",
		},
		{
			name:      "exact balance drains account",
			balanceA:  "100.00",
			sender:    accA,
			receiver:  accB,
			amount:    "100.00",
			wantErr:   nil,
			wantA:     "0.00",
			wantB:     "100.00",
			wantCount: 1,
		},
		{
			name:     "self transfer",
			balanceA: "1000.00",
			sender:   accA,
			receiver: accA,
			amount:   "10.00",
			wantErr:  domain.ErrSelfTransfer,
			wantA:    "1000.00",
			wantB:    "0.00",
		},
		{
			name:     "unknown sender",
			balanceA: "1000.00",
			sender:   "NOPE000000",
			receiver: accB,
			amount:   "10.00",
			wantErr:  domain.ErrUnknownSender,
			wantA:    "1000.00",
			wantB:    "0.00",
		},
		{
			name:     "unknown receiver",
			balanceA: "1000.00",
			sender:   accA,
			receiver: "UNKNOWN999",
			amount:   "10.00",
			wantErr:  domain.ErrUnknownReceiver,
			wantA:    "1000.00",
			wantB:    "0.00",
		},
		{
			name:     "zero amount",
			balanceA: "1000.00",
			sender:   accA,
			receiver: accB,
			amount:   "0.00",
			wantErr:  domain.ErrInvalidAmount,
			wantA:    "1000.00",
			wantB:    "0.00",
		},
		{
			name:     "negative amount",
			balanceA: "1000.00",
			sender:   accA,
			receiver: accB,
			amount:   "-5.00",
			wantErr:  domain.ErrInvalidAmount,
			wantA:    "1000.00",
			wantB:    "0.00",
		},
		{
			name:     "sub-cent precision",
			balanceA: "1000.00",
			sender:   accA,
			receiver: accB,
			amount:   "10.005",
			wantErr:  domain.ErrInvalidAmount,
			wantA:    "1000.00",
			wantB:    "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, accRepo, payRepo, txMgr, _ := newTransferFixture()
			accRepo.Seed(&domain.Account{AccountID: accA, Balance: dec(tt.balanceA)})
			accRepo.Seed(&domain.Account{AccountID: accB, Balance: dec("0.00")})

			payment, err := uc.Transfer(context.Background(), tt.sender, tt.receiver, dec(tt.amount))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Transfer() error = %v, want %v", err, tt.wantErr)
				}
				if payment != nil {
					t.Error("expected nil payment on failure")
				}
				if txMgr.LastTx != nil && txMgr.LastTx.Committed {
					t.Error("transaction committed on a rejected transfer")
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if payment == nil {
					t.Fatal("expected payment, got nil")
				}
				if !payment.Amount.Equal(dec(tt.amount)) {
					t.Errorf("payment amount = %s, want %s", payment.Amount, tt.amount)
				}
				if payment.Payer != tt.sender || payment.Receiver != tt.receiver {
					t.Errorf("payment parties = %s -> %s, want %s -> %s", payment.Payer, payment.Receiver, tt.sender, tt.receiver)
				}
				if payment.Method != domain.PaymentMethodTransfer {
					t.Errorf("payment method = %q, want %q", payment.Method, domain.PaymentMethodTransfer)
				}
				if payment.Date.IsZero() {
					t.Error("payment date not assigned")
				}
				if txMgr.LastTx == nil || !txMgr.LastTx.Committed {
					t.Error("transaction not committed")
				}
			}

			if !accRepo.Balance(accA).Equal(dec(tt.wantA)) {
				t.Errorf("account A balance = %s, want %s", accRepo.Balance(accA), tt.wantA)
			}
			if !accRepo.Balance(accB).Equal(dec(tt.wantB)) {
				t.Errorf("account B balance = %s, want %s", accRepo.Balance(accB), tt.wantB)
			}
			if payRepo.Count() != tt.wantCount {
				t.Errorf("ledger has %d payments, want %d", payRepo.Count(), tt.wantCount)
			}
		})
	}
}

func TestTransferUseCase_PreconditionOrder(t *testing.T) {
	// An unknown sender must win over every later check, including ones that
	// would also fail.
	uc, accRepo, _, _, _ := newTransferFixture()
	accRepo.Seed(&domain.Account{AccountID: "BBBB222222", Balance: dec("0.00")})

	_, err := uc.Transfer(context.Background(), "NOPE000000", "BBBB222222", dec("-1"))
	if !errors.Is(err, domain.ErrUnknownSender) {
		t.Errorf("error = %v, want ErrUnknownSender", err)
	}

	// Self transfer against a missing account reports the sender as unknown.
	_, err = uc.Transfer(context.Background(), "NOPE000000", "NOPE000000", dec("10.00"))
	if !errors.Is(err, domain.ErrUnknownSender) {
		t.Errorf("error = %v, want ErrUnknownSender", err)
	}

	// Self transfer against an existing account is rejected as such even
	// with a bad amount still in the queue of checks.
	_, err = uc.Transfer(context.Background(), "BBBB222222", "BBBB222222", dec("-1"))
	if !errors.Is(err, domain.ErrSelfTransfer) {
		t.Errorf("error = %v, want ErrSelfTransfer", err)
	}
}

func TestTransferUseCase_CommitFailed(t *testing.T) {
	t.Run("commit error", func(t *testing.T) {
		uc, accRepo, _, txMgr, _ := newTransferFixture()
		accRepo.Seed(&domain.Account{AccountID: "AAAA111111", Balance: dec("1000.00")})
		accRepo.Seed(&domain.Account{AccountID: "BBBB222222", Balance: dec("0.00")})

		txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
			tx := mocks.NewMockTransaction()
			tx.CommitFunc = func(ctx context.Context) error {
				return errors.New("connection reset")
			}
			return tx, nil
		}

		_, err := uc.Transfer(context.Background(), "AAAA111111", "BBBB222222", dec("10.00"))
		if !errors.Is(err, domain.ErrCommitFailed) {
			t.Errorf("error = %v, want ErrCommitFailed", err)
		}
	})

	t.Run("ledger append error", func(t *testing.T) {
		uc, accRepo, payRepo, _, _ := newTransferFixture()
		accRepo.Seed(&domain.Account{AccountID: "AAAA111111", Balance: dec("1000.00")})
		accRepo.Seed(&domain.Account{AccountID: "BBBB222222", Balance: dec("0.00")})

		payRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
			return errors.New("disk full")
		}

		_, err := uc.Transfer(context.Background(), "AAAA111111", "BBBB222222", dec("10.00"))
		if !errors.Is(err, domain.ErrCommitFailed) {
			t.Errorf("error = %v, want ErrCommitFailed", err)
		}
	})

	t.Run("begin error", func(t *testing.T) {
		uc, _, _, txMgr, _ := newTransferFixture()

		txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
			return nil, errors.New("pool exhausted")
		}

		_, err := uc.Transfer(context.Background(), "AAAA111111", "BBBB222222", dec("10.00"))
		if !errors.Is(err, domain.ErrCommitFailed) {
			t.Errorf("error = %v, want ErrCommitFailed", err)
		}
	})
}

func TestTransferUseCase_CacheInvalidation(t *testing.T) {
	uc, accRepo, _, _, cache := newTransferFixture()
	accRepo.Seed(&domain.Account{AccountID: "AAAA111111", Balance: dec("1000.00")})
	accRepo.Seed(&domain.Account{AccountID: "BBBB222222", Balance: dec("0.00")})

	cache.Set(context.Background(), "account:AAAA111111", "stale", 0)
	cache.Set(context.Background(), "account:BBBB222222", "stale", 0)

	if _, err := uc.Transfer(context.Background(), "AAAA111111", "BBBB222222", dec("25.00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cache.Deletes) != 2 {
		t.Errorf("expected 2 cache invalidations, got %d", len(cache.Deletes))
	}
}
