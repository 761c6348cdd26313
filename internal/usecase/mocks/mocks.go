package mocks

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/qwellan/peerpay/internal/domain"
	"github.com/qwellan/peerpay/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	GetByAccountIDFunc           func(ctx context.Context, accountID string) (*domain.Account, error)
	GetByAccountIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, accountIDs []string) ([]*domain.Account, error)
	UpdateBalanceFunc            func(ctx context.Context, tx usecase.Transaction, accountID string, balance decimal.Decimal) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed adds an account to the in-memory store.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.AccountID] = account
}

// Balance returns the current stored balance for an account.
func (m *MockAccountRepository) Balance(accountID string) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if a, ok := m.accounts[accountID]; ok {
		return a.Balance
	}

	return decimal.Zero
}

func (m *MockAccountRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.Account, error) {
	if m.GetByAccountIDFunc != nil {
		return m.GetByAccountIDFunc(ctx, accountID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.accounts[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	cp := *a

	return &cp, nil
}

func (m *MockAccountRepository) GetByAccountIDsForUpdate(ctx context.Context, tx usecase.Transaction, accountIDs []string) ([]*domain.Account, error) {
	if m.GetByAccountIDsForUpdateFunc != nil {
		return m.GetByAccountIDsForUpdateFunc(ctx, tx, accountIDs)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Account
	for _, id := range accountIDs {
		if a, ok := m.accounts[id]; ok {
			cp := *a
			out = append(out, &cp)
		}
	}

	return out, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, accountID string, balance decimal.Decimal) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, accountID, balance)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if a, ok := m.accounts[accountID]; ok {
		a.Balance = balance
	}

	return nil
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments []*domain.Payment
	nextID   int64

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error
	GetByIDFunc       func(ctx context.Context, id int64) (*domain.Payment, error)
	ListByAccountFunc func(ctx context.Context, accountID string, fromYear *int, limit, offset int) ([]*domain.Payment, error)
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{nextID: 1}
}

// Count returns the number of appended payments.
func (m *MockPaymentRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.payments)
}

// Last returns the most recently appended payment, or nil.
func (m *MockPaymentRepository) Last() *domain.Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.payments) == 0 {
		return nil
	}

	return m.payments[len(m.payments)-1]
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, payment)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	payment.ID = m.nextID
	m.nextID++
	cp := *payment
	m.payments = append(m.payments, &cp)

	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.payments {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}

	return nil, domain.ErrPaymentNotFound
}

func (m *MockPaymentRepository) ListByAccount(ctx context.Context, accountID string, fromYear *int, limit, offset int) ([]*domain.Payment, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, fromYear, limit, offset)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Payment
	for i := len(m.payments) - 1; i >= 0; i-- {
		p := m.payments[i]
		if p.Payer != accountID && p.Receiver != accountID {
			continue
		}

		if fromYear != nil && p.Date.Year() < *fromYear {
			continue
		}

		cp := *p
		out = append(out, &cp)
	}

	return out, nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc         func(ctx context.Context, user *domain.User) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.User, error)
	GetByUsernameFunc  func(ctx context.Context, username string) (*domain.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*domain.User, error)
	GetByAccountIDFunc func(ctx context.Context, accountID string) (*domain.User, error)
	UpdateBalanceFunc  func(ctx context.Context, id string, balance decimal.Decimal) error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.AccountID == user.AccountID {
			return domain.ErrDuplicateAccountID
		}
	}

	cp := *user
	m.users[user.ID] = &cp

	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	cp := *u

	return &cp, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}

	return nil, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}

	return nil, nil
}

func (m *MockUserRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.User, error) {
	if m.GetByAccountIDFunc != nil {
		return m.GetByAccountIDFunc(ctx, accountID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.AccountID == accountID {
			cp := *u
			return &cp, nil
		}
	}

	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, id, balance)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}

	u.Balance = balance

	return nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func NewMockTransaction() *MockTransaction {
	return &MockTransaction{}
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}

	m.Committed = true

	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}

	if !m.Committed {
		m.RolledBack = true
	}

	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	LastTx *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}

	m.LastTx = NewMockTransaction()

	return m.LastTx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu      sync.Mutex
	counter int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++

	return "user-" + strconv.Itoa(m.counter)
}

// MockAccountIDGenerator is a mock implementation of AccountIDGenerator.
type MockAccountIDGenerator struct {
	GenerateFunc func() string

	mu      sync.Mutex
	counter int
}

func NewMockAccountIDGenerator() *MockAccountIDGenerator {
	return &MockAccountIDGenerator{}
}

func (m *MockAccountIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++

	// fixed-width, zero-padded so the format stays 10 characters
	id := strconv.Itoa(m.counter)
	for len(id) < 10 {
		id = "0" + id
	}

	return id
}

// MockCache is an in-memory mock implementation of Cache.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error

	Deletes []string
}

func NewMockCache() *MockCache {
	return &MockCache{
		entries: make(map[string]string),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.entries[key]
	if !ok {
		return "", errors.New("cache miss")
	}

	return v, nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value

	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	m.Deletes = append(m.Deletes, key)

	return nil
}
