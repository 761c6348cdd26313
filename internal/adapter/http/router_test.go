package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/qwellan/peerpay/internal/adapter/http/handler"
	"github.com/qwellan/peerpay/internal/domain"
	"github.com/qwellan/peerpay/internal/infrastructure/auth"
	"github.com/qwellan/peerpay/internal/usecase"
	"github.com/qwellan/peerpay/internal/usecase/mocks"
)

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{AccountID: "AAAAAAAAAA", Balance: decimal.RequireFromString("1000.00")})
	accountRepo.Seed(&domain.Account{AccountID: "BBBBBBBBBB", Balance: decimal.RequireFromString("1000.00")})

	transferUC := usecase.NewTransferUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		mocks.NewMockPaymentRepository(),
		nil,
		zerolog.Nop(),
	)
	accountUC := usecase.NewAccountUseCase(accountRepo, nil, time.Minute, zerolog.Nop())
	paymentUC := usecase.NewPaymentUseCase(mocks.NewMockPaymentRepository())
	userUC := usecase.NewUserUseCase(mocks.NewMockUserRepository(), nil, mocks.NewMockIDGenerator(), mocks.NewMockAccountIDGenerator())

	jwtManager := auth.NewJWTManager("test-secret", time.Minute)

	cfg := RouterConfig{
		TransferHandler: handler.NewTransferHandler(transferUC, nil, nil),
		AccountHandler:  handler.NewAccountHandler(accountUC),
		PaymentHandler:  handler.NewPaymentHandler(paymentUC),
		UserHandler:     handler.NewUserHandler(userUC, jwtManager, nil),
		HealthHandler:   &handler.HealthHandler{},
		JWTManager:      jwtManager,
		Logger:          zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_TransferEndToEnd(t *testing.T) {
	router := NewRouter(newRouterConfig())

	body := `{"sender_account_id":"AAAAAAAAAA","receiver_account_id":"BBBBBBBBBB","amount":"100.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimitPerSecond = 1
		cfg.RateLimitBurst = 1
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_UserRoutesRequireAuth(t *testing.T) {
	router := NewRouter(newRouterConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/some-id", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Router")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/transfers",
		"GET /api/v1/accounts/{accountID}",
		"GET /api/v1/payments/",
		"GET /api/v1/payments/{id}",
		"POST /api/v1/users/register",
		"POST /api/v1/users/login",
		"GET /api/v1/users/{id}",
		"PUT /api/v1/users/{id}/balance",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}
