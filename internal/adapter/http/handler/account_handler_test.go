package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/qwellan/peerpay/internal/adapter/http/dto"
	"github.com/qwellan/peerpay/internal/domain"
	"github.com/qwellan/peerpay/internal/usecase"
	"github.com/qwellan/peerpay/internal/usecase/mocks"
)

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}

func TestAccountHandler_Get(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{AccountID: "AAAAAAAAAA", Balance: decimal.RequireFromString("1000.00")})

	uc := usecase.NewAccountUseCase(accountRepo, nil, time.Minute, zerolog.Nop())
	handler := NewAccountHandler(uc)

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/accounts/AAAAAAAAAA", nil), "accountID", "AAAAAAAAAA")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AccountID != "AAAAAAAAAA" || !resp.Balance.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(), nil, time.Minute, zerolog.Nop())
	handler := NewAccountHandler(uc)

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/accounts/ZZZZZZZZZZ", nil), "accountID", "ZZZZZZZZZZ")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
