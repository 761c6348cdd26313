package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/qwellan/peerpay/internal/adapter/http/dto"
	"github.com/qwellan/peerpay/internal/domain"
	"github.com/qwellan/peerpay/internal/usecase"
	"github.com/qwellan/peerpay/internal/usecase/mocks"
)

func seededPaymentHandler(t *testing.T) *PaymentHandler {
	t.Helper()

	paymentRepo := mocks.NewMockPaymentRepository()
	ctx := context.Background()
	tx := mocks.NewMockTransaction()

	for _, p := range []*domain.Payment{
		{Amount: decimal.RequireFromString("50.00"), Payer: "AAAAAAAAAA", Receiver: "BBBBBBBBBB", Date: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), Method: domain.PaymentMethodTransfer},
		{Amount: decimal.RequireFromString("75.00"), Payer: "BBBBBBBBBB", Receiver: "AAAAAAAAAA", Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Method: domain.PaymentMethodTransfer},
		{Amount: decimal.RequireFromString("10.00"), Payer: "CCCCCCCCCC", Receiver: "DDDDDDDDDD", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Method: domain.PaymentMethodTransfer},
	} {
		if err := paymentRepo.Create(ctx, tx, p); err != nil {
			t.Fatalf("seed payment: %v", err)
		}
	}

	return NewPaymentHandler(usecase.NewPaymentUseCase(paymentRepo))
}

func TestPaymentHandler_Get(t *testing.T) {
	handler := seededPaymentHandler(t)

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/payments/1", nil), "id", "1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var resp dto.PaymentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != 1 || resp.Payer != "AAAAAAAAAA" {
		t.Fatalf("unexpected payment: %+v", resp)
	}
}

func TestPaymentHandler_Get_InvalidID(t *testing.T) {
	handler := seededPaymentHandler(t)

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/payments/abc", nil), "id", "abc")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPaymentHandler_List(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCount int
		wantCode  int
	}{
		{name: "all for account", query: "account_id=AAAAAAAAAA", wantCount: 2, wantCode: http.StatusOK},
		{name: "from year filter", query: "account_id=AAAAAAAAAA&from_year=2024", wantCount: 1, wantCode: http.StatusOK},
		{name: "unrelated account", query: "account_id=EEEEEEEEEE", wantCount: 0, wantCode: http.StatusOK},
		{name: "missing account_id", query: "", wantCode: http.StatusBadRequest},
		{name: "bad from_year", query: "account_id=AAAAAAAAAA&from_year=abc", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := seededPaymentHandler(t)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/payments?"+tt.query, nil)
			rec := httptest.NewRecorder()

			handler.List(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body)
			}

			if tt.wantCode != http.StatusOK {
				return
			}

			var resp []*dto.PaymentResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(resp) != tt.wantCount {
				t.Fatalf("got %d payments, want %d", len(resp), tt.wantCount)
			}

			// Newest first
			for i := 1; i < len(resp); i++ {
				if resp[i].Date.After(resp[i-1].Date) {
					t.Fatalf("payments not sorted newest first: %+v", resp)
				}
			}
		})
	}
}
