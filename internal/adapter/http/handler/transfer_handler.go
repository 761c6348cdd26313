package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/qwellan/peerpay/internal/adapter/http/dto"
	"github.com/qwellan/peerpay/internal/infrastructure/metrics"
	"github.com/qwellan/peerpay/internal/usecase"
)

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC *usecase.TransferUseCase
	retrier    usecase.Retrier
	metrics    *metrics.Metrics
}

// NewTransferHandler creates a new TransferHandler. retrier and m may be nil.
func NewTransferHandler(transferUC *usecase.TransferUseCase, retrier usecase.Retrier, m *metrics.Metrics) *TransferHandler {
	return &TransferHandler{
		transferUC: transferUC,
		retrier:    retrier,
		metrics:    m,
	}
}

// Create executes a transfer between two accounts. Transient storage
// conflicts are retried here; the use case itself never retries.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	start := time.Now()

	var payment *dto.PaymentResponse
	op := func() error {
		p, err := h.transferUC.Transfer(r.Context(), req.SenderAccountID, req.ReceiverAccountID, req.Amount)
		if err != nil {
			return err
		}
		payment = dto.PaymentFromDomain(p)
		return nil
	}

	var err error
	if h.retrier != nil {
		err = h.retrier.Retry(r.Context(), op)
	} else {
		err = op()
	}

	if err != nil {
		if h.metrics != nil {
			_, code := mapDomainError(err)
			h.metrics.TransferErrors.WithLabelValues(code).Inc()
		}
		writeDomainError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.TransfersCompleted.Inc()
		h.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		h.metrics.TransferAmount.Observe(req.Amount.InexactFloat64())
	}

	writeJSON(w, http.StatusOK, payment)
}
