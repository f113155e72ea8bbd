package handler

import (
	"credit-ledger/internal/api/handler/dto"
	"credit-ledger/internal/domain/ledger"
	"credit-ledger/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
)

const transactionIDParam = "transactionID"

type TransactionHandler struct {
	service ledger.LedgerService
	logger  *slog.Logger
}

func NewTransactionHandler(s ledger.LedgerService, l *slog.Logger) *TransactionHandler {
	if s == nil {
		panic("ledger service cannot be nil")
	}
	return &TransactionHandler{
		service: s,
		logger:  l.With("component", "TransactionHandler"),
	}
}

// RecordLoan handles POST /loans
// @Summary Record a loan
// @Description Records a product given to a customer on credit.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.RecordLoanRequest true "Loan payload (amount as decimal string, date as YYYY-MM-DD)"
// @Success 201 {object} dto.LoanResponse "Loan recorded"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [post]
// @Security BearerAuth
func (h *TransactionHandler) RecordLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	amount, date, err := req.Parse()
	if err != nil {
		respondError(w, err)
		return
	}

	created, err := h.service.RecordLoan(r.Context(), req.CustomerID, req.Product, amount, date)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to record loan", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewLoanResponse(created))
}

// RecordPayment handles POST /payments
// @Summary Record a payment
// @Description Records money received from a customer. Rejected when the customer owes nothing or when the amount exceeds the outstanding balance.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body dto.RecordPaymentRequest true "Payment payload (amount as decimal string, date as YYYY-MM-DD)"
// @Success 201 {object} dto.PaymentResponse "Payment recorded"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 422 {object} dto.ErrorResponse "Overpayment or balance already settled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments [post]
// @Security BearerAuth
func (h *TransactionHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	amount, date, err := req.Parse()
	if err != nil {
		respondError(w, err)
		return
	}

	created, err := h.service.RecordPayment(r.Context(), req.CustomerID, amount, date)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to record payment", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewPaymentResponse(created))
}

// EditLoan handles PUT /loans/{transactionID}
// @Summary Edit a loan
// @Description Overwrites the amount and date of a loan. The product is kept.
// @Tags Loans
// @Accept json
// @Param transactionID path int true "Loan ID" Minimum(1)
// @Param request body dto.EditTransactionRequest true "New amount and date"
// @Success 204 "Loan updated"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{transactionID} [put]
// @Security BearerAuth
func (h *TransactionHandler) EditLoan(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, ledger.KindLoan)
}

// EditPayment handles PUT /payments/{transactionID}
// @Summary Edit a payment
// @Description Overwrites the amount and date of a payment. The balance is not re-checked.
// @Tags Payments
// @Accept json
// @Param transactionID path int true "Payment ID" Minimum(1)
// @Param request body dto.EditTransactionRequest true "New amount and date"
// @Success 204 "Payment updated"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/{transactionID} [put]
// @Security BearerAuth
func (h *TransactionHandler) EditPayment(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, ledger.KindPayment)
}

func (h *TransactionHandler) edit(w http.ResponseWriter, r *http.Request, kind ledger.Kind) {
	transactionID, err := idFromURL(r, transactionIDParam)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get transaction ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.EditTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	amount, date, err := req.Parse()
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.EditTransaction(r.Context(), kind, transactionID, amount, date); err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to edit transaction",
			slog.String("kind", string(kind)), slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
