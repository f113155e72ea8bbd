package handler_test

import (
	"bytes"
	"credit-ledger/internal/api/handler"
	"credit-ledger/internal/api/handler/dto"
	"credit-ledger/internal/domain/ledger"
	"credit-ledger/internal/pkg/apperrors"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordLoan(t *testing.T) {
	mockService := new(MockLedgerService)
	h := handler.NewTransactionHandler(mockService, testLogger)

	t.Run("success", func(t *testing.T) {
		date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		created := &ledger.Loan{ID: 9, CustomerID: 1, Product: "Sugar", Amount: decimal.NewFromInt(50000), Date: date}
		mockService.On("RecordLoan", mock.Anything, int64(1), "Sugar", decimalOf("50000"), dateOf(2024, 1, 1)).Return(created, nil).Once()

		body := `{"customerId":1,"product":"Sugar","amount":"50000","date":"2024-01-01"}`
		rec := httptest.NewRecorder()
		h.RecordLoan(rec, httptest.NewRequest(http.MethodPost, "/loans", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.LoanResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "9", resp.LoanID)
		assert.Equal(t, "50000", resp.Amount)
		assert.Equal(t, "2024-01-01", resp.Date)
	})

	t.Run("missing amount is left to the ledger", func(t *testing.T) {
		mockService.On("RecordLoan", mock.Anything, int64(1), "Rice", decimalOf("0"), mock.Anything).
			Return(nil, apperrors.NewValidationError("amount", "amount must be greater than zero")).Once()

		rec := httptest.NewRecorder()
		h.RecordLoan(rec, httptest.NewRequest(http.MethodPost, "/loans", bytes.NewBufferString(`{"customerId":1,"product":"Rice","date":"2024-01-01"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "amount", decodeError(t, rec).Field)
	})

	t.Run("malformed amount", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.RecordLoan(rec, httptest.NewRequest(http.MethodPost, "/loans", bytes.NewBufferString(`{"customerId":1,"product":"Rice","amount":"lots","date":"2024-01-01"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "amount", decodeError(t, rec).Field)
	})

	t.Run("malformed date", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.RecordLoan(rec, httptest.NewRequest(http.MethodPost, "/loans", bytes.NewBufferString(`{"customerId":1,"product":"Rice","amount":"10","date":"01/01/2024"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "date", decodeError(t, rec).Field)
		mockService.AssertNumberOfCalls(t, "RecordLoan", 2)
	})

	t.Run("unknown customer", func(t *testing.T) {
		mockService.On("RecordLoan", mock.Anything, int64(77), "Oil", decimalOf("10"), dateOf(2024, 1, 2)).
			Return(nil, fmt.Errorf("%w: customer 77", apperrors.ErrNotFound)).Once()

		rec := httptest.NewRecorder()
		h.RecordLoan(rec, httptest.NewRequest(http.MethodPost, "/loans", bytes.NewBufferString(`{"customerId":77,"product":"Oil","amount":"10","date":"2024-01-02"}`)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("amount beyond two decimal places", func(t *testing.T) {
		mockService.On("RecordLoan", mock.Anything, int64(1), "Salt", decimalOf("10.006"), dateOf(2024, 1, 3)).
			Return(nil, apperrors.NewValidationError("amount", "amount must have at most 2 decimal places")).Once()

		rec := httptest.NewRecorder()
		h.RecordLoan(rec, httptest.NewRequest(http.MethodPost, "/loans", bytes.NewBufferString(`{"customerId":1,"product":"Salt","amount":"10.006","date":"2024-01-03"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "amount", decodeError(t, rec).Field)
	})
}

func TestRecordPayment(t *testing.T) {
	mockService := new(MockLedgerService)
	h := handler.NewTransactionHandler(mockService, testLogger)

	t.Run("success", func(t *testing.T) {
		created := &ledger.Payment{ID: 4, CustomerID: 1, Amount: decimal.NewFromInt(20000), Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)}
		mockService.On("RecordPayment", mock.Anything, int64(1), decimalOf("20000"), dateOf(2024, 1, 5)).Return(created, nil).Once()

		rec := httptest.NewRecorder()
		h.RecordPayment(rec, httptest.NewRequest(http.MethodPost, "/payments", bytes.NewBufferString(`{"customerId":1,"amount":"20000","date":"2024-01-05"}`)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.PaymentResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "4", resp.PaymentID)
		assert.Equal(t, "2024-01-05", resp.Date)
	})

	t.Run("overpayment", func(t *testing.T) {
		mockService.On("RecordPayment", mock.Anything, int64(1), decimalOf("40000"), dateOf(2024, 1, 6)).
			Return(nil, fmt.Errorf("%w: balance is 30000", apperrors.ErrOverpayment)).Once()

		rec := httptest.NewRecorder()
		h.RecordPayment(rec, httptest.NewRequest(http.MethodPost, "/payments", bytes.NewBufferString(`{"customerId":1,"amount":"40000","date":"2024-01-06"}`)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "OVERPAYMENT", decodeError(t, rec).Code)
	})

	t.Run("already settled", func(t *testing.T) {
		mockService.On("RecordPayment", mock.Anything, int64(2), decimalOf("1"), dateOf(2024, 1, 6)).
			Return(nil, apperrors.ErrAlreadySettled).Once()

		rec := httptest.NewRecorder()
		h.RecordPayment(rec, httptest.NewRequest(http.MethodPost, "/payments", bytes.NewBufferString(`{"customerId":2,"amount":"1","date":"2024-01-06"}`)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "ALREADY_SETTLED", decodeError(t, rec).Code)
	})

	t.Run("empty body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.RecordPayment(rec, httptest.NewRequest(http.MethodPost, "/payments", bytes.NewBufferString(``)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEditTransaction(t *testing.T) {
	mockService := new(MockLedgerService)
	h := handler.NewTransactionHandler(mockService, testLogger)
	body := `{"amount":"45000","date":"2024-02-10"}`

	t.Run("edit loan", func(t *testing.T) {
		mockService.On("EditTransaction", mock.Anything, ledger.KindLoan, int64(3), decimalOf("45000"), dateOf(2024, 2, 10)).Return(nil).Once()

		req := withURLParam(httptest.NewRequest(http.MethodPut, "/loans/3", bytes.NewBufferString(body)), "transactionID", "3")
		rec := httptest.NewRecorder()
		h.EditLoan(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("edit payment that does not exist", func(t *testing.T) {
		mockService.On("EditTransaction", mock.Anything, ledger.KindPayment, int64(8), decimalOf("45000"), dateOf(2024, 2, 10)).
			Return(fmt.Errorf("%w: payment 8", apperrors.ErrNotFound)).Once()

		req := withURLParam(httptest.NewRequest(http.MethodPut, "/payments/8", bytes.NewBufferString(body)), "transactionID", "8")
		rec := httptest.NewRecorder()
		h.EditPayment(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodPut, "/payments/0", bytes.NewBufferString(body)), "transactionID", "0")
		rec := httptest.NewRecorder()
		h.EditPayment(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNumberOfCalls(t, "EditTransaction", 2)
	})
}
