package handler_test

import (
	"bytes"
	"context"
	"credit-ledger/internal/api/handler"
	"credit-ledger/internal/api/handler/dto"
	"credit-ledger/internal/domain/customer"
	"credit-ledger/internal/domain/ledger"
	"credit-ledger/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorDetail {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func decimalOf(s string) any {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func dateOf(y int, m time.Month, d int) any {
	want := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return mock.MatchedBy(func(t time.Time) bool { return t.Equal(want) })
}

func TestNewCustomerHandler_PanicsOnNilDeps(t *testing.T) {
	assert.Panics(t, func() { handler.NewCustomerHandler(nil, testLogger) })
	assert.Panics(t, func() { handler.NewCustomerHandler(new(MockLedgerService), nil) })
}

func TestRegisterCustomer(t *testing.T) {
	mockService := new(MockLedgerService)
	h := handler.NewCustomerHandler(mockService, testLogger)

	t.Run("success", func(t *testing.T) {
		body := `{"name":"Asha Mussa","phone":"0716180718","address":"Kariakoo"}`
		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		created := &customer.Customer{ID: 1, Name: "Asha Mussa", Phone: "0716180718", Address: "Kariakoo"}
		mockService.On("RegisterCustomer", mock.Anything, "Asha Mussa", "0716180718", "Kariakoo", "").Return(created, nil).Once()

		h.RegisterCustomer(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.CustomerResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "1", resp.CustomerID)
		assert.Equal(t, "0716180718", resp.Phone)
		mockService.AssertExpectations(t)
	})

	t.Run("validation error carries the field", func(t *testing.T) {
		body := `{"name":"Asha","phone":"07-16"}`
		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		mockService.On("RegisterCustomer", mock.Anything, "Asha", "07-16", "", "").
			Return(nil, apperrors.NewValidationError("phone", "phone number must contain digits only")).Once()

		h.RegisterCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		detail := decodeError(t, rec)
		assert.Equal(t, "VALIDATION_ERROR", detail.Code)
		assert.Equal(t, "phone", detail.Field)
		assert.Equal(t, "phone number must contain digits only", detail.Message)
	})

	t.Run("duplicate phone is a conflict", func(t *testing.T) {
		body := `{"name":"Other","phone":"0716180718"}`
		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		mockService.On("RegisterCustomer", mock.Anything, "Other", "0716180718", "", "").
			Return(nil, fmt.Errorf("%w: phone 0716180718", apperrors.ErrAlreadyExists)).Once()

		h.RegisterCustomer(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		detail := decodeError(t, rec)
		assert.Equal(t, "DUPLICATE", detail.Code)
		assert.Equal(t, "phone", detail.Field)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString(`{"nickname":"x"}`))
		rec := httptest.NewRecorder()

		h.RegisterCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNumberOfCalls(t, "RegisterCustomer", 3)
	})
}

func TestGetCustomer(t *testing.T) {
	mockService := new(MockLedgerService)
	h := handler.NewCustomerHandler(mockService, testLogger)

	t.Run("success", func(t *testing.T) {
		mockService.On("GetCustomer", mock.Anything, int64(1)).Return(&customer.Customer{ID: 1, Name: "Juma"}, nil).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/customers/1", nil), "customerID", "1")
		rec := httptest.NewRecorder()
		h.GetCustomer(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CustomerResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Juma", resp.Name)
	})

	t.Run("invalid customer ID", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/customers/abc", nil), "customerID", "abc")
		rec := httptest.NewRecorder()
		h.GetCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNumberOfCalls(t, "GetCustomer", 1)
	})

	t.Run("customer not found", func(t *testing.T) {
		mockService.On("GetCustomer", mock.Anything, int64(2)).Return(nil, fmt.Errorf("%w: customer 2", apperrors.ErrNotFound)).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/customers/2", nil), "customerID", "2")
		rec := httptest.NewRecorder()
		h.GetCustomer(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)
	})
}

func TestListCustomers(t *testing.T) {
	mockService := new(MockLedgerService)
	h := handler.NewCustomerHandler(mockService, testLogger)

	t.Run("passes the trimmed query", func(t *testing.T) {
		found := []*customer.Customer{{ID: 3, Name: "Asha"}}
		mockService.On("SearchCustomers", mock.Anything, "ash").Return(found, nil).Once()

		rec := httptest.NewRecorder()
		h.ListCustomers(rec, httptest.NewRequest(http.MethodGet, "/customers?q=+ash+", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp []dto.CustomerResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "3", resp[0].CustomerID)
	})

	t.Run("empty list is an empty array", func(t *testing.T) {
		mockService.On("SearchCustomers", mock.Anything, "").Return([]*customer.Customer{}, nil).Once()

		rec := httptest.NewRecorder()
		h.ListCustomers(rec, httptest.NewRequest(http.MethodGet, "/customers", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("store failure hides details", func(t *testing.T) {
		mockService.On("SearchCustomers", mock.Anything, "x").Return(nil, fmt.Errorf("%w: connection reset", apperrors.ErrDatabase)).Once()

		rec := httptest.NewRecorder()
		h.ListCustomers(rec, httptest.NewRequest(http.MethodGet, "/customers?q=x", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		detail := decodeError(t, rec)
		assert.Equal(t, "DB_ERROR", detail.Code)
		assert.NotContains(t, detail.Message, "connection reset")
	})
}

func TestDeleteCustomer(t *testing.T) {
	mockService := new(MockLedgerService)
	h := handler.NewCustomerHandler(mockService, testLogger)

	t.Run("success", func(t *testing.T) {
		mockService.On("DeleteCustomer", mock.Anything, int64(4)).Return(nil).Once()

		rec := httptest.NewRecorder()
		h.DeleteCustomer(rec, withURLParam(httptest.NewRequest(http.MethodDelete, "/customers/4", nil), "customerID", "4"))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("partial cascade failure is a server error", func(t *testing.T) {
		mockService.On("DeleteCustomer", mock.Anything, int64(5)).Return(errors.New("cascade delete of customer 5 stopped: disk full")).Once()

		rec := httptest.NewRecorder()
		h.DeleteCustomer(rec, withURLParam(httptest.NewRequest(http.MethodDelete, "/customers/5", nil), "customerID", "5"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("unknown customer", func(t *testing.T) {
		mockService.On("DeleteCustomer", mock.Anything, int64(6)).Return(apperrors.ErrNotFound).Once()

		rec := httptest.NewRecorder()
		h.DeleteCustomer(rec, withURLParam(httptest.NewRequest(http.MethodDelete, "/customers/6", nil), "customerID", "6"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetBalance(t *testing.T) {
	mockService := new(MockLedgerService)
	h := handler.NewCustomerHandler(mockService, testLogger)

	balance := ledger.Balance{
		TotalLoan:    decimal.NewFromInt(50000),
		TotalPayment: decimal.NewFromInt(20000),
		Balance:      decimal.NewFromInt(30000),
	}
	mockService.On("GetBalance", mock.Anything, int64(1)).Return(balance, nil).Once()

	rec := httptest.NewRecorder()
	h.GetBalance(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/customers/1/balance", nil), "customerID", "1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"customerId":"1","totalLoan":"50000","totalPayment":"20000","balance":"30000"}`, rec.Body.String())
}
