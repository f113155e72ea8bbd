package handler_test

import (
	"context"
	"credit-ledger/internal/domain/customer"
	"credit-ledger/internal/domain/dashboard"
	"credit-ledger/internal/domain/ledger"
	"credit-ledger/internal/domain/report"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockLedgerService struct {
	mock.Mock
}

var _ ledger.LedgerService = (*MockLedgerService)(nil)

func (m *MockLedgerService) RegisterCustomer(ctx context.Context, name, phone, address, photo string) (*customer.Customer, error) {
	args := m.Called(ctx, name, phone, address, photo)
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerService) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	args := m.Called(ctx)
	if c, ok := args.Get(0).([]*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerService) SearchCustomers(ctx context.Context, query string) ([]*customer.Customer, error) {
	args := m.Called(ctx, query)
	if c, ok := args.Get(0).([]*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerService) RecordLoan(ctx context.Context, customerID int64, product string, amount decimal.Decimal, date time.Time) (*ledger.Loan, error) {
	args := m.Called(ctx, customerID, product, amount, date)
	if l, ok := args.Get(0).(*ledger.Loan); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerService) RecordPayment(ctx context.Context, customerID int64, amount decimal.Decimal, date time.Time) (*ledger.Payment, error) {
	args := m.Called(ctx, customerID, amount, date)
	if p, ok := args.Get(0).(*ledger.Payment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerService) GetBalance(ctx context.Context, customerID int64) (ledger.Balance, error) {
	args := m.Called(ctx, customerID)
	if b, ok := args.Get(0).(ledger.Balance); ok {
		return b, args.Error(1)
	}
	return ledger.Balance{}, args.Error(1)
}

func (m *MockLedgerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	return m.Called(ctx, customerID).Error(0)
}

func (m *MockLedgerService) EditTransaction(ctx context.Context, kind ledger.Kind, transactionID int64, amount decimal.Decimal, date time.Time) error {
	return m.Called(ctx, kind, transactionID, amount, date).Error(0)
}

type MockReportBuilder struct {
	mock.Mock
}

func (m *MockReportBuilder) BuildReport(ctx context.Context, customerID int64) (*report.Report, error) {
	args := m.Called(ctx, customerID)
	if r, ok := args.Get(0).(*report.Report); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSummaryBuilder struct {
	mock.Mock
}

func (m *MockSummaryBuilder) BuildSummary(ctx context.Context) (dashboard.Summary, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(dashboard.Summary); ok {
		return s, args.Error(1)
	}
	return dashboard.Summary{}, args.Error(1)
}
