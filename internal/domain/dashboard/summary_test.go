package dashboard_test

import (
	"context"
	"credit-ledger/internal/domain/customer"
	"credit-ledger/internal/domain/dashboard"
	"credit-ledger/internal/domain/ledger"
	"credit-ledger/internal/infrastructure/database/memory"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestBuildSummary_Empty(t *testing.T) {
	agg := dashboard.NewAggregator(memory.New(), discardLogger)

	s, err := agg.BuildSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, s.CustomerCount)
	assert.True(t, s.TotalLoans.IsZero())
	assert.True(t, s.TotalPayments.IsZero())
	assert.True(t, s.OutstandingBalance.IsZero())
}

func TestBuildSummary_Totals(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	a, _ := store.Customers().Add(ctx, customer.NewCustomer("A", "0711111111", "", ""))
	b, _ := store.Customers().Add(ctx, customer.NewCustomer("B", "0722222222", "", ""))
	_, _ = store.Loans().Add(ctx, &ledger.Loan{CustomerID: a, Product: "Oil", Amount: decimal.NewFromInt(50000)})
	_, _ = store.Loans().Add(ctx, &ledger.Loan{CustomerID: b, Product: "Soap", Amount: decimal.RequireFromString("1500.50")})
	_, _ = store.Payments().Add(ctx, &ledger.Payment{CustomerID: a, Amount: decimal.NewFromInt(20000)})

	s, err := dashboard.NewAggregator(store, discardLogger).BuildSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, s.CustomerCount)
	assert.True(t, s.TotalLoans.Equal(decimal.RequireFromString("51500.50")))
	assert.True(t, s.TotalPayments.Equal(decimal.NewFromInt(20000)))
	assert.True(t, s.OutstandingBalance.Equal(decimal.RequireFromString("31500.50")))
}

type brokenPayments struct{ ledger.PaymentRepository }

func (brokenPayments) GetAll(context.Context) ([]*ledger.Payment, error) {
	return nil, errors.New("connection refused")
}

type brokenStore struct{ *memory.Store }

func (s brokenStore) Payments() ledger.PaymentRepository {
	return brokenPayments{s.Store.Payments()}
}

func TestBuildSummary_StoreError(t *testing.T) {
	agg := dashboard.NewAggregator(brokenStore{memory.New()}, discardLogger)

	_, err := agg.BuildSummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load payments")
}
