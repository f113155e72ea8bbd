package dashboard

import (
	"context"
	"credit-ledger/internal/domain/ledger"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type Summary struct {
	CustomerCount      int             `json:"customerCount"`
	TotalLoans         decimal.Decimal `json:"totalLoans"`
	TotalPayments      decimal.Decimal `json:"totalPayments"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
}

type Aggregator struct {
	store  ledger.Store
	logger *slog.Logger
}

func NewAggregator(store ledger.Store, logger *slog.Logger) *Aggregator {
	return &Aggregator{store: store, logger: logger.With("component", "DashboardAggregator")}
}

// BuildSummary scans every collection on each call; nothing is cached.
func (a *Aggregator) BuildSummary(ctx context.Context) (Summary, error) {
	var (
		customerCount int
		totalLoans    decimal.Decimal
		totalPayments decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		customers, err := a.store.Customers().GetAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load customers: %w", err)
		}
		customerCount = len(customers)
		return nil
	})
	g.Go(func() error {
		loans, err := a.store.Loans().GetAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load loans: %w", err)
		}
		totalLoans = ledger.SumLoans(loans)
		return nil
	})
	g.Go(func() error {
		payments, err := a.store.Payments().GetAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load payments: %w", err)
		}
		totalPayments = ledger.SumPayments(payments)
		return nil
	})
	if err := g.Wait(); err != nil {
		a.logger.ErrorContext(ctx, "Failed to build dashboard summary", slog.Any("error", err))
		return Summary{}, err
	}

	return Summary{
		CustomerCount:      customerCount,
		TotalLoans:         totalLoans,
		TotalPayments:      totalPayments,
		OutstandingBalance: totalLoans.Sub(totalPayments),
	}, nil
}
