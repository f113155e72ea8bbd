package report

import (
	"context"
	"credit-ledger/internal/domain/customer"
	"credit-ledger/internal/domain/ledger"
	"credit-ledger/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Report is a customer's full history with totals. Amounts and dates are
// left unformatted for the caller.
type Report struct {
	Customer    *customer.Customer `json:"customer"`
	Loans       []*ledger.Loan     `json:"loans"`
	Payments    []*ledger.Payment  `json:"payments"`
	Totals      ledger.Balance     `json:"totals"`
	GeneratedAt time.Time          `json:"generatedAt"`
}

type Service struct {
	store  ledger.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewService(store ledger.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With("component", "ReportService"),
		now:    time.Now,
	}
}

// BuildReport reads the customer and its transactions concurrently. Loans
// and payments are ordered by date, then id.
func (s *Service) BuildReport(ctx context.Context, customerID int64) (*Report, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: invalid customer ID %d", apperrors.ErrInvalidArgument, customerID)
	}
	logCtx := s.logger.With(slog.Int64("customerID", customerID))

	var (
		cust     *customer.Customer
		loans    []*ledger.Loan
		payments []*ledger.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cust, err = s.store.Customers().GetByID(gctx, customerID)
		return err
	})
	g.Go(func() error {
		all, err := s.store.Loans().GetAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load loans: %w", err)
		}
		loans = ledger.LoansOf(all, customerID)
		return nil
	})
	g.Go(func() error {
		all, err := s.store.Payments().GetAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load payments: %w", err)
		}
		payments = ledger.PaymentsOf(all, customerID)
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Report requested for unknown customer")
			return nil, fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, customerID)
		}
		logCtx.ErrorContext(ctx, "Failed to build report", slog.Any("error", err))
		return nil, fmt.Errorf("failed to build report for customer %d: %w", customerID, err)
	}

	sort.SliceStable(loans, func(i, j int) bool {
		return before(loans[i].Date, loans[i].ID, loans[j].Date, loans[j].ID)
	})
	sort.SliceStable(payments, func(i, j int) bool {
		return before(payments[i].Date, payments[i].ID, payments[j].Date, payments[j].ID)
	})

	logCtx.DebugContext(ctx, "Report built", slog.Int("loans", len(loans)), slog.Int("payments", len(payments)))
	return &Report{
		Customer:    cust,
		Loans:       loans,
		Payments:    payments,
		Totals:      ledger.NewBalance(loans, payments),
		GeneratedAt: s.now(),
	}, nil
}

func before(di time.Time, idi int64, dj time.Time, idj int64) bool {
	if !di.Equal(dj) {
		return di.Before(dj)
	}
	return idi < idj
}
