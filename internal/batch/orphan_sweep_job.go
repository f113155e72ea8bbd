package batch

import (
	"context"
	"credit-ledger/internal/domain/ledger"
	"credit-ledger/internal/infrastructure/monitoring"
	"fmt"
	"log/slog"
	"time"
)

// OrphanSweepJob deletes loans and payments whose customer no longer
// exists, finishing cascades that failed part way.
type OrphanSweepJob struct {
	store  ledger.Store
	logger *slog.Logger
}

func NewOrphanSweepJob(store ledger.Store, logger *slog.Logger) *OrphanSweepJob {
	if store == nil || logger == nil {
		panic("OrphanSweepJob dependencies cannot be nil")
	}
	return &OrphanSweepJob{
		store:  store,
		logger: logger.With("job", "OrphanSweep"),
	}
}

func (j *OrphanSweepJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting orphan sweep job.")

	// Transactions are read before customers: a loan read here was created
	// after its customer, so a live customer always shows up in the later
	// read and its loans are never mistaken for orphans.
	loans, err := j.store.Loans().GetAll(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list loans, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list loans: %w", err)
	}
	payments, err := j.store.Payments().GetAll(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list payments, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list payments: %w", err)
	}
	customers, err := j.store.Customers().GetAll(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list customers, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list customers: %w", err)
	}

	known := make(map[int64]struct{}, len(customers))
	for _, c := range customers {
		known[c.ID] = struct{}{}
	}

	var loansRemoved, paymentsRemoved, errorCount int
	for _, l := range loans {
		if _, ok := known[l.CustomerID]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := j.store.Loans().Delete(ctx, l.ID); err != nil {
			j.logger.ErrorContext(ctx, "Failed to delete orphan loan",
				slog.Int64("loanID", l.ID), slog.Int64("customerID", l.CustomerID), slog.Any("error", err))
			errorCount++
			continue
		}
		loansRemoved++
	}
	for _, p := range payments {
		if _, ok := known[p.CustomerID]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := j.store.Payments().Delete(ctx, p.ID); err != nil {
			j.logger.ErrorContext(ctx, "Failed to delete orphan payment",
				slog.Int64("paymentID", p.ID), slog.Int64("customerID", p.CustomerID), slog.Any("error", err))
			errorCount++
			continue
		}
		paymentsRemoved++
	}

	monitoring.RecordOrphansSwept(monitoring.OrphanKindLoan, loansRemoved)
	monitoring.RecordOrphansSwept(monitoring.OrphanKindPayment, paymentsRemoved)

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("loans_scanned", len(loans)),
		slog.Int("payments_scanned", len(payments)),
		slog.Int("orphan_loans_removed", loansRemoved),
		slog.Int("orphan_payments_removed", paymentsRemoved),
		slog.Int("errors_encountered", errorCount),
	)
	if errorCount > 0 {
		summaryLog.WarnContext(ctx, "Orphan sweep job finished with errors.")
		return fmt.Errorf("job completed with %d errors", errorCount)
	}
	summaryLog.InfoContext(ctx, "Orphan sweep job finished successfully.")
	return nil
}
