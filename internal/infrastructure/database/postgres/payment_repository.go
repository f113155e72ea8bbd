package postgres

import (
	"context"
	"credit-ledger/internal/domain/ledger"
	"credit-ledger/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	insertPaymentSQL = `
        INSERT INTO payments (customer_id, amount, date, created_at, updated_at)
        VALUES ($1, $2::numeric, $3, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	selectPaymentsSQL = `
        SELECT id, customer_id, amount::text, date, created_at, updated_at
        FROM payments
        ORDER BY id ASC`

	selectPaymentByIDSQL = `
        SELECT id, customer_id, amount::text, date, created_at, updated_at
        FROM payments
        WHERE id = $1`

	updatePaymentSQL = `
        UPDATE payments
        SET amount = COALESCE($2::numeric, amount),
            date = COALESCE($3::date, date),
            updated_at = NOW()
        WHERE id = $1`

	deletePaymentSQL = `DELETE FROM payments WHERE id = $1`
)

type PaymentRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ ledger.PaymentRepository = (*PaymentRepository)(nil)

func NewPaymentRepository(db DBPool, logger *slog.Logger) *PaymentRepository {
	return &PaymentRepository{db: db, logger: logger.With("component", "PaymentRepository")}
}

func (r *PaymentRepository) Add(ctx context.Context, p *ledger.Payment) (id int64, err error) {
	if p == nil {
		return 0, fmt.Errorf("%w: payment cannot be nil", apperrors.ErrInvalidArgument)
	}
	defer func(start time.Time) { observe("AddPayment", start, err) }(time.Now())

	err = r.db.QueryRow(ctx, insertPaymentSQL,
		p.CustomerID,
		p.Amount.String(),
		p.Date,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert payment", slog.Int64("customerID", p.CustomerID), slog.Any("error", err))
		return 0, translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Payment inserted successfully", slog.Int64("paymentID", p.ID))
	return p.ID, nil
}

func (r *PaymentRepository) GetAll(ctx context.Context) (payments []*ledger.Payment, err error) {
	defer func(start time.Time) { observe("GetAllPayments", start, err) }(time.Now())

	rows, err := r.db.Query(ctx, selectPaymentsSQL)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query payments", slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	payments = make([]*ledger.Payment, 0)
	for rows.Next() {
		var p ledger.Payment
		if err = scanPayment(rows, &p); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan payment row", slog.Any("error", err))
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		payments = append(payments, &p)
	}
	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating payment rows", slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return payments, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, paymentID int64) (p *ledger.Payment, err error) {
	defer func(start time.Time) { observe("GetPaymentByID", start, err) }(time.Now())

	var found ledger.Payment
	err = scanPayment(r.db.QueryRow(ctx, selectPaymentByIDSQL, paymentID), &found)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Payment not found", slog.Int64("paymentID", paymentID))
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get payment", slog.Int64("paymentID", paymentID), slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &found, nil
}

// Update ignores patch.Product; payments have none.
func (r *PaymentRepository) Update(ctx context.Context, paymentID int64, patch ledger.TransactionPatch) (err error) {
	defer func(start time.Time) { observe("UpdatePayment", start, err) }(time.Now())

	cmdTag, err := r.db.Exec(ctx, updatePaymentSQL, paymentID, amountArg(patch.Amount), patch.Date)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update payment", slog.Int64("paymentID", paymentID), slog.Any("error", err))
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, payment likely not found", slog.Int64("paymentID", paymentID))
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, paymentID int64) (err error) {
	defer func(start time.Time) { observe("DeletePayment", start, err) }(time.Now())

	if _, err = r.db.Exec(ctx, deletePaymentSQL, paymentID); err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete payment", slog.Int64("paymentID", paymentID), slog.Any("error", err))
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func scanPayment(row pgx.Row, p *ledger.Payment) error {
	var amount string
	if err := row.Scan(&p.ID, &p.CustomerID, &amount, &p.Date, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}
	return parseAmount(amount, &p.Amount)
}
