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
	"github.com/shopspring/decimal"
)

const (
	insertLoanSQL = `
        INSERT INTO loans (customer_id, product, amount, date, created_at, updated_at)
        VALUES ($1, $2, $3::numeric, $4, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	selectLoansSQL = `
        SELECT id, customer_id, product, amount::text, date, created_at, updated_at
        FROM loans
        ORDER BY id ASC`

	selectLoanByIDSQL = `
        SELECT id, customer_id, product, amount::text, date, created_at, updated_at
        FROM loans
        WHERE id = $1`

	updateLoanSQL = `
        UPDATE loans
        SET product = COALESCE($2, product),
            amount = COALESCE($3::numeric, amount),
            date = COALESCE($4::date, date),
            updated_at = NOW()
        WHERE id = $1`

	deleteLoanSQL = `DELETE FROM loans WHERE id = $1`
)

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ ledger.LoanRepository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	return &LoanRepository{db: db, logger: logger.With("component", "LoanRepository")}
}

func (r *LoanRepository) Add(ctx context.Context, l *ledger.Loan) (id int64, err error) {
	if l == nil {
		return 0, fmt.Errorf("%w: loan cannot be nil", apperrors.ErrInvalidArgument)
	}
	defer func(start time.Time) { observe("AddLoan", start, err) }(time.Now())

	err = r.db.QueryRow(ctx, insertLoanSQL,
		l.CustomerID,
		l.Product,
		l.Amount.String(),
		l.Date,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert loan", slog.Int64("customerID", l.CustomerID), slog.Any("error", err))
		return 0, translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Loan inserted successfully", slog.Int64("loanID", l.ID))
	return l.ID, nil
}

func (r *LoanRepository) GetAll(ctx context.Context) (loans []*ledger.Loan, err error) {
	defer func(start time.Time) { observe("GetAllLoans", start, err) }(time.Now())

	rows, err := r.db.Query(ctx, selectLoansSQL)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query loans", slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	loans = make([]*ledger.Loan, 0)
	for rows.Next() {
		var l ledger.Loan
		if err = scanLoan(rows, &l); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan loan row", slog.Any("error", err))
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		loans = append(loans, &l)
	}
	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating loan rows", slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return loans, nil
}

func (r *LoanRepository) GetByID(ctx context.Context, loanID int64) (l *ledger.Loan, err error) {
	defer func(start time.Time) { observe("GetLoanByID", start, err) }(time.Now())

	var found ledger.Loan
	err = scanLoan(r.db.QueryRow(ctx, selectLoanByIDSQL, loanID), &found)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Loan not found", slog.Int64("loanID", loanID))
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get loan", slog.Int64("loanID", loanID), slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &found, nil
}

func (r *LoanRepository) Update(ctx context.Context, loanID int64, patch ledger.TransactionPatch) (err error) {
	defer func(start time.Time) { observe("UpdateLoan", start, err) }(time.Now())

	cmdTag, err := r.db.Exec(ctx, updateLoanSQL, loanID, patch.Product, amountArg(patch.Amount), patch.Date)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update loan", slog.Int64("loanID", loanID), slog.Any("error", err))
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, loan likely not found", slog.Int64("loanID", loanID))
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *LoanRepository) Delete(ctx context.Context, loanID int64) (err error) {
	defer func(start time.Time) { observe("DeleteLoan", start, err) }(time.Now())

	if _, err = r.db.Exec(ctx, deleteLoanSQL, loanID); err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete loan", slog.Int64("loanID", loanID), slog.Any("error", err))
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func scanLoan(row pgx.Row, l *ledger.Loan) error {
	var amount string
	if err := row.Scan(&l.ID, &l.CustomerID, &l.Product, &amount, &l.Date, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return err
	}
	return parseAmount(amount, &l.Amount)
}

func parseAmount(text string, dst *decimal.Decimal) error {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return fmt.Errorf("invalid stored amount %q: %w", text, err)
	}
	*dst = d
	return nil
}

// amountArg renders an optional amount as a nullable numeric literal.
func amountArg(amount *decimal.Decimal) *string {
	if amount == nil {
		return nil
	}
	s := amount.String()
	return &s
}
