package postgres

import (
	"context"
	"credit-ledger/internal/domain/ledger"
	"credit-ledger/internal/pkg/apperrors"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loanColumns = []string{"id", "customer_id", "product", "amount", "date", "created_at", "updated_at"}

func setupLoanRepo(t *testing.T) (context.Context, *LoanRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}
	return context.Background(), NewLoanRepository(mockPool, logger), mockPool
}

func TestLoanRepository_Add(t *testing.T) {
	ctx, repo, mockPool := setupLoanRepo(t)
	defer mockPool.Close()

	loanDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	newLoan := &ledger.Loan{CustomerID: 1, Product: "Sugar", Amount: decimal.NewFromInt(50000), Date: loanDate}

	mockPool.ExpectQuery(regexp.QuoteMeta(insertLoanSQL)).
		WithArgs(int64(1), "Sugar", "50000", loanDate).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))

	id, err := repo.Add(ctx, newLoan)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.Equal(t, now, newLoan.CreatedAt)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestLoanRepository_GetAll(t *testing.T) {
	ctx, repo, mockPool := setupLoanRepo(t)
	defer mockPool.Close()

	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mockPool.ExpectQuery(regexp.QuoteMeta(selectLoansSQL)).
		WillReturnRows(pgxmock.NewRows(loanColumns).
			AddRow(int64(1), int64(1), "Sugar", "50000.00", d, d, d).
			AddRow(int64(2), int64(2), "Oil", "1250.50", d, d, d))

	loans, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.True(t, loans[0].Amount.Equal(decimal.NewFromInt(50000)))
	assert.True(t, loans[1].Amount.Equal(decimal.RequireFromString("1250.5")))
	assert.Equal(t, "Oil", loans[1].Product)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestLoanRepository_GetAllBadAmount(t *testing.T) {
	ctx, repo, mockPool := setupLoanRepo(t)
	defer mockPool.Close()

	d := time.Now()
	mockPool.ExpectQuery(regexp.QuoteMeta(selectLoansSQL)).
		WillReturnRows(pgxmock.NewRows(loanColumns).AddRow(int64(1), int64(1), "Sugar", "not-a-number", d, d, d))

	_, err := repo.GetAll(ctx)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
}

func TestLoanRepository_GetByIDNotFound(t *testing.T) {
	ctx, repo, mockPool := setupLoanRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(selectLoanByIDSQL)).
		WithArgs(int64(8)).
		WillReturnRows(pgxmock.NewRows(loanColumns))

	_, err := repo.GetByID(ctx, 8)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestLoanRepository_Update(t *testing.T) {
	amount := decimal.NewFromInt(60000)
	d := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctx, repo, mockPool := setupLoanRepo(t)
		defer mockPool.Close()

		mockPool.ExpectExec(regexp.QuoteMeta(updateLoanSQL)).
			WithArgs(int64(1), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Update(ctx, 1, ledger.TransactionPatch{Amount: &amount, Date: &d})
		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
	})

	t.Run("not found", func(t *testing.T) {
		ctx, repo, mockPool := setupLoanRepo(t)
		defer mockPool.Close()

		mockPool.ExpectExec(regexp.QuoteMeta(updateLoanSQL)).
			WithArgs(int64(2), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Update(ctx, 2, ledger.TransactionPatch{Amount: &amount, Date: &d})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestLoanRepository_DeleteError(t *testing.T) {
	ctx, repo, mockPool := setupLoanRepo(t)
	defer mockPool.Close()

	mockPool.ExpectExec(regexp.QuoteMeta(deleteLoanSQL)).
		WithArgs(int64(3)).
		WillReturnError(errors.New("connection reset"))

	err := repo.Delete(ctx, 3)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAmountArg(t *testing.T) {
	assert.Nil(t, amountArg(nil))
	amount := decimal.RequireFromString("1250.50")
	got := amountArg(&amount)
	require.NotNil(t, got)
	assert.Equal(t, "1250.5", *got)
}
