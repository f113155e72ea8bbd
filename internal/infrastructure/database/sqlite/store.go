// Package sqlite is the single-file record store used when the shop runs
// offline. Amounts are stored as decimal text and dates as YYYY-MM-DD.
package sqlite

import (
	"context"
	"credit-ledger/internal/domain/customer"
	"credit-ledger/internal/domain/ledger"
	"credit-ledger/internal/pkg/apperrors"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const timestampLayout = time.RFC3339Nano

type Store struct {
	db        *sql.DB
	customers *CustomerRepository
	loans     *LoanRepository
	payments  *PaymentRepository
}

var _ ledger.Store = (*Store)(nil)

// Open creates the database file if needed and applies migrations.
func Open(ctx context.Context, dbPath string, logger *slog.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite path is empty in configuration")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time; readers queue behind it.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info("Opened SQLite record store", "path", dbPath)
	return &Store{
		db:        db,
		customers: &CustomerRepository{db: db, logger: logger.With("component", "SQLiteCustomerRepository")},
		loans:     &LoanRepository{db: db, logger: logger.With("component", "SQLiteLoanRepository")},
		payments:  &PaymentRepository{db: db, logger: logger.With("component", "SQLitePaymentRepository")},
	}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Customers() customer.Repository { return s.customers }

func (s *Store) Loans() ledger.LoanRepository { return s.loans }

func (s *Store) Payments() ledger.PaymentRepository { return s.payments }

func translateError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var sqlErr *msqlite.Error
	if errors.As(err, &sqlErr) && sqlErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, sqlErr.Error())
	}
	return apperrors.WrapDatabaseError(err, "sqlite")
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(ledger.DateLayout, s, time.UTC)
}

// The arg helpers turn optional patch fields into NULL or a plain value for
// the COALESCE updates.
func textArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func dateArg(d *time.Time) any {
	if d == nil {
		return nil
	}
	return d.Format(ledger.DateLayout)
}

func amountArg(a *decimal.Decimal) any {
	if a == nil {
		return nil
	}
	return a.String()
}

type scanner interface {
	Scan(dest ...any) error
}

type CustomerRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *CustomerRepository) Add(ctx context.Context, cust *customer.Customer) (int64, error) {
	if cust == nil {
		return 0, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	if cust.CreatedAt.IsZero() {
		cust.CreatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (name, phone, address, photo, created_at) VALUES (?, ?, ?, ?, ?)`,
		cust.Name, cust.Phone, cust.Address, cust.Photo, formatTimestamp(cust.CreatedAt),
	)
	if err != nil {
		r.logger.WarnContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return 0, translateError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, translateError(err)
	}
	cust.ID = id
	return id, nil
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]*customer.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, phone, address, photo, created_at FROM customers ORDER BY id`)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, translateError(err)
	}
	defer rows.Close()

	out := make([]*customer.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, translateError(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, phone, address, photo, created_at FROM customers WHERE id = ?`, customerID)
	c, err := scanCustomer(row)
	if err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customerID int64, patch customer.Patch) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET name = COALESCE(?, name),
		    phone = COALESCE(?, phone),
		    address = COALESCE(?, address),
		    photo = COALESCE(?, photo)
		WHERE id = ?`,
		textArg(patch.Name), textArg(patch.Phone), textArg(patch.Address), textArg(patch.Photo), customerID,
	)
	return checkUpdated(res, err)
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, customerID); err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete customer", slog.Int64("customerID", customerID), slog.Any("error", err))
		return translateError(err)
	}
	return nil
}

func scanCustomer(row scanner) (*customer.Customer, error) {
	var (
		c       customer.Customer
		created string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Photo, &created); err != nil {
		return nil, err
	}
	t, err := parseTimestamp(created)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", created, err)
	}
	c.CreatedAt = t
	return &c, nil
}

func checkUpdated(res sql.Result, err error) error {
	if err != nil {
		return translateError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translateError(err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type LoanRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *LoanRepository) Add(ctx context.Context, l *ledger.Loan) (int64, error) {
	if l == nil {
		return 0, fmt.Errorf("%w: loan cannot be nil", apperrors.ErrInvalidArgument)
	}
	now := time.Now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO loans (customer_id, product, amount, date, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		l.CustomerID, l.Product, l.Amount.String(), l.Date.Format(ledger.DateLayout), formatTimestamp(now), formatTimestamp(now),
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert loan", slog.Any("error", err))
		return 0, translateError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, translateError(err)
	}
	l.ID, l.CreatedAt, l.UpdatedAt = id, now, now
	return id, nil
}

func (r *LoanRepository) GetAll(ctx context.Context) ([]*ledger.Loan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, customer_id, product, amount, date, created_at, updated_at FROM loans ORDER BY id`)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query loans", slog.Any("error", err))
		return nil, translateError(err)
	}
	defer rows.Close()

	out := make([]*ledger.Loan, 0)
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, translateError(err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func (r *LoanRepository) GetByID(ctx context.Context, loanID int64) (*ledger.Loan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, customer_id, product, amount, date, created_at, updated_at FROM loans WHERE id = ?`, loanID)
	l, err := scanLoan(row)
	if err != nil {
		return nil, translateError(err)
	}
	return l, nil
}

func (r *LoanRepository) Update(ctx context.Context, loanID int64, patch ledger.TransactionPatch) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE loans
		SET product = COALESCE(?, product),
		    amount = COALESCE(?, amount),
		    date = COALESCE(?, date),
		    updated_at = ?
		WHERE id = ?`,
		textArg(patch.Product), amountArg(patch.Amount), dateArg(patch.Date), formatTimestamp(time.Now()), loanID,
	)
	return checkUpdated(res, err)
}

func (r *LoanRepository) Delete(ctx context.Context, loanID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE id = ?`, loanID); err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete loan", slog.Int64("loanID", loanID), slog.Any("error", err))
		return translateError(err)
	}
	return nil
}

func scanLoan(row scanner) (*ledger.Loan, error) {
	var (
		l                          ledger.Loan
		amount, date, created, upd string
	)
	if err := row.Scan(&l.ID, &l.CustomerID, &l.Product, &amount, &date, &created, &upd); err != nil {
		return nil, err
	}
	var err error
	if l.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	if l.Date, err = parseDate(date); err != nil {
		return nil, fmt.Errorf("invalid stored date %q: %w", date, err)
	}
	if l.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = parseTimestamp(upd); err != nil {
		return nil, err
	}
	return &l, nil
}

type PaymentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *PaymentRepository) Add(ctx context.Context, p *ledger.Payment) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("%w: payment cannot be nil", apperrors.ErrInvalidArgument)
	}
	now := time.Now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (customer_id, amount, date, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.CustomerID, p.Amount.String(), p.Date.Format(ledger.DateLayout), formatTimestamp(now), formatTimestamp(now),
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert payment", slog.Any("error", err))
		return 0, translateError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, translateError(err)
	}
	p.ID, p.CreatedAt, p.UpdatedAt = id, now, now
	return id, nil
}

func (r *PaymentRepository) GetAll(ctx context.Context) ([]*ledger.Payment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, customer_id, amount, date, created_at, updated_at FROM payments ORDER BY id`)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query payments", slog.Any("error", err))
		return nil, translateError(err)
	}
	defer rows.Close()

	out := make([]*ledger.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, translateError(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, paymentID int64) (*ledger.Payment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, customer_id, amount, date, created_at, updated_at FROM payments WHERE id = ?`, paymentID)
	p, err := scanPayment(row)
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

func (r *PaymentRepository) Update(ctx context.Context, paymentID int64, patch ledger.TransactionPatch) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET amount = COALESCE(?, amount),
		    date = COALESCE(?, date),
		    updated_at = ?
		WHERE id = ?`,
		amountArg(patch.Amount), dateArg(patch.Date), formatTimestamp(time.Now()), paymentID,
	)
	return checkUpdated(res, err)
}

func (r *PaymentRepository) Delete(ctx context.Context, paymentID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, paymentID); err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete payment", slog.Int64("paymentID", paymentID), slog.Any("error", err))
		return translateError(err)
	}
	return nil
}

func scanPayment(row scanner) (*ledger.Payment, error) {
	var (
		p                          ledger.Payment
		amount, date, created, upd string
	)
	if err := row.Scan(&p.ID, &p.CustomerID, &amount, &date, &created, &upd); err != nil {
		return nil, err
	}
	var err error
	if p.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	if p.Date, err = parseDate(date); err != nil {
		return nil, fmt.Errorf("invalid stored date %q: %w", date, err)
	}
	if p.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTimestamp(upd); err != nil {
		return nil, err
	}
	return &p, nil
}
