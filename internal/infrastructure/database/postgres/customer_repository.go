package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"credit-ledger/internal/domain/customer"
	"credit-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	insertCustomerSQL = `
        INSERT INTO customers (name, phone, address, photo, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id, created_at`

	selectCustomersSQL = `
        SELECT id, name, phone, address, photo, created_at
        FROM customers
        ORDER BY id ASC`

	selectCustomerByIDSQL = `
        SELECT id, name, phone, address, photo, created_at
        FROM customers
        WHERE id = $1`

	updateCustomerSQL = `
        UPDATE customers
        SET name = COALESCE($2, name),
            phone = COALESCE($3, phone),
            address = COALESCE($4, address),
            photo = COALESCE($5, photo)
        WHERE id = $1`

	deleteCustomerSQL = `DELETE FROM customers WHERE id = $1`
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Add(ctx context.Context, cust *customer.Customer) (id int64, err error) {
	if cust == nil {
		return 0, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	defer func(start time.Time) { observe("AddCustomer", start, err) }(time.Now())

	r.logger.InfoContext(ctx, "Attempting to insert new customer", slog.String("name", cust.Name))

	err = r.db.QueryRow(ctx, insertCustomerSQL,
		cust.Name,
		cust.Phone,
		cust.Address,
		cust.Photo,
	).Scan(&cust.ID, &cust.CreatedAt)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert customer due to unique constraint violation", slog.String("phone", cust.Phone))
			return 0, translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return 0, fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return cust.ID, nil
}

func (r *CustomerRepository) GetAll(ctx context.Context) (customers []*customer.Customer, err error) {
	defer func(start time.Time) { observe("GetAllCustomers", start, err) }(time.Now())

	rows, err := r.db.Query(ctx, selectCustomersSQL)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers = make([]*customer.Customer, 0)
	for rows.Next() {
		var cust customer.Customer
		if err = scanCustomer(rows, &cust); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, &cust)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.DebugContext(ctx, "Finished listing customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, customerID int64) (cust *customer.Customer, err error) {
	defer func(start time.Time) { observe("GetCustomerByID", start, err) }(time.Now())

	var c customer.Customer
	err = scanCustomer(r.db.QueryRow(ctx, selectCustomerByIDSQL, customerID), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found", slog.Int64("customerID", customerID))
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer by ID: %w", apperrors.ErrDatabase, err)
	}
	return &c, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customerID int64, patch customer.Patch) (err error) {
	defer func(start time.Time) { observe("UpdateCustomer", start, err) }(time.Now())

	cmdTag, err := r.db.Exec(ctx, updateCustomerSQL,
		customerID,
		patch.Name,
		patch.Phone,
		patch.Address,
		patch.Photo,
	)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to update customer due to unique constraint violation", slog.Any("error", err))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, customer likely not found", slog.Int64("customerID", customerID))
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) (err error) {
	defer func(start time.Time) { observe("DeleteCustomer", start, err) }(time.Now())

	cmdTag, err := r.db.Exec(ctx, deleteCustomerSQL, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer delete executed",
		slog.Int64("customerID", customerID),
		slog.Int64("rowsAffected", cmdTag.RowsAffected()),
	)
	return nil
}

func scanCustomer(row pgx.Row, cust *customer.Customer) error {
	return row.Scan(
		&cust.ID,
		&cust.Name,
		&cust.Phone,
		&cust.Address,
		&cust.Photo,
		&cust.CreatedAt,
	)
}
