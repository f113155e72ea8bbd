package ledger

import (
	"context"
	"credit-ledger/internal/domain/customer"
	"credit-ledger/internal/event"
	"credit-ledger/internal/infrastructure/monitoring"
	"credit-ledger/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type LedgerService interface {
	RegisterCustomer(ctx context.Context, name, phone, address, photo string) (*customer.Customer, error)

	GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error)

	ListCustomers(ctx context.Context) ([]*customer.Customer, error)

	// SearchCustomers matches the query against names (case-insensitive)
	// and phone numbers.
	SearchCustomers(ctx context.Context, query string) ([]*customer.Customer, error)

	RecordLoan(ctx context.Context, customerID int64, product string, amount decimal.Decimal, date time.Time) (*Loan, error)

	RecordPayment(ctx context.Context, customerID int64, amount decimal.Decimal, date time.Time) (*Payment, error)

	GetBalance(ctx context.Context, customerID int64) (Balance, error)

	// DeleteCustomer removes the customer, then its loans, then its
	// payments. The steps are not atomic; a failure part way leaves
	// orphans behind for the sweep job.
	DeleteCustomer(ctx context.Context, customerID int64) error

	EditTransaction(ctx context.Context, kind Kind, transactionID int64, amount decimal.Decimal, date time.Time) error
}

type ledgerServiceImpl struct {
	store     Store
	publisher event.EventPublisher
	logger    *slog.Logger

	// mu serializes the read-check-write sequences of the write paths.
	mu sync.Mutex
}

var _ LedgerService = (*ledgerServiceImpl)(nil)

// NewLedgerService wires the service to a record store. publisher may be nil.
func NewLedgerService(store Store, publisher event.EventPublisher, logger *slog.Logger) LedgerService {
	if store == nil {
		panic("Store cannot be nil for LedgerService")
	}
	return &ledgerServiceImpl{
		store:     store,
		publisher: publisher,
		logger:    logger.With("component", "LedgerService"),
	}
}

func (s *ledgerServiceImpl) RegisterCustomer(ctx context.Context, name, phone, address, photo string) (*customer.Customer, error) {
	cust := customer.NewCustomer(name, phone, address, photo)
	if err := cust.Validate(); err != nil {
		s.logger.WarnContext(ctx, "Rejected customer registration", slog.Any("error", err))
		return nil, err
	}

	if err := s.registerLocked(ctx, cust); err != nil {
		return nil, err
	}

	monitoring.RecordCustomerRegistered()
	s.logger.InfoContext(ctx, "Customer registered", slog.Int64("customerID", cust.ID))
	s.notify(ctx, event.RoutingKeyCustomerRegistered, func(p event.EventPublisher) error {
		return p.PublishCustomerRegistered(ctx, event.CustomerRegisteredEvent{
			CustomerID: cust.ID,
			Name:       cust.Name,
			Phone:      cust.Phone,
			Address:    cust.Address,
			Timestamp:  time.Now(),
		})
	})
	return cust, nil
}

func (s *ledgerServiceImpl) registerLocked(ctx context.Context, cust *customer.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.Customers().GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load customers for duplicate check", slog.Any("error", err))
		return fmt.Errorf("failed to check for duplicate phone: %w", err)
	}
	for _, c := range existing {
		if c.Phone == cust.Phone {
			s.logger.WarnContext(ctx, "Phone number already registered", slog.Int64("existingCustomerID", c.ID))
			return fmt.Errorf("%w: phone number %s is already registered", apperrors.ErrAlreadyExists, cust.Phone)
		}
	}

	if _, err := s.store.Customers().Add(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save customer", slog.Any("error", err))
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

func (s *ledgerServiceImpl) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: invalid customer ID %d", apperrors.ErrInvalidArgument, customerID)
	}
	cust, err := s.store.Customers().GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, customerID)
		}
		s.logger.ErrorContext(ctx, "Failed to get customer", slog.Int64("customerID", customerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}
	return cust, nil
}

func (s *ledgerServiceImpl) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	customers, err := s.store.Customers().GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *ledgerServiceImpl) SearchCustomers(ctx context.Context, query string) ([]*customer.Customer, error) {
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	matches := make([]*customer.Customer, 0, len(customers))
	for _, c := range customers {
		if c.Matches(query) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

func (s *ledgerServiceImpl) RecordLoan(ctx context.Context, customerID int64, product string, amount decimal.Decimal, date time.Time) (*Loan, error) {
	product = strings.TrimSpace(product)
	if err := validateCustomerID(customerID); err != nil {
		return nil, err
	}
	if product == "" {
		return nil, apperrors.NewValidationError("product", "product is required")
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	newLoan := &Loan{
		CustomerID: customerID,
		Product:    product,
		Amount:     amount,
		Date:       TruncateDate(date),
	}
	if err := s.recordLoanLocked(ctx, newLoan); err != nil {
		return nil, err
	}

	monitoring.RecordLoanRecorded()
	s.logger.InfoContext(ctx, "Loan recorded",
		slog.Int64("loanID", newLoan.ID),
		slog.Int64("customerID", customerID),
		slog.String("amount", amount.String()),
	)
	s.notify(ctx, event.RoutingKeyLoanRecorded, func(p event.EventPublisher) error {
		return p.PublishLoanRecorded(ctx, event.LoanRecordedEvent{
			LoanID:     newLoan.ID,
			CustomerID: customerID,
			Product:    newLoan.Product,
			Amount:     newLoan.Amount,
			Date:       newLoan.Date.Format(DateLayout),
			Timestamp:  time.Now(),
		})
	})
	return newLoan, nil
}

func (s *ledgerServiceImpl) recordLoanLocked(ctx context.Context, newLoan *Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.GetCustomer(ctx, newLoan.CustomerID); err != nil {
		return err
	}
	if _, err := s.store.Loans().Add(ctx, newLoan); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save loan", slog.Any("error", err))
		return fmt.Errorf("failed to save loan: %w", err)
	}
	return nil
}

func (s *ledgerServiceImpl) RecordPayment(ctx context.Context, customerID int64, amount decimal.Decimal, date time.Time) (*Payment, error) {
	if err := validateCustomerID(customerID); err != nil {
		monitoring.RecordPayment(monitoring.PaymentStatusInvalid)
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		monitoring.RecordPayment(monitoring.PaymentStatusInvalid)
		return nil, err
	}
	if err := validateDate(date); err != nil {
		monitoring.RecordPayment(monitoring.PaymentStatusInvalid)
		return nil, err
	}

	newPayment := &Payment{
		CustomerID: customerID,
		Amount:     amount,
		Date:       TruncateDate(date),
	}
	remaining, err := s.recordPaymentLocked(ctx, newPayment)
	if err != nil {
		monitoring.RecordPayment(paymentStatus(err))
		return nil, err
	}

	monitoring.RecordPayment(monitoring.PaymentStatusAccepted)
	s.logger.InfoContext(ctx, "Payment recorded",
		slog.Int64("paymentID", newPayment.ID),
		slog.Int64("customerID", customerID),
		slog.String("amount", amount.String()),
		slog.String("balance", remaining.String()),
	)
	s.notify(ctx, event.RoutingKeyPaymentRecorded, func(p event.EventPublisher) error {
		return p.PublishPaymentRecorded(ctx, event.PaymentRecordedEvent{
			PaymentID:  newPayment.ID,
			CustomerID: customerID,
			Amount:     newPayment.Amount,
			Balance:    remaining,
			Date:       newPayment.Date.Format(DateLayout),
			Timestamp:  time.Now(),
		})
	})
	return newPayment, nil
}

// recordPaymentLocked returns the balance left after the payment.
func (s *ledgerServiceImpl) recordPaymentLocked(ctx context.Context, newPayment *Payment) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.GetCustomer(ctx, newPayment.CustomerID); err != nil {
		return decimal.Zero, err
	}

	balance, err := s.balanceOf(ctx, newPayment.CustomerID)
	if err != nil {
		return decimal.Zero, err
	}

	if !balance.Balance.IsPositive() {
		s.logger.WarnContext(ctx, "Payment rejected, customer has no outstanding balance",
			slog.Int64("customerID", newPayment.CustomerID))
		return decimal.Zero, fmt.Errorf("%w: customer %d", apperrors.ErrAlreadySettled, newPayment.CustomerID)
	}
	if newPayment.Amount.GreaterThan(balance.Balance) {
		s.logger.WarnContext(ctx, "Payment rejected, amount exceeds balance",
			slog.Int64("customerID", newPayment.CustomerID),
			slog.String("amount", newPayment.Amount.String()),
			slog.String("balance", balance.Balance.String()),
		)
		return decimal.Zero, fmt.Errorf("%w: payment %s exceeds balance %s",
			apperrors.ErrOverpayment, newPayment.Amount.String(), balance.Balance.String())
	}

	if _, err := s.store.Payments().Add(ctx, newPayment); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save payment", slog.Any("error", err))
		return decimal.Zero, fmt.Errorf("failed to save payment: %w", err)
	}
	return balance.Balance.Sub(newPayment.Amount), nil
}

func paymentStatus(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrOverpayment):
		return monitoring.PaymentStatusOverpayment
	case errors.Is(err, apperrors.ErrAlreadySettled):
		return monitoring.PaymentStatusSettled
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidArgument):
		return monitoring.PaymentStatusInvalid
	default:
		return monitoring.PaymentStatusStoreFailure
	}
}

func (s *ledgerServiceImpl) GetBalance(ctx context.Context, customerID int64) (Balance, error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return Balance{}, err
	}
	return s.balanceOf(ctx, customerID)
}

func (s *ledgerServiceImpl) balanceOf(ctx context.Context, customerID int64) (Balance, error) {
	loans, payments, err := s.transactionsOf(ctx, customerID)
	if err != nil {
		return Balance{}, err
	}
	return NewBalance(loans, payments), nil
}

func (s *ledgerServiceImpl) transactionsOf(ctx context.Context, customerID int64) ([]*Loan, []*Payment, error) {
	loans, err := s.store.Loans().GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load loans", slog.Any("error", err))
		return nil, nil, fmt.Errorf("failed to load loans: %w", err)
	}
	payments, err := s.store.Payments().GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load payments", slog.Any("error", err))
		return nil, nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return LoansOf(loans, customerID), PaymentsOf(payments, customerID), nil
}

func (s *ledgerServiceImpl) DeleteCustomer(ctx context.Context, customerID int64) error {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))

	loansRemoved, paymentsRemoved, err := s.deleteCustomerLocked(ctx, logCtx, customerID)
	if err != nil {
		return err
	}

	logCtx.InfoContext(ctx, "Customer deleted",
		slog.Int("loansRemoved", loansRemoved),
		slog.Int("paymentsRemoved", paymentsRemoved),
	)
	s.notify(ctx, event.RoutingKeyCustomerDeleted, func(p event.EventPublisher) error {
		return p.PublishCustomerDeleted(ctx, event.CustomerDeletedEvent{
			CustomerID:      customerID,
			LoansRemoved:    loansRemoved,
			PaymentsRemoved: paymentsRemoved,
			Timestamp:       time.Now(),
		})
	})
	return nil
}

func (s *ledgerServiceImpl) deleteCustomerLocked(ctx context.Context, logCtx *slog.Logger, customerID int64) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return 0, 0, err
	}

	// The cascade order is customer, loans, payments.
	loans, payments, err := s.transactionsOf(ctx, customerID)
	if err != nil {
		return 0, 0, err
	}

	if err := s.store.Customers().Delete(ctx, customerID); err != nil {
		logCtx.ErrorContext(ctx, "Failed to delete customer", slog.Any("error", err))
		return 0, 0, fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	loansRemoved := 0
	for _, l := range loans {
		if err := s.store.Loans().Delete(ctx, l.ID); err != nil {
			monitoring.RecordCascadeFailure()
			logCtx.ErrorContext(ctx, "Cascade delete stopped while removing loans",
				slog.Int64("loanID", l.ID),
				slog.Int("loansRemoved", loansRemoved),
				slog.Any("error", err),
			)
			return loansRemoved, 0, fmt.Errorf("customer %d deleted but removing loan %d failed: %w", customerID, l.ID, err)
		}
		loansRemoved++
	}

	paymentsRemoved := 0
	for _, p := range payments {
		if err := s.store.Payments().Delete(ctx, p.ID); err != nil {
			monitoring.RecordCascadeFailure()
			logCtx.ErrorContext(ctx, "Cascade delete stopped while removing payments",
				slog.Int64("paymentID", p.ID),
				slog.Int("paymentsRemoved", paymentsRemoved),
				slog.Any("error", err),
			)
			return loansRemoved, paymentsRemoved, fmt.Errorf("customer %d deleted but removing payment %d failed: %w", customerID, p.ID, err)
		}
		paymentsRemoved++
	}

	return loansRemoved, paymentsRemoved, nil
}

func (s *ledgerServiceImpl) EditTransaction(ctx context.Context, kind Kind, transactionID int64, amount decimal.Decimal, date time.Time) error {
	if kind != KindLoan && kind != KindPayment {
		return apperrors.NewValidationError("kind", fmt.Sprintf("unknown transaction kind %q", kind))
	}
	if transactionID <= 0 {
		return fmt.Errorf("%w: invalid transaction ID %d", apperrors.ErrInvalidArgument, transactionID)
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if err := validateDate(date); err != nil {
		return err
	}

	date = TruncateDate(date)
	customerID, err := s.editLocked(ctx, kind, transactionID, TransactionPatch{Amount: &amount, Date: &date})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Transaction edited",
		slog.String("kind", string(kind)),
		slog.Int64("transactionID", transactionID),
		slog.String("amount", amount.String()),
	)
	s.notify(ctx, event.RoutingKeyTransactionEdited, func(p event.EventPublisher) error {
		return p.PublishTransactionEdited(ctx, event.TransactionEditedEvent{
			Kind:          string(kind),
			TransactionID: transactionID,
			CustomerID:    customerID,
			Amount:        amount,
			Date:          date.Format(DateLayout),
			Timestamp:     time.Now(),
		})
	})
	return nil
}

// editLocked applies the patch and returns the owning customer id.
// Balances are not re-checked after an edit.
func (s *ledgerServiceImpl) editLocked(ctx context.Context, kind Kind, transactionID int64, patch TransactionPatch) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		customerID int64
		getErr     error
	)
	switch kind {
	case KindLoan:
		var l *Loan
		l, getErr = s.store.Loans().GetByID(ctx, transactionID)
		if getErr == nil {
			customerID = l.CustomerID
		}
	case KindPayment:
		var p *Payment
		p, getErr = s.store.Payments().GetByID(ctx, transactionID)
		if getErr == nil {
			customerID = p.CustomerID
		}
	}
	if getErr != nil {
		if errors.Is(getErr, apperrors.ErrNotFound) {
			return 0, fmt.Errorf("%w: %s %d", apperrors.ErrNotFound, kind, transactionID)
		}
		s.logger.ErrorContext(ctx, "Failed to load transaction", slog.String("kind", string(kind)), slog.Any("error", getErr))
		return 0, fmt.Errorf("failed to load %s %d: %w", kind, transactionID, getErr)
	}

	var err error
	if kind == KindLoan {
		err = s.store.Loans().Update(ctx, transactionID, patch)
	} else {
		err = s.store.Payments().Update(ctx, transactionID, patch)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, fmt.Errorf("%w: %s %d", apperrors.ErrNotFound, kind, transactionID)
		}
		s.logger.ErrorContext(ctx, "Failed to update transaction", slog.String("kind", string(kind)), slog.Any("error", err))
		return 0, fmt.Errorf("failed to update %s %d: %w", kind, transactionID, err)
	}
	return customerID, nil
}

func (s *ledgerServiceImpl) notify(ctx context.Context, routingKey string, publish func(event.EventPublisher) error) {
	if s.publisher == nil {
		return
	}
	if err := publish(s.publisher); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish ledger event", slog.String("routingKey", routingKey), slog.Any("error", err))
	}
}
