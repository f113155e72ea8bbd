package postgres

import (
	"credit-ledger/internal/domain/customer"
	"credit-ledger/internal/domain/ledger"
	"log/slog"
)

type Store struct {
	customers *CustomerRepository
	loans     *LoanRepository
	payments  *PaymentRepository
}

var _ ledger.Store = (*Store)(nil)

func NewStore(db DBPool, logger *slog.Logger) *Store {
	return &Store{
		customers: NewCustomerRepository(db, logger),
		loans:     NewLoanRepository(db, logger),
		payments:  NewPaymentRepository(db, logger),
	}
}

func (s *Store) Customers() customer.Repository { return s.customers }

func (s *Store) Loans() ledger.LoanRepository { return s.loans }

func (s *Store) Payments() ledger.PaymentRepository { return s.payments }
