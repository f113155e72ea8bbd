package ledger

import (
	"context"
	"credit-ledger/internal/domain/customer"
)

// LoanRepository follows the same contract as customer.Repository.
type LoanRepository interface {
	Add(ctx context.Context, loan *Loan) (int64, error)
	GetAll(ctx context.Context) ([]*Loan, error)
	GetByID(ctx context.Context, loanID int64) (*Loan, error)
	Update(ctx context.Context, loanID int64, patch TransactionPatch) error
	Delete(ctx context.Context, loanID int64) error
}

type PaymentRepository interface {
	Add(ctx context.Context, payment *Payment) (int64, error)
	GetAll(ctx context.Context) ([]*Payment, error)
	GetByID(ctx context.Context, paymentID int64) (*Payment, error)
	Update(ctx context.Context, paymentID int64, patch TransactionPatch) error
	Delete(ctx context.Context, paymentID int64) error
}

// Store is the record store handle injected into the services.
type Store interface {
	Customers() customer.Repository
	Loans() LoanRepository
	Payments() PaymentRepository
}

// LoansOf filters loans down to one customer, keeping order.
func LoansOf(loans []*Loan, customerID int64) []*Loan {
	out := make([]*Loan, 0)
	for _, l := range loans {
		if l.CustomerID == customerID {
			out = append(out, l)
		}
	}
	return out
}

func PaymentsOf(payments []*Payment, customerID int64) []*Payment {
	out := make([]*Payment, 0)
	for _, p := range payments {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out
}
