// Package memory keeps the ledger records in process memory. Nothing survives
// a restart; it backs tests and throwaway demo runs.
package memory

import (
	"context"
	"credit-ledger/internal/domain/customer"
	"credit-ledger/internal/domain/ledger"
	"credit-ledger/internal/pkg/apperrors"
	"fmt"
	"sort"
	"sync"
	"time"
)

type Store struct {
	mu sync.Mutex

	customers map[int64]customer.Customer
	loans     map[int64]ledger.Loan
	payments  map[int64]ledger.Payment

	nextCustomerID int64
	nextLoanID     int64
	nextPaymentID  int64
}

var _ ledger.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		customers: make(map[int64]customer.Customer),
		loans:     make(map[int64]ledger.Loan),
		payments:  make(map[int64]ledger.Payment),
	}
}

func (s *Store) Customers() customer.Repository { return customerRepo{s} }

func (s *Store) Loans() ledger.LoanRepository { return loanRepo{s} }

func (s *Store) Payments() ledger.PaymentRepository { return paymentRepo{s} }

type customerRepo struct{ s *Store }

func (r customerRepo) Add(_ context.Context, cust *customer.Customer) (int64, error) {
	if cust == nil {
		return 0, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.phoneTaken(cust.Phone, 0) {
		return 0, fmt.Errorf("%w: phone %s", apperrors.ErrAlreadyExists, cust.Phone)
	}
	r.s.nextCustomerID++
	cust.ID = r.s.nextCustomerID
	if cust.CreatedAt.IsZero() {
		cust.CreatedAt = time.Now()
	}
	r.s.customers[cust.ID] = *cust
	return cust.ID, nil
}

func (r customerRepo) GetAll(_ context.Context) ([]*customer.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*customer.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r customerRepo) GetByID(_ context.Context, customerID int64) (*customer.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[customerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (r customerRepo) Update(_ context.Context, customerID int64, patch customer.Patch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[customerID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if patch.Phone != nil && r.s.phoneTaken(*patch.Phone, customerID) {
		return fmt.Errorf("%w: phone %s", apperrors.ErrAlreadyExists, *patch.Phone)
	}
	c.Apply(patch)
	r.s.customers[customerID] = c
	return nil
}

func (r customerRepo) Delete(_ context.Context, customerID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.customers, customerID)
	return nil
}

// phoneTaken must be called with mu held.
func (s *Store) phoneTaken(phone string, exceptID int64) bool {
	for id, c := range s.customers {
		if id != exceptID && c.Phone == phone {
			return true
		}
	}
	return false
}

type loanRepo struct{ s *Store }

func (r loanRepo) Add(_ context.Context, l *ledger.Loan) (int64, error) {
	if l == nil {
		return 0, fmt.Errorf("%w: loan cannot be nil", apperrors.ErrInvalidArgument)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextLoanID++
	l.ID = r.s.nextLoanID
	now := time.Now()
	l.CreatedAt, l.UpdatedAt = now, now
	r.s.loans[l.ID] = *l
	return l.ID, nil
}

func (r loanRepo) GetAll(_ context.Context) ([]*ledger.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*ledger.Loan, 0, len(r.s.loans))
	for _, l := range r.s.loans {
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r loanRepo) GetByID(_ context.Context, loanID int64) (*ledger.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.loans[loanID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &l, nil
}

func (r loanRepo) Update(_ context.Context, loanID int64, patch ledger.TransactionPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.loans[loanID]
	if !ok {
		return apperrors.ErrNotFound
	}
	l.Apply(patch)
	l.UpdatedAt = time.Now()
	r.s.loans[loanID] = l
	return nil
}

func (r loanRepo) Delete(_ context.Context, loanID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.loans, loanID)
	return nil
}

type paymentRepo struct{ s *Store }

func (r paymentRepo) Add(_ context.Context, p *ledger.Payment) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("%w: payment cannot be nil", apperrors.ErrInvalidArgument)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextPaymentID++
	p.ID = r.s.nextPaymentID
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.payments[p.ID] = *p
	return p.ID, nil
}

func (r paymentRepo) GetAll(_ context.Context) ([]*ledger.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*ledger.Payment, 0, len(r.s.payments))
	for _, p := range r.s.payments {
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r paymentRepo) GetByID(_ context.Context, paymentID int64) (*ledger.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[paymentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r paymentRepo) Update(_ context.Context, paymentID int64, patch ledger.TransactionPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[paymentID]
	if !ok {
		return apperrors.ErrNotFound
	}
	p.Apply(patch)
	p.UpdatedAt = time.Now()
	r.s.payments[paymentID] = p
	return nil
}

func (r paymentRepo) Delete(_ context.Context, paymentID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.payments, paymentID)
	return nil
}
