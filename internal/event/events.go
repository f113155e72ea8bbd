package event

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoutingKeyCustomerRegistered = "customer.registered"
	RoutingKeyCustomerDeleted    = "customer.deleted"
	RoutingKeyLoanRecorded       = "loan.recorded"
	RoutingKeyPaymentRecorded    = "payment.recorded"
	RoutingKeyTransactionEdited  = "transaction.edited"
)

// EventPublisher announces ledger writes. Implementations must be safe for
// concurrent use; callers treat a publish error as non-fatal.
type EventPublisher interface {
	PublishCustomerRegistered(ctx context.Context, event CustomerRegisteredEvent) error
	PublishCustomerDeleted(ctx context.Context, event CustomerDeletedEvent) error
	PublishLoanRecorded(ctx context.Context, event LoanRecordedEvent) error
	PublishPaymentRecorded(ctx context.Context, event PaymentRecordedEvent) error
	PublishTransactionEdited(ctx context.Context, event TransactionEditedEvent) error
}

type CustomerRegisteredEvent struct {
	CustomerID int64     `json:"customerId"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type CustomerDeletedEvent struct {
	CustomerID      int64     `json:"customerId"`
	LoansRemoved    int       `json:"loansRemoved"`
	PaymentsRemoved int       `json:"paymentsRemoved"`
	Timestamp       time.Time `json:"timestamp"`
}

type LoanRecordedEvent struct {
	LoanID     int64           `json:"loanId"`
	CustomerID int64           `json:"customerId"`
	Product    string          `json:"product"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Timestamp  time.Time       `json:"timestamp"`
}

type PaymentRecordedEvent struct {
	PaymentID  int64           `json:"paymentId"`
	CustomerID int64           `json:"customerId"`
	Amount     decimal.Decimal `json:"amount"`
	Balance    decimal.Decimal `json:"balance"`
	Date       string          `json:"date"`
	Timestamp  time.Time       `json:"timestamp"`
}

type TransactionEditedEvent struct {
	Kind          string          `json:"kind"`
	TransactionID int64           `json:"transactionId"`
	CustomerID    int64           `json:"customerId"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	Timestamp     time.Time       `json:"timestamp"`
}
