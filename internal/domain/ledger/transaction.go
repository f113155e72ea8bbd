package ledger

import (
	"credit-ledger/internal/pkg/apperrors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage form of a transaction date.
const DateLayout = "2006-01-02"

type Kind string

const (
	KindLoan    Kind = "loan"
	KindPayment Kind = "payment"
)

// ParseKind accepts the singular or plural collection name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "loan", "loans":
		return KindLoan, nil
	case "payment", "payments":
		return KindPayment, nil
	}
	return "", apperrors.NewValidationError("kind", fmt.Sprintf("unknown transaction kind %q", s))
}

type Loan struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customerId"`
	Product    string          `json:"product"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type Payment struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customerId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// TransactionPatch is the edit applied to a loan or payment. Product is
// ignored for payments.
type TransactionPatch struct {
	Product *string
	Amount  *decimal.Decimal
	Date    *time.Time
}

func (l *Loan) Apply(p TransactionPatch) {
	if p.Product != nil {
		l.Product = *p.Product
	}
	if p.Amount != nil {
		l.Amount = *p.Amount
	}
	if p.Date != nil {
		l.Date = *p.Date
	}
}

func (p *Payment) Apply(patch TransactionPatch) {
	if patch.Amount != nil {
		p.Amount = *patch.Amount
	}
	if patch.Date != nil {
		p.Date = *patch.Date
	}
}

type Balance struct {
	TotalLoan    decimal.Decimal `json:"totalLoan"`
	TotalPayment decimal.Decimal `json:"totalPayment"`
	Balance      decimal.Decimal `json:"balance"`
}

func NewBalance(loans []*Loan, payments []*Payment) Balance {
	totalLoan := SumLoans(loans)
	totalPayment := SumPayments(payments)
	return Balance{
		TotalLoan:    totalLoan,
		TotalPayment: totalPayment,
		Balance:      totalLoan.Sub(totalPayment),
	}
}

func SumLoans(loans []*Loan) decimal.Decimal {
	total := decimal.Zero
	for _, l := range loans {
		total = total.Add(l.Amount)
	}
	return total
}

func SumPayments(payments []*Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// ParseDate parses a YYYY-MM-DD date into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, apperrors.NewValidationError("date", "date is required")
	}
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("date", fmt.Sprintf("date %q must be in YYYY-MM-DD form", s))
	}
	return d, nil
}

// TruncateDate drops the clock part, keeping the calendar date in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// amountScale and maxAmount match the NUMERIC(14,2) amount columns.
const amountScale = 2

var maxAmount = decimal.New(1, 12)

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationError("amount", "amount must be greater than zero")
	}
	if !amount.Equal(amount.Round(amountScale)) {
		return apperrors.NewValidationError("amount", "amount must have at most 2 decimal places")
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return apperrors.NewValidationError("amount", "amount must be less than 1000000000000")
	}
	return nil
}

func validateDate(date time.Time) error {
	if date.IsZero() {
		return apperrors.NewValidationError("date", "date is required")
	}
	return nil
}

func validateCustomerID(customerID int64) error {
	if customerID <= 0 {
		return apperrors.NewValidationError("customerId", "a customer must be selected")
	}
	return nil
}
