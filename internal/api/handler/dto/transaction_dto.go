package dto

import (
	"credit-ledger/internal/domain/ledger"
	"credit-ledger/internal/pkg/apperrors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type RecordLoanRequest struct {
	CustomerID int64  `json:"customerId"`
	Product    string `json:"product"`
	Amount     string `json:"amount" example:"50000"`
	Date       string `json:"date" example:"2024-01-01"`
}

func (r *RecordLoanRequest) Parse() (decimal.Decimal, time.Time, error) {
	return parseAmountAndDate(r.Amount, r.Date)
}

type RecordPaymentRequest struct {
	CustomerID int64  `json:"customerId"`
	Amount     string `json:"amount" example:"20000"`
	Date       string `json:"date" example:"2024-01-05"`
}

func (r *RecordPaymentRequest) Parse() (decimal.Decimal, time.Time, error) {
	return parseAmountAndDate(r.Amount, r.Date)
}

// EditTransactionRequest overwrites the amount and date of a loan or payment.
type EditTransactionRequest struct {
	Amount string `json:"amount"`
	Date   string `json:"date"`
}

func (r *EditTransactionRequest) Parse() (decimal.Decimal, time.Time, error) {
	return parseAmountAndDate(r.Amount, r.Date)
}

// parseAmountAndDate only rejects malformed input. Empty values come back
// as zero so the ledger reports them in its own validation order.
func parseAmountAndDate(amountStr, dateStr string) (decimal.Decimal, time.Time, error) {
	amount := decimal.Zero
	if s := strings.TrimSpace(amountStr); s != "" {
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, time.Time{}, apperrors.NewValidationError("amount", "amount must be a number")
		}
		amount = parsed
	}

	var date time.Time
	if strings.TrimSpace(dateStr) != "" {
		parsed, err := ledger.ParseDate(dateStr)
		if err != nil {
			return decimal.Zero, time.Time{}, err
		}
		date = parsed
	}
	return amount, date, nil
}

type LoanResponse struct {
	LoanID     string    `json:"loanId"`
	CustomerID string    `json:"customerId"`
	Product    string    `json:"product"`
	Amount     string    `json:"amount"`
	Date       string    `json:"date"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewLoanResponse(l *ledger.Loan) LoanResponse {
	if l == nil {
		return LoanResponse{}
	}
	return LoanResponse{
		LoanID:     strconv.FormatInt(l.ID, 10),
		CustomerID: strconv.FormatInt(l.CustomerID, 10),
		Product:    l.Product,
		Amount:     l.Amount.String(),
		Date:       l.Date.Format(ledger.DateLayout),
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

type PaymentResponse struct {
	PaymentID  string    `json:"paymentId"`
	CustomerID string    `json:"customerId"`
	Amount     string    `json:"amount"`
	Date       string    `json:"date"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewPaymentResponse(p *ledger.Payment) PaymentResponse {
	if p == nil {
		return PaymentResponse{}
	}
	return PaymentResponse{
		PaymentID:  strconv.FormatInt(p.ID, 10),
		CustomerID: strconv.FormatInt(p.CustomerID, 10),
		Amount:     p.Amount.String(),
		Date:       p.Date.Format(ledger.DateLayout),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
