package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const StatementDateLayout = "02/01/2006"

// ShopInfo is the header printed on every statement.
type ShopInfo struct {
	Name     string
	Phone    string
	Address  string
	Currency string
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount groups thousands with commas and keeps at most two decimals,
// dropping them when the amount is whole.
func FormatAmount(amount decimal.Decimal) string {
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	whole := amount.Truncate(0)
	out := sign + amountPrinter.Sprintf("%d", whole.IntPart())
	if frac := amount.Sub(whole); !frac.IsZero() {
		out += strings.TrimPrefix(frac.StringFixed(2), "0")
	}
	return out
}

// StatementFileName is the download name for a customer's statement.
func StatementFileName(customerName string) string {
	return "statement_" + strings.Join(strings.Fields(customerName), "_") + ".txt"
}

func RenderStatement(w io.Writer, r *Report, shop ShopInfo) error {
	if r == nil || r.Customer == nil {
		return fmt.Errorf("report has no customer")
	}
	money := func(d decimal.Decimal) string {
		if shop.Currency == "" {
			return FormatAmount(d)
		}
		return FormatAmount(d) + " " + shop.Currency
	}
	address := r.Customer.Address
	if strings.TrimSpace(address) == "" {
		address = "-"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	lines := []string{
		shop.Name,
		"Phone:\t" + shop.Phone,
		"Address:\t" + shop.Address,
		"",
		"CUSTOMER STATEMENT",
		"Name:\t" + r.Customer.Name,
		"Phone:\t" + r.Customer.Phone,
		"Address:\t" + address,
		"Report date:\t" + r.GeneratedAt.Format(StatementDateLayout),
		"",
		"LOANS",
	}
	if len(r.Loans) == 0 {
		lines = append(lines, "No loans recorded.")
	} else {
		lines = append(lines, "Date\tProduct\tAmount")
		for _, l := range r.Loans {
			lines = append(lines, l.Date.Format(StatementDateLayout)+"\t"+l.Product+"\t"+money(l.Amount))
		}
	}
	lines = append(lines, "", "PAYMENTS")
	if len(r.Payments) == 0 {
		lines = append(lines, "No payments recorded.")
	} else {
		lines = append(lines, "Date\tDescription\tAmount")
		for _, p := range r.Payments {
			lines = append(lines, p.Date.Format(StatementDateLayout)+"\tPayment\t"+money(p.Amount))
		}
	}
	lines = append(lines,
		"",
		"Total loans:\t"+money(r.Totals.TotalLoan),
		"Total payments:\t"+money(r.Totals.TotalPayment),
		"BALANCE:\t"+money(r.Totals.Balance),
	)

	for _, line := range lines {
		if _, err := fmt.Fprintln(tw, line); err != nil {
			return fmt.Errorf("failed to write statement: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write statement: %w", err)
	}
	return nil
}
