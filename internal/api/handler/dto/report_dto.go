package dto

import (
	"credit-ledger/internal/domain/dashboard"
	"credit-ledger/internal/domain/report"
	"time"
)

type ReportResponse struct {
	Customer     CustomerResponse  `json:"customer"`
	Loans        []LoanResponse    `json:"loans"`
	Payments     []PaymentResponse `json:"payments"`
	TotalLoan    string            `json:"totalLoan"`
	TotalPayment string            `json:"totalPayment"`
	Balance      string            `json:"balance"`
	GeneratedAt  time.Time         `json:"generatedAt"`
}

func NewReportResponse(r *report.Report) ReportResponse {
	if r == nil {
		return ReportResponse{}
	}
	loans := make([]LoanResponse, len(r.Loans))
	for i, l := range r.Loans {
		loans[i] = NewLoanResponse(l)
	}
	payments := make([]PaymentResponse, len(r.Payments))
	for i, p := range r.Payments {
		payments[i] = NewPaymentResponse(p)
	}
	return ReportResponse{
		Customer:     NewCustomerResponse(r.Customer),
		Loans:        loans,
		Payments:     payments,
		TotalLoan:    r.Totals.TotalLoan.String(),
		TotalPayment: r.Totals.TotalPayment.String(),
		Balance:      r.Totals.Balance.String(),
		GeneratedAt:  r.GeneratedAt,
	}
}

type DashboardResponse struct {
	CustomerCount      int    `json:"customerCount"`
	TotalLoans         string `json:"totalLoans"`
	TotalPayments      string `json:"totalPayments"`
	OutstandingBalance string `json:"outstandingBalance"`
}

func NewDashboardResponse(s dashboard.Summary) DashboardResponse {
	return DashboardResponse{
		CustomerCount:      s.CustomerCount,
		TotalLoans:         s.TotalLoans.String(),
		TotalPayments:      s.TotalPayments.String(),
		OutstandingBalance: s.OutstandingBalance.String(),
	}
}
