package dto

import (
	"credit-ledger/internal/domain/customer"
	"credit-ledger/internal/domain/ledger"
	"strconv"
	"time"
)

type RegisterCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	// Photo is an optional data URL.
	Photo string `json:"photo,omitempty"`
}

type CustomerResponse struct {
	CustomerID string    `json:"customerId"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	Photo      string    `json:"photo,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		CustomerID: strconv.FormatInt(cust.ID, 10),
		Name:       cust.Name,
		Phone:      cust.Phone,
		Address:    cust.Address,
		Photo:      cust.Photo,
		CreatedAt:  cust.CreatedAt,
	}
}

func NewCustomerListResponse(customers []*customer.Customer) []CustomerResponse {
	resp := make([]CustomerResponse, len(customers))
	for i, cust := range customers {
		resp[i] = NewCustomerResponse(cust)
	}
	return resp
}

type BalanceResponse struct {
	CustomerID   string `json:"customerId"`
	TotalLoan    string `json:"totalLoan"`
	TotalPayment string `json:"totalPayment"`
	Balance      string `json:"balance"`
}

func NewBalanceResponse(customerID int64, b ledger.Balance) BalanceResponse {
	return BalanceResponse{
		CustomerID:   strconv.FormatInt(customerID, 10),
		TotalLoan:    b.TotalLoan.String(),
		TotalPayment: b.TotalPayment.String(),
		Balance:      b.Balance.String(),
	}
}
