package customer_test

import (
	"credit-ledger/internal/domain/customer"
	"credit-ledger/internal/pkg/apperrors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCustomer(t *testing.T) {
	timeBefore := time.Now()

	cust := customer.NewCustomer("  Asha Mussa ", " 0716180718 ", " Temeke ", "data:image/png;base64,AAAA")
	timeAfter := time.Now()

	assert.NotNil(t, cust, "NewCustomer should return a non-nil customer")
	assert.Equal(t, "Asha Mussa", cust.Name, "Name should be trimmed")
	assert.Equal(t, "0716180718", cust.Phone, "Phone should be trimmed")
	assert.Equal(t, "Temeke", cust.Address, "Address should be trimmed")
	assert.Equal(t, "data:image/png;base64,AAAA", cust.Photo, "Photo should be kept as given")
	assert.Equal(t, int64(0), cust.ID, "ID is assigned by the store")
	assert.True(t, !cust.CreatedAt.Before(timeBefore) && !cust.CreatedAt.After(timeAfter), "CreatedAt should be around the time of creation")
}

func TestCustomer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cust    *customer.Customer
		field   string
		wantErr bool
	}{
		{"valid", customer.NewCustomer("Juma", "0712345678", "", ""), "", false},
		{"empty name", customer.NewCustomer("   ", "0712345678", "", ""), "name", true},
		{"empty phone", customer.NewCustomer("Juma", "", "", ""), "phone", true},
		{"non numeric phone", customer.NewCustomer("Juma", "07123abc90", "", ""), "phone", true},
		{"phone with plus sign", customer.NewCustomer("Juma", "+255712345", "", ""), "phone", true},
		{"short phone", customer.NewCustomer("Juma", "07123456", "", ""), "phone", true},
		{"exactly nine digits", customer.NewCustomer("Juma", "712345678", "", ""), "", false},
		{"internal space", customer.NewCustomer("Juma", "0712 345678", "", ""), "phone", true},
		{"fullwidth digits", customer.NewCustomer("Juma", "１２３", "", ""), "phone", true},
		{"arabic-indic digits", customer.NewCustomer("Juma", "٠١٢٣٤", "", ""), "phone", true},
		{"nine fullwidth digits", customer.NewCustomer("Juma", "０７１２３４５６７", "", ""), "phone", true},
		{"eight ascii digits", customer.NewCustomer("Juma", "12345678", "", ""), "phone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cust.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			var vErr *apperrors.ValidationError
			if assert.ErrorAs(t, err, &vErr) {
				assert.Equal(t, tt.field, vErr.Field)
			}
		})
	}
}

func TestCustomer_Apply(t *testing.T) {
	cust := customer.NewCustomer("Juma", "0712345678", "Kariakoo", "")
	newAddress := "Mbagala"
	newPhoto := "data:image/jpeg;base64,BBBB"

	cust.Apply(customer.Patch{Address: &newAddress, Photo: &newPhoto})

	assert.Equal(t, "Juma", cust.Name, "Untouched fields should be preserved")
	assert.Equal(t, "0712345678", cust.Phone, "Untouched fields should be preserved")
	assert.Equal(t, newAddress, cust.Address)
	assert.Equal(t, newPhoto, cust.Photo)
}

func TestCustomer_Matches(t *testing.T) {
	cust := customer.NewCustomer("Neema Said", "0754111222", "", "")

	assert.True(t, cust.Matches(""), "Empty query matches everyone")
	assert.True(t, cust.Matches("neema"), "Name match is case-insensitive")
	assert.True(t, cust.Matches("SAID"), "Name match is case-insensitive")
	assert.True(t, cust.Matches("111"), "Phone substring matches")
	assert.False(t, cust.Matches("Halima"))
	assert.False(t, cust.Matches("999"))
}
