package customer

import (
	"credit-ledger/internal/pkg/apperrors"
	"strings"
	"time"
)

// MinPhoneDigits is the shortest phone number accepted at registration.
const MinPhoneDigits = 9

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	Photo     string    `json:"photo,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Patch carries the fields of an update; nil fields are left untouched.
type Patch struct {
	Name    *string
	Phone   *string
	Address *string
	Photo   *string
}

func NewCustomer(name, phone, address, photo string) *Customer {
	return &Customer{
		Name:      strings.TrimSpace(name),
		Phone:     strings.TrimSpace(phone),
		Address:   strings.TrimSpace(address),
		Photo:     photo,
		CreatedAt: time.Now(),
	}
}

func (c *Customer) Validate() error {
	if c.Name == "" {
		return apperrors.NewValidationError("name", "customer name is required")
	}
	return ValidatePhone(c.Phone)
}

// Apply merges the non-nil patch fields into c.
func (c *Customer) Apply(p Patch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Photo != nil {
		c.Photo = *p.Photo
	}
}

// Matches reports whether the customer shows up for a picker search:
// case-insensitive substring of the name, or substring of the phone.
func (c *Customer) Matches(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
		return true
	}
	return strings.Contains(c.Phone, query)
}

func ValidatePhone(phone string) error {
	if phone == "" {
		return apperrors.NewValidationError("phone", "phone number is required")
	}
	digits := 0
	for _, r := range phone {
		if r < '0' || r > '9' {
			return apperrors.NewValidationError("phone", "phone number must contain digits only")
		}
		digits++
	}
	if digits < MinPhoneDigits {
		return apperrors.NewValidationError("phone", "phone number must have at least 9 digits")
	}
	return nil
}
