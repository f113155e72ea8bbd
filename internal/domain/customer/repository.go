package customer

import (
	"context"
)

// Repository is the customers collection of the record store.
// GetByID and Update return apperrors.ErrNotFound for an unknown id;
// Delete of an unknown id is not an error.
type Repository interface {
	Add(ctx context.Context, customer *Customer) (int64, error)

	GetAll(ctx context.Context) ([]*Customer, error)

	GetByID(ctx context.Context, customerID int64) (*Customer, error)

	Update(ctx context.Context, customerID int64, patch Patch) error

	Delete(ctx context.Context, customerID int64) error
}
