package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/shared"
)

// PaymentMethodRepository defines the interface for payment method persistence
type PaymentMethodRepository interface {
	// FindByID finds a payment method by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentMethod, error)

	// FindByName resolves a payment method by name, case-insensitively,
	// regardless of its active flag. Used for uniqueness checks.
	FindByName(ctx context.Context, name string) (*PaymentMethod, error)

	// FindActiveByName resolves an active payment method by name,
	// case-insensitively. Inactive or unknown names yield ErrNotFound.
	FindActiveByName(ctx context.Context, name string) (*PaymentMethod, error)

	// FindAll finds all payment methods with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]PaymentMethod, error)

	// Save creates or updates a payment method
	Save(ctx context.Context, method *PaymentMethod) error
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByOrder finds all payment attempts for an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Payment, error)

	// Save creates or updates a payment
	Save(ctx context.Context, payment *Payment) error

	// Count counts payments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
