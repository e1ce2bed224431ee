package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID with its lines loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByCustomer finds orders placed by a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindByStatus finds orders in a given status
	FindByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) ([]Order, error)

	// FindAll finds all orders with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order together with its lines
	Save(ctx context.Context, order *Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
