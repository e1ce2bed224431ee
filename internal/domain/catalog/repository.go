package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/shared"
)

// StoreRepository defines the interface for store persistence
type StoreRepository interface {
	// FindByID finds a store by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)

	// FindAll finds all stores with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Store, error)

	// Save creates or updates a store
	Save(ctx context.Context, store *Store) error

	// Count counts stores matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForUpdate finds a product by ID holding an exclusive row lock
	// for the duration of the enclosing transaction. Stock mutations must go
	// through this method so concurrent decrements serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByStore finds all products belonging to a store
	FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindAll finds all products with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete removes a product. Products referenced by order lines must be
	// protected from deletion.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
