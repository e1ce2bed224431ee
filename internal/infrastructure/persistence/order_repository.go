package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/order"
	"github.com/prexcol/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID with all lines loaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).Preload("Lines").First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// applyOrderFilters applies the order-specific keys from the filter map
func applyOrderFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "store_id":
			query = query.Where("store_id = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		}
	}
	return query
}

// FindByCustomer finds all orders placed by a customer
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := applyFilter(
		applyOrderFilters(r.db.WithContext(ctx).Model(&order.Order{}).Preload("Lines").Where("customer_id = ?", customerID), filter),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds all orders in a given status
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status order.OrderStatus, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := applyFilter(
		applyOrderFilters(r.db.WithContext(ctx).Model(&order.Order{}).Preload("Lines").Where("status = ?", status), filter),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll finds all orders with filtering
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := applyFilter(applyOrderFilters(r.db.WithContext(ctx).Model(&order.Order{}).Preload("Lines"), filter), filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order together with its lines
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(o).Error
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyOrderFilters(r.db.WithContext(ctx).Model(&order.Order{}), filter)
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
