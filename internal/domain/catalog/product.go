package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/shared"
	"github.com/prexcol/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product represents a catalog product owned by a store and supplied by a
// vendor. Stock is an integer unit count and is never negative: the only
// mutation paths are ReduceStock and IncreaseStock, which enforce the
// invariant at the decrement boundary.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null;index;uniqueIndex:idx_product_store_name,priority:2"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	StoreID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_store_name,priority:1"`
	SupplierID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category    string          `gorm:"type:varchar(50);not null;default:'general'"`
	Essential   bool            `gorm:"not null;default:false"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, description string, price decimal.Decimal, stock int, storeID, supplierID uuid.UUID, category string) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Product stock cannot be negative")
	}
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if category == "" {
		category = "general"
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Price:             price,
		Stock:             stock,
		StoreID:           storeID,
		SupplierID:        supplierID,
		Category:          category,
		Active:            true,
	}, nil
}

// ReduceStock decrements the stock by the given quantity and returns the new
// stock value. It fails when the requested quantity exceeds the available
// stock; the error reports both values. Callers must hold the product row
// exclusively (see ProductRepository.FindByIDForUpdate) so the check and the
// write are not interleaved with a concurrent decrement.
func (p *Product) ReduceStock(quantity int) (int, error) {
	if quantity <= 0 {
		return p.Stock, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > p.Stock {
		return p.Stock, NewInsufficientStockError(p.Name, quantity, p.Stock)
	}

	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	return p.Stock, nil
}

// IncreaseStock increments the stock by the given quantity and returns the
// new stock value. Used for manual restock and for compensating cancelled
// orders.
func (p *Product) IncreaseStock(quantity int) (int, error) {
	if quantity <= 0 {
		return p.Stock, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	p.Stock += quantity
	p.UpdatedAt = time.Now()
	return p.Stock, nil
}

// ChangePrice updates the unit price. Existing order lines keep the price
// captured at purchase time.
func (p *Product) ChangePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the product as inactive
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// Activate marks the product as active
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
}

// PriceMoney returns the unit price as a Money value object
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyCOP(p.Price)
}

// NewInsufficientStockError builds the stock shortfall error, reporting both
// the requested and the available quantity.
func NewInsufficientStockError(productName string, requested, available int) *shared.DomainError {
	return shared.NewDomainError(
		"INSUFFICIENT_STOCK",
		fmt.Sprintf("Insufficient stock for %s: available %d, requested %d", productName, available, requested),
	)
}
