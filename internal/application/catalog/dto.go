package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/catalog"
	"github.com/prexcol/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CreateStoreRequest represents a request to register a store
type CreateStoreRequest struct {
	Name      string    `json:"name" binding:"required,min=1,max=100"`
	Address   string    `json:"address" binding:"required"`
	Phone     string    `json:"phone"`
	ManagerID uuid.UUID `json:"manager_id" binding:"required"`
}

// StoreResponse represents a store in API responses
type StoreResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone,omitempty"`
	ManagerID uuid.UUID `json:"manager_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProductRequest represents a request to add a product to a store
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock"`
	StoreID     uuid.UUID       `json:"store_id" binding:"required"`
	SupplierID  uuid.UUID       `json:"supplier_id" binding:"required"`
	Category    string          `json:"category"`
	Essential   bool            `json:"essential"`
}

// RestockRequest represents a request to add stock to a product
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ChangePriceRequest represents a request to change a product's price
type ChangePriceRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"`
}

// ProductResponse represents a product in API responses. The price is
// rendered as an amount-with-currency object.
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Price       valueobject.Money `json:"price"`
	Stock       int               `json:"stock"`
	StoreID     uuid.UUID         `json:"store_id"`
	SupplierID  uuid.UUID         `json:"supplier_id"`
	Category    string            `json:"category"`
	Essential   bool              `json:"essential"`
	Active      bool              `json:"active"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ProductListFilter represents filter options for product listing
type ProductListFilter struct {
	Search   string     `form:"search"`
	StoreID  *uuid.UUID `form:"store_id"`
	Category string     `form:"category"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToStoreResponse converts a store to its API representation
func ToStoreResponse(s *catalog.Store) StoreResponse {
	return StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		Phone:     s.Phone,
		ManagerID: s.ManagerID,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToProductResponse converts a product to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.PriceMoney(),
		Stock:       p.Stock,
		StoreID:     p.StoreID,
		SupplierID:  p.SupplierID,
		Category:    p.Category,
		Essential:   p.Essential,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products to API representations
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}

// ToStoreResponses converts a slice of stores to API representations
func ToStoreResponses(stores []catalog.Store) []StoreResponse {
	responses := make([]StoreResponse, 0, len(stores))
	for i := range stores {
		responses = append(responses, ToStoreResponse(&stores[i]))
	}
	return responses
}
