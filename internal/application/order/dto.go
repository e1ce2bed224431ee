package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderLineRequest represents a single product line in an order request
type OrderLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

// CreateOrderRequest represents a request to place an order with its payment
type CreateOrderRequest struct {
	StoreID    uuid.UUID          `json:"store_id" binding:"required"`
	Lines      []OrderLineRequest `json:"lines" binding:"required"`
	MethodName string             `json:"payment_method" binding:"required"`
	Amount     decimal.Decimal    `json:"payment_amount" binding:"required"`
	Notes      string             `json:"notes"`
}

// ChangeStatusRequest represents a request to move an order to a new status
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangeStatusResponse pairs the updated order with a confirmation message
type ChangeStatusResponse struct {
	Order   OrderResponse `json:"order"`
	Message string        `json:"message"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID         uuid.UUID           `json:"id"`
	CustomerID uuid.UUID           `json:"customer_id"`
	StoreID    uuid.UUID           `json:"store_id"`
	Status     string              `json:"status"`
	Total      decimal.Decimal     `json:"total"`
	Notes      string              `json:"notes,omitempty"`
	Lines      []OrderLineResponse `json:"lines"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// OrderListFilter represents filter options for order listing
type OrderListFilter struct {
	Status   string `form:"status"`
	StoreID  string `form:"store_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToOrderResponse converts an order aggregate to its API representation
func ToOrderResponse(o *order.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, OrderLineResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal(),
		})
	}
	return OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		StoreID:    o.StoreID,
		Status:     o.Status.String(),
		Total:      o.Total,
		Notes:      o.Notes,
		Lines:      lines,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of orders to API representations
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses
}
