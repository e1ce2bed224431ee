package order

import (
	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the order aggregate
const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// OrderCreatedEvent is published when a new order has been committed
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID       `json:"customer_id"`
	StoreID    uuid.UUID       `json:"store_id"`
	Total      decimal.Decimal `json:"total"`
	LineCount  int             `json:"line_count"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", o.ID),
		CustomerID:      o.CustomerID,
		StoreID:         o.StoreID,
		Total:           o.Total,
		LineCount:       len(o.Lines),
	}
}

// OrderStatusChangedEvent is published when an order changes status
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID   `json:"customer_id"`
	StoreID    uuid.UUID   `json:"store_id"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, "Order", o.ID),
		CustomerID:      o.CustomerID,
		StoreID:         o.StoreID,
		FromStatus:      from,
		ToStatus:        o.Status,
	}
}
