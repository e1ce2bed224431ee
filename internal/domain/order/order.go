package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/catalog"
	"github.com/prexcol/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order. The string values are the
// wire format expected by clients of the original API.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pendiente"
	OrderStatusPreparing OrderStatus = "preparando"
	OrderStatusInTransit OrderStatus = "en_transito"
	OrderStatusDelivered OrderStatus = "entregado"
	OrderStatusCancelled OrderStatus = "cancelado"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusInTransit, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// Cancellation is reachable from every non-terminal state; delivered and
// cancelled are terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusPreparing || target == OrderStatusCancelled
	case OrderStatusPreparing:
		return target == OrderStatusInTransit || target == OrderStatusCancelled
	case OrderStatusInTransit:
		return target == OrderStatusDelivered || target == OrderStatusCancelled
	case OrderStatusDelivered, OrderStatusCancelled:
		return false
	}
	return false
}

// OrderLine represents one product-quantity entry within an order. The unit
// price is captured at order-creation time and never follows later product
// price changes.
type OrderLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_line_order_product,priority:1"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_line_order_product,priority:2"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// Subtotal returns quantity times the captured unit price
func (l *OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order represents a customer order aggregate root. It exclusively owns its
// lines; the total is derived from them and only changes through
// RecomputeTotal.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index:idx_order_customer_status,priority:1"`
	StoreID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_order_store_status,priority:1"`
	Status     OrderStatus     `gorm:"type:varchar(15);not null;default:'pendiente';index:idx_order_customer_status,priority:2;index:idx_order_store_status,priority:2"`
	Total      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Notes      string          `gorm:"type:text"`
	Lines      []OrderLine     `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in pending status with no lines
func NewOrder(customerID, storeID uuid.UUID, notes string) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		StoreID:           storeID,
		Status:            OrderStatusPending,
		Total:             decimal.Zero,
		Notes:             notes,
		Lines:             make([]OrderLine, 0),
	}

	return order, nil
}

// AddLine appends a line for the given product, capturing the product's
// current unit price. A second line for the same product is rejected; the
// caller resubmits with merged quantities if that is what it meant.
// AddLine does not recompute the order total; call RecomputeTotal once after
// all lines are attached.
func (o *Order) AddLine(product *catalog.Product, quantity int) (*OrderLine, error) {
	if product == nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product cannot be nil")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for _, line := range o.Lines {
		if line.ProductID == product.ID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", fmt.Sprintf("Product %s already exists in order", product.Name))
		}
	}

	line := OrderLine{
		ID:          uuid.New(),
		OrderID:     o.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   product.Price,
		CreatedAt:   time.Now(),
	}

	o.Lines = append(o.Lines, line)
	o.UpdatedAt = time.Now()

	return &o.Lines[len(o.Lines)-1], nil
}

// RecomputeTotal sums quantity times captured unit price across all lines,
// stores the result and returns it.
func (o *Order) RecomputeTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Lines {
		total = total.Add(o.Lines[i].Subtotal())
	}
	o.Total = total
	o.UpdatedAt = time.Now()
	return o.Total
}

// Place finalizes the order for persistence. It computes the total from the
// attached lines and records the creation event, so the published payload
// carries the final total and line count.
func (o *Order) Place() decimal.Decimal {
	total := o.RecomputeTotal()
	o.AddDomainEvent(NewOrderCreatedEvent(o))
	return total
}

// TransitionTo moves the order to the requested status. Illegal transitions
// fail reporting both the current and the requested status. Compensating
// stock restoration on cancellation is the orchestrator's concern; the
// aggregate only enforces transition topology.
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("ILLEGAL_TRANSITION", fmt.Sprintf("Unknown order status %q", string(target)))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("ILLEGAL_TRANSITION", fmt.Sprintf("Cannot change order from %s to %s", o.Status, target))
	}

	from := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))

	return nil
}

// LineCount returns the number of lines in the order
func (o *Order) LineCount() int {
	return len(o.Lines)
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// IsDelivered returns true if the order is delivered
func (o *Order) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}
