package payment

import (
	"time"

	"github.com/prexcol/backend/internal/domain/shared"
)

// PaymentMethod is a named, independently toggleable way of paying
// (e.g. "Efectivo", "Transferencia"). Method names are unique
// case-insensitively; resolution during order creation only considers
// active methods.
type PaymentMethod struct {
	shared.BaseEntity
	Name   string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// NewPaymentMethod creates a new active payment method
func NewPaymentMethod(name string) (*PaymentMethod, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_METHOD_NAME", "Payment method name cannot be empty")
	}
	if len(name) > 50 {
		return nil, shared.NewDomainError("INVALID_METHOD_NAME", "Payment method name cannot exceed 50 characters")
	}

	return &PaymentMethod{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Active:     true,
	}, nil
}

// Deactivate disables the method for new payments
func (m *PaymentMethod) Deactivate() {
	m.Active = false
	m.UpdatedAt = time.Now()
}

// Activate re-enables the method
func (m *PaymentMethod) Activate() {
	m.Active = true
	m.UpdatedAt = time.Now()
}
