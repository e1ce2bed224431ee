package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the lifecycle of a payment record. It is
// independent of the owning order's status: an order can progress while its
// payment is still pending review.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pendiente"
	PaymentStatusApproved PaymentStatus = "aprobado"
	PaymentStatusRejected PaymentStatus = "rechazado"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Payment records a payment intent tied to an order. The system records the
// intent only; no gateway is called.
type Payment struct {
	shared.BaseEntity
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	MethodID   uuid.UUID       `gorm:"type:uuid;not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status     PaymentStatus   `gorm:"type:varchar(15);not null;default:'pendiente'"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new payment in pending status
func NewPayment(orderID, customerID, methodID uuid.UUID, amount decimal.Decimal) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if methodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		CustomerID: customerID,
		MethodID:   methodID,
		Amount:     amount,
		Status:     PaymentStatusPending,
	}, nil
}

// Approve marks a pending payment as approved
func (p *Payment) Approve() error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve payment in %s status", p.Status))
	}
	p.Status = PaymentStatusApproved
	p.UpdatedAt = time.Now()
	return nil
}

// Reject marks a pending payment as rejected
func (p *Payment) Reject() error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject payment in %s status", p.Status))
	}
	p.Status = PaymentStatusRejected
	p.UpdatedAt = time.Now()
	return nil
}
