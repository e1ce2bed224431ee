package payment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentMethod(t *testing.T) {
	tests := []struct {
		name       string
		methodName string
		wantErr    bool
	}{
		{
			name:       "valid method",
			methodName: "Efectivo",
			wantErr:    false,
		},
		{
			name:       "empty name",
			methodName: "",
			wantErr:    true,
		},
		{
			name:       "whitespace only name",
			methodName: "   ",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, err := NewPaymentMethod(tt.methodName)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, method)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.methodName, method.Name)
				assert.True(t, method.Active)
				assert.NotEqual(t, uuid.Nil, method.ID)
			}
		})
	}
}

func TestPaymentMethod_ActivateDeactivate(t *testing.T) {
	method, err := NewPaymentMethod("Tarjeta")
	require.NoError(t, err)

	method.Deactivate()
	assert.False(t, method.Active)

	method.Activate()
	assert.True(t, method.Active)
}

func TestNewPayment(t *testing.T) {
	orderID := uuid.New()
	customerID := uuid.New()
	methodID := uuid.New()
	amount := decimal.NewFromFloat(200.00)

	tests := []struct {
		name       string
		orderID    uuid.UUID
		customerID uuid.UUID
		methodID   uuid.UUID
		amount     decimal.Decimal
		wantErr    bool
	}{
		{
			name:       "valid payment",
			orderID:    orderID,
			customerID: customerID,
			methodID:   methodID,
			amount:     amount,
			wantErr:    false,
		},
		{
			name:       "nil order",
			orderID:    uuid.Nil,
			customerID: customerID,
			methodID:   methodID,
			amount:     amount,
			wantErr:    true,
		},
		{
			name:       "nil customer",
			orderID:    orderID,
			customerID: uuid.Nil,
			methodID:   methodID,
			amount:     amount,
			wantErr:    true,
		},
		{
			name:       "nil method",
			orderID:    orderID,
			customerID: customerID,
			methodID:   uuid.Nil,
			amount:     amount,
			wantErr:    true,
		},
		{
			name:       "zero amount",
			orderID:    orderID,
			customerID: customerID,
			methodID:   methodID,
			amount:     decimal.Zero,
			wantErr:    true,
		},
		{
			name:       "negative amount",
			orderID:    orderID,
			customerID: customerID,
			methodID:   methodID,
			amount:     decimal.NewFromFloat(-10.00),
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPayment(tt.orderID, tt.customerID, tt.methodID, tt.amount)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, p)
			} else {
				require.NoError(t, err)
				assert.Equal(t, PaymentStatusPending, p.Status)
				assert.True(t, p.Amount.Equal(tt.amount))
				assert.Equal(t, tt.orderID, p.OrderID)
			}
		})
	}
}

func TestPayment_Lifecycle(t *testing.T) {
	newPayment := func(t *testing.T) *Payment {
		p, err := NewPayment(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromFloat(150.50))
		require.NoError(t, err)
		return p
	}

	t.Run("approve pending", func(t *testing.T) {
		p := newPayment(t)
		require.NoError(t, p.Approve())
		assert.Equal(t, PaymentStatusApproved, p.Status)
	})

	t.Run("reject pending", func(t *testing.T) {
		p := newPayment(t)
		require.NoError(t, p.Reject())
		assert.Equal(t, PaymentStatusRejected, p.Status)
	})

	t.Run("cannot approve twice", func(t *testing.T) {
		p := newPayment(t)
		require.NoError(t, p.Approve())
		assert.Error(t, p.Approve())
	})

	t.Run("cannot reject approved", func(t *testing.T) {
		p := newPayment(t)
		require.NoError(t, p.Approve())
		assert.Error(t, p.Reject())
		assert.Equal(t, PaymentStatusApproved, p.Status)
	})
}

func TestPaymentStatus_IsValid(t *testing.T) {
	assert.True(t, PaymentStatusPending.IsValid())
	assert.True(t, PaymentStatusApproved.IsValid())
	assert.True(t, PaymentStatusRejected.IsValid())
	assert.False(t, PaymentStatus("desconocido").IsValid())
}
