package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/identity"
	"github.com/prexcol/backend/internal/domain/payment"
	"github.com/prexcol/backend/internal/domain/shared"
)

// CreatePaymentMethodRequest represents a request to register a payment method
type CreatePaymentMethodRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// PaymentMethodResponse represents a payment method in API responses
type PaymentMethodResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPaymentMethodResponse converts a payment method to its API representation
func ToPaymentMethodResponse(m *payment.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:        m.ID,
		Name:      m.Name,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// PaymentMethodService handles payment method management
type PaymentMethodService struct {
	methodRepo  payment.PaymentMethodRepository
	permissions identity.Checker
}

// NewPaymentMethodService creates a new PaymentMethodService
func NewPaymentMethodService(methodRepo payment.PaymentMethodRepository, permissions identity.Checker) *PaymentMethodService {
	return &PaymentMethodService{
		methodRepo:  methodRepo,
		permissions: permissions,
	}
}

// Create registers a new payment method. Names are unique case-insensitively
// across active and inactive methods, so resolution at order time never has
// two candidates.
func (s *PaymentMethodService) Create(ctx context.Context, role identity.Role, req CreatePaymentMethodRequest) (*PaymentMethodResponse, error) {
	if !s.permissions.Can(role, identity.ActionManagePayments) {
		return nil, shared.ErrForbidden
	}

	if _, err := s.methodRepo.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("METHOD_EXISTS", "Payment method already exists: "+req.Name)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	method, err := payment.NewPaymentMethod(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.methodRepo.Save(ctx, method); err != nil {
		return nil, err
	}

	response := ToPaymentMethodResponse(method)
	return &response, nil
}

// List retrieves all payment methods
func (s *PaymentMethodService) List(ctx context.Context) ([]PaymentMethodResponse, error) {
	methods, err := s.methodRepo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 100, OrderBy: "name", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}
	responses := make([]PaymentMethodResponse, 0, len(methods))
	for i := range methods {
		responses = append(responses, ToPaymentMethodResponse(&methods[i]))
	}
	return responses, nil
}

// SetActive enables or disables a payment method for new orders
func (s *PaymentMethodService) SetActive(ctx context.Context, role identity.Role, methodID uuid.UUID, active bool) (*PaymentMethodResponse, error) {
	if !s.permissions.Can(role, identity.ActionManagePayments) {
		return nil, shared.ErrForbidden
	}

	method, err := s.methodRepo.FindByID(ctx, methodID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("METHOD_NOT_FOUND", "Payment method not found")
		}
		return nil, err
	}

	if active {
		method.Activate()
	} else {
		method.Deactivate()
	}
	if err := s.methodRepo.Save(ctx, method); err != nil {
		return nil, err
	}

	response := ToPaymentMethodResponse(method)
	return &response, nil
}
