package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	paymentapp "github.com/prexcol/backend/internal/application/payment"
)

// PaymentMethodHandler handles payment method API endpoints
type PaymentMethodHandler struct {
	BaseHandler
	methodService *paymentapp.PaymentMethodService
}

// NewPaymentMethodHandler creates a new PaymentMethodHandler
func NewPaymentMethodHandler(methodService *paymentapp.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		methodService: methodService,
	}
}

// Create registers a new payment method
func (h *PaymentMethodHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Caller identity not resolved")
		return
	}

	var req paymentapp.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.methodService.Create(c.Request.Context(), actor.Role, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// List retrieves all payment methods
func (h *PaymentMethodHandler) List(c *gin.Context) {
	methods, err := h.methodService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, methods)
}

// Activate makes a payment method available for new orders
func (h *PaymentMethodHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate withdraws a payment method from new orders. Existing
// payments keep referencing it.
func (h *PaymentMethodHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *PaymentMethodHandler) setActive(c *gin.Context, active bool) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Caller identity not resolved")
		return
	}

	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID format")
		return
	}

	resp, err := h.methodService.SetActive(c.Request.Context(), actor.Role, methodID, active)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
