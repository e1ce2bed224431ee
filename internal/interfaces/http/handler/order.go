package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/prexcol/backend/internal/application/order"
)

// OrderHandler handles order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Create places an order together with its payment. Stock is decremented
// and the payment recorded in a single transaction; any failure leaves
// both untouched.
func (h *OrderHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Caller identity not resolved")
		return
	}

	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.CreateOrder(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// ChangeStatus moves an order to a new lifecycle status
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Caller identity not resolved")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.ChangeStatus(c.Request.Context(), actor, orderID, req.Status)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, orderapp.ChangeStatusResponse{
		Order:   *resp,
		Message: fmt.Sprintf("Pedido actualizado a %s", resp.Status),
	})
}

// GetByID retrieves a single order
func (h *OrderHandler) GetByID(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Caller identity not resolved")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.orderService.GetByID(c.Request.Context(), actor, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListMine retrieves the caller's own orders regardless of role
func (h *OrderHandler) ListMine(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Caller identity not resolved")
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, err := h.orderService.ListByCustomer(c.Request.Context(), actor.UserID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, orders)
}

// List retrieves orders visible to the caller. Customers only see their
// own orders; staff roles see everything, optionally filtered by status
// or store.
func (h *OrderHandler) List(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Caller identity not resolved")
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, err := h.orderService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, orders)
}
