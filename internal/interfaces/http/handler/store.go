package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/prexcol/backend/internal/application/catalog"
)

// StoreHandler handles store API endpoints
type StoreHandler struct {
	BaseHandler
	storeService *catalogapp.StoreService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService *catalogapp.StoreService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
	}
}

// Create registers a new store
func (h *StoreHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Caller identity not resolved")
		return
	}

	var req catalogapp.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.storeService.Create(c.Request.Context(), actor.Role, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID retrieves a store by ID
func (h *StoreHandler) GetByID(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID format")
		return
	}

	resp, err := h.storeService.GetByID(c.Request.Context(), storeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// List retrieves a paginated list of stores
func (h *StoreHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	stores, total, err := h.storeService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, stores, total, page, pageSize)
}

// SetActiveRequest toggles whether a store accepts new orders
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive enables or disables a store
func (h *StoreHandler) SetActive(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Caller identity not resolved")
		return
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID format")
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.storeService.SetActive(c.Request.Context(), actor.Role, storeID, *req.Active)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
