package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/catalog"
	"github.com/prexcol/backend/internal/domain/identity"
	"github.com/prexcol/backend/internal/domain/shared"
)

// StoreService handles store management operations
type StoreService struct {
	storeRepo   catalog.StoreRepository
	permissions identity.Checker
}

// NewStoreService creates a new StoreService
func NewStoreService(storeRepo catalog.StoreRepository, permissions identity.Checker) *StoreService {
	return &StoreService{
		storeRepo:   storeRepo,
		permissions: permissions,
	}
}

// Create registers a new store
func (s *StoreService) Create(ctx context.Context, role identity.Role, req CreateStoreRequest) (*StoreResponse, error) {
	if !s.permissions.Can(role, identity.ActionManageCatalog) {
		return nil, shared.ErrForbidden
	}

	store, err := catalog.NewStore(req.Name, req.Address, req.Phone, req.ManagerID)
	if err != nil {
		return nil, err
	}
	if err := s.storeRepo.Save(ctx, store); err != nil {
		return nil, err
	}

	response := ToStoreResponse(store)
	return &response, nil
}

// GetByID retrieves a store by ID
func (s *StoreService) GetByID(ctx context.Context, storeID uuid.UUID) (*StoreResponse, error) {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("STORE_NOT_FOUND", "Store not found")
		}
		return nil, err
	}
	response := ToStoreResponse(store)
	return &response, nil
}

// List retrieves stores with pagination
func (s *StoreService) List(ctx context.Context, page, pageSize int) ([]StoreResponse, int64, error) {
	filter := shared.Filter{Page: page, PageSize: pageSize, OrderBy: "name", OrderDir: "asc"}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	stores, err := s.storeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.storeRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToStoreResponses(stores), total, nil
}

// SetActive activates or deactivates a store. Deactivated stores reject new
// orders but keep their history.
func (s *StoreService) SetActive(ctx context.Context, role identity.Role, storeID uuid.UUID, active bool) (*StoreResponse, error) {
	if !s.permissions.Can(role, identity.ActionManageCatalog) {
		return nil, shared.ErrForbidden
	}

	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("STORE_NOT_FOUND", "Store not found")
		}
		return nil, err
	}

	if active {
		store.Activate()
	} else {
		store.Deactivate()
	}
	if err := s.storeRepo.Save(ctx, store); err != nil {
		return nil, err
	}

	response := ToStoreResponse(store)
	return &response, nil
}
