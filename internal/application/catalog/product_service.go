package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	apporder "github.com/prexcol/backend/internal/application/order"
	"github.com/prexcol/backend/internal/domain/catalog"
	"github.com/prexcol/backend/internal/domain/identity"
	"github.com/prexcol/backend/internal/domain/shared"
)

// ProductService handles product management operations. Stock-changing
// operations run inside the shared transaction scope so they serialize with
// concurrent order placement against the same product rows.
type ProductService struct {
	scope       apporder.TransactionScope
	productRepo catalog.ProductRepository
	storeRepo   catalog.StoreRepository
	permissions identity.Checker
}

// NewProductService creates a new ProductService
func NewProductService(
	scope apporder.TransactionScope,
	productRepo catalog.ProductRepository,
	storeRepo catalog.StoreRepository,
	permissions identity.Checker,
) *ProductService {
	return &ProductService{
		scope:       scope,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		permissions: permissions,
	}
}

var errProductNotFound = shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")

// Create adds a product to a store's catalog
func (s *ProductService) Create(ctx context.Context, role identity.Role, req CreateProductRequest) (*ProductResponse, error) {
	if !s.permissions.Can(role, identity.ActionManageCatalog) {
		return nil, shared.ErrForbidden
	}

	if _, err := s.storeRepo.FindByID(ctx, req.StoreID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("STORE_NOT_FOUND", "Store not found")
		}
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Description, req.Price, req.Stock, req.StoreID, req.SupplierID, req.Category)
	if err != nil {
		return nil, err
	}
	product.Essential = req.Essential

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Restock adds stock to a product. Suppliers may only restock their own
// products; admins may restock any. The read-modify-write runs under an
// exclusive row lock so it never races a concurrent order decrement.
func (s *ProductService) Restock(ctx context.Context, actor apporder.Actor, productID uuid.UUID, quantity int) (*ProductResponse, error) {
	if !s.permissions.Can(actor.Role, identity.ActionRestock) {
		return nil, shared.ErrForbidden
	}

	var updated *catalog.Product
	err := s.scope.Execute(ctx, func(repos apporder.TransactionalRepositories) error {
		product, err := repos.Products().FindByIDForUpdate(ctx, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return errProductNotFound
			}
			return err
		}
		if actor.Role == identity.RoleSupplier && product.SupplierID != actor.UserID {
			return shared.ErrForbidden
		}
		if _, err := product.IncreaseStock(quantity); err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(updated)
	return &response, nil
}

// ChangePrice updates a product's price. Existing order lines keep the price
// captured when they were created.
func (s *ProductService) ChangePrice(ctx context.Context, role identity.Role, productID uuid.UUID, req ChangePriceRequest) (*ProductResponse, error) {
	if !s.permissions.Can(role, identity.ActionManageCatalog) {
		return nil, shared.ErrForbidden
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errProductNotFound
		}
		return nil, err
	}
	if err := product.ChangePrice(req.Price); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errProductNotFound
		}
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}

	var (
		products []catalog.Product
		err      error
	)
	if filter.StoreID != nil {
		products, err = s.productRepo.FindByStore(ctx, *filter.StoreID, domainFilter)
	} else {
		products, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Delete removes a product from the catalog. Products referenced by order
// lines are protected and cannot be deleted.
func (s *ProductService) Delete(ctx context.Context, role identity.Role, productID uuid.UUID) error {
	if !s.permissions.Can(role, identity.ActionManageCatalog) {
		return shared.ErrForbidden
	}
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return errProductNotFound
		}
		return err
	}
	return nil
}
