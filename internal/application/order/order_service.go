package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/identity"
	"github.com/prexcol/backend/internal/domain/order"
	"github.com/prexcol/backend/internal/domain/payment"
	"github.com/prexcol/backend/internal/domain/shared"
	"github.com/prexcol/backend/internal/domain/shared/valueobject"
)

// Actor identifies the user on whose behalf an operation runs.
type Actor struct {
	UserID uuid.UUID
	Role   identity.Role
}

// OrderService orchestrates the order fulfillment workflow. Stock movements,
// line snapshots and payment creation for one order happen inside a single
// transaction scope and commit or roll back together.
type OrderService struct {
	scope          TransactionScope
	orderRepo      order.OrderRepository
	permissions    identity.Checker
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(scope TransactionScope, orderRepo order.OrderRepository, permissions identity.Checker) *OrderService {
	return &OrderService{
		scope:       scope,
		orderRepo:   orderRepo,
		permissions: permissions,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishDomainEvents publishes all domain events from the order. Events are
// published after the transaction commits, so a publish failure never undoes
// a committed order.
func (s *OrderService) publishDomainEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		return
	}
	events := o.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Publish errors are logged by the publisher, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
	o.ClearDomainEvents()
}

var (
	errStoreNotFound   = shared.NewDomainError("STORE_NOT_FOUND", "Store not found")
	errProductNotFound = shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	errOrderNotFound   = shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	errEmptyOrder      = shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one line")
	errInvalidMethod   = shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not available")
)

func newAmountMismatchError(paid, total valueobject.Money) *shared.DomainError {
	return shared.NewDomainError(
		"AMOUNT_MISMATCH",
		fmt.Sprintf("Payment amount %s does not match order total %s", paid, total),
	)
}

// CreateOrder places an order atomically: it validates the store and every
// line, decrements product stock, snapshots unit prices into order lines,
// resolves the payment method and records a pending payment. Any validation
// failure rolls the whole transaction back, leaving stock untouched.
func (s *OrderService) CreateOrder(ctx context.Context, actor Actor, req CreateOrderRequest) (*OrderResponse, error) {
	if !s.permissions.Can(actor.Role, identity.ActionCreateOrder) {
		return nil, shared.ErrForbidden
	}

	var created *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		store, err := repos.Stores().FindByID(ctx, req.StoreID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return errStoreNotFound
			}
			return err
		}
		if !store.Active {
			return errStoreNotFound
		}

		// An unknown store reports STORE_NOT_FOUND, not EMPTY_ORDER
		if len(req.Lines) == 0 {
			return errEmptyOrder
		}

		o, err := order.NewOrder(actor.UserID, store.ID, req.Notes)
		if err != nil {
			return err
		}

		for _, line := range req.Lines {
			product, err := repos.Products().FindByIDForUpdate(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return errProductNotFound
				}
				return err
			}
			if product.StoreID != store.ID || !product.Active {
				return errProductNotFound
			}
			if _, err := product.ReduceStock(line.Quantity); err != nil {
				return err
			}
			if err := repos.Products().Save(ctx, product); err != nil {
				return err
			}
			if _, err := o.AddLine(product, line.Quantity); err != nil {
				return err
			}
		}
		o.Place()

		method, err := repos.PaymentMethods().FindActiveByName(ctx, req.MethodName)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return errInvalidMethod
			}
			return err
		}
		paid := valueobject.NewMoneyCOP(req.Amount)
		if !paid.Equals(valueobject.NewMoneyCOP(o.Total)) {
			return newAmountMismatchError(paid, valueobject.NewMoneyCOP(o.Total))
		}

		pay, err := payment.NewPayment(o.ID, o.CustomerID, method.ID, req.Amount)
		if err != nil {
			return err
		}

		if err := repos.Orders().Save(ctx, o); err != nil {
			return err
		}
		if err := repos.Payments().Save(ctx, pay); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, created)
	response := ToOrderResponse(created)
	return &response, nil
}

// ChangeStatus moves an order to the requested status, enforcing the
// transition table. Cancelling an order restores the stock of every line in
// the same transaction that flips the status.
func (s *OrderService) ChangeStatus(ctx context.Context, actor Actor, orderID uuid.UUID, target string) (*OrderResponse, error) {
	status := order.OrderStatus(target)
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+target)
	}

	action := identity.ActionAdvanceOrder
	if status == order.OrderStatusCancelled {
		action = identity.ActionCancelOrder
	}
	if !s.permissions.Can(actor.Role, action) {
		return nil, shared.ErrForbidden
	}

	var updated *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return errOrderNotFound
			}
			return err
		}

		// Customers may only cancel their own orders
		if actor.Role == identity.RoleCustomer && o.CustomerID != actor.UserID {
			return shared.ErrForbidden
		}

		if err := o.TransitionTo(status); err != nil {
			return err
		}

		if status == order.OrderStatusCancelled {
			if err := s.restockLines(ctx, repos, o); err != nil {
				return err
			}
		}

		if err := repos.Orders().Save(ctx, o); err != nil {
			return err
		}

		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, updated)
	response := ToOrderResponse(updated)
	return &response, nil
}

// restockLines returns each line's quantity to its product. A product deleted
// since the order was placed cannot happen (product rows are protected while
// referenced), so a missing product here is a real storage error.
func (s *OrderService) restockLines(ctx context.Context, repos TransactionalRepositories, o *order.Order) error {
	for i := range o.Lines {
		line := &o.Lines[i]
		product, err := repos.Products().FindByIDForUpdate(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if _, err := product.IncreaseStock(line.Quantity); err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves an order with its lines
func (s *OrderService) GetByID(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errOrderNotFound
		}
		return nil, err
	}
	if actor.Role == identity.RoleCustomer && o.CustomerID != actor.UserID {
		return nil, errOrderNotFound
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListByCustomer retrieves the orders placed by a customer
func (s *OrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter OrderListFilter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByCustomer(ctx, customerID, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// List retrieves orders with filtering and pagination. Requires the view
// capability; customers are redirected to their own listing.
func (s *OrderService) List(ctx context.Context, actor Actor, filter OrderListFilter) ([]OrderResponse, error) {
	if !s.permissions.Can(actor.Role, identity.ActionViewOrders) {
		return nil, shared.ErrForbidden
	}
	if actor.Role == identity.RoleCustomer {
		return s.ListByCustomer(ctx, actor.UserID, filter)
	}

	if filter.Status != "" {
		status := order.OrderStatus(filter.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+filter.Status)
		}
		orders, err := s.orderRepo.FindByStatus(ctx, status, toDomainFilter(filter))
		if err != nil {
			return nil, err
		}
		return ToOrderResponses(orders), nil
	}

	orders, err := s.orderRepo.FindAll(ctx, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

func toDomainFilter(filter OrderListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}
	filters := make(map[string]interface{})
	if filter.StoreID != "" {
		filters["store_id"] = filter.StoreID
	}
	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  filters,
	}
}
