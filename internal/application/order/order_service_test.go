package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/catalog"
	"github.com/prexcol/backend/internal/domain/identity"
	"github.com/prexcol/backend/internal/domain/order"
	"github.com/prexcol/backend/internal/domain/payment"
	"github.com/prexcol/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	stores    *MockStoreRepository
	products  *MockProductRepository
	orders    *MockOrderRepository
	payments  *MockPaymentRepository
	methods   *MockPaymentMethodRepository
	publisher *MockEventPublisher
	service   *OrderService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		stores:    new(MockStoreRepository),
		products:  new(MockProductRepository),
		orders:    new(MockOrderRepository),
		payments:  new(MockPaymentRepository),
		methods:   new(MockPaymentMethodRepository),
		publisher: NewMockEventPublisher(),
	}
	scope := NewNoOpTransactionScope(f.stores, f.products, f.orders, f.payments, f.methods)
	f.service = NewOrderService(scope, f.orders, identity.NewCapabilityChecker())
	f.service.SetEventPublisher(f.publisher)
	return f
}

func newTestStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.NewStore("Tienda Centro", "Calle 10 #5-23", "3001234567", uuid.New())
	require.NoError(t, err)
	return store
}

func newTestProduct(t *testing.T, storeID uuid.UUID, price float64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("Arroz 500g", "", decimal.NewFromFloat(price), stock, storeID, uuid.New(), "alimentos")
	require.NoError(t, err)
	return product
}

func newTestMethod(t *testing.T) *payment.PaymentMethod {
	t.Helper()
	method, err := payment.NewPaymentMethod("Efectivo")
	require.NoError(t, err)
	return method
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	store := newTestStore(t)
	product := newTestProduct(t, store.ID, 100.00, 50)
	method := newTestMethod(t)
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCustomer}

	f.stores.On("FindByID", ctx, store.ID).Return(store, nil)
	f.products.On("FindByIDForUpdate", ctx, product.ID).Return(product, nil)
	f.products.On("Save", ctx, product).Return(nil)
	f.methods.On("FindActiveByName", ctx, "efectivo").Return(method, nil)
	f.orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
	f.payments.On("Save", ctx, mock.AnythingOfType("*payment.Payment")).Return(nil)

	resp, err := f.service.CreateOrder(ctx, actor, CreateOrderRequest{
		StoreID:    store.ID,
		Lines:      []OrderLineRequest{{ProductID: product.ID, Quantity: 2}},
		MethodName: "efectivo",
		Amount:     decimal.NewFromFloat(200.00),
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, order.OrderStatusPending.String(), resp.Status)
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(200.00)))
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 2, resp.Lines[0].Quantity)
	assert.True(t, resp.Lines[0].UnitPrice.Equal(decimal.NewFromFloat(100.00)))

	// Stock decremented on the locked product
	assert.Equal(t, 48, product.Stock)

	// Payment row recorded as pending with the order total
	f.payments.AssertCalled(t, "Save", ctx, mock.MatchedBy(func(p *payment.Payment) bool {
		return p.Status == payment.PaymentStatusPending && p.Amount.Equal(decimal.NewFromFloat(200.00))
	}))

	// Creation event published after the workflow, with the final figures
	createdEvents := f.publisher.GetEventsByType(order.EventTypeOrderCreated)
	require.Len(t, createdEvents, 1)
	created, ok := createdEvents[0].(*order.OrderCreatedEvent)
	require.True(t, ok)
	assert.True(t, created.Total.Equal(decimal.NewFromFloat(200.00)), "event total %s", created.Total)
	assert.Equal(t, 1, created.LineCount)
}

func TestOrderService_CreateOrder_EmptyOrder(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	store := newTestStore(t)
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCustomer}

	f.stores.On("FindByID", ctx, store.ID).Return(store, nil)

	_, err := f.service.CreateOrder(ctx, actor, CreateOrderRequest{
		StoreID:    store.ID,
		MethodName: "Efectivo",
		Amount:     decimal.NewFromFloat(10.00),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_ORDER", domainErr.Code)
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_UnknownStoreBeatsEmptyLines(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	storeID := uuid.New()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCustomer}

	f.stores.On("FindByID", ctx, storeID).Return(nil, shared.ErrNotFound)

	_, err := f.service.CreateOrder(ctx, actor, CreateOrderRequest{
		StoreID:    storeID,
		MethodName: "Efectivo",
		Amount:     decimal.NewFromFloat(10.00),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "STORE_NOT_FOUND", domainErr.Code)
}

func TestOrderService_CreateOrder_Forbidden(t *testing.T) {
	f := newServiceFixture()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleLogistics}

	_, err := f.service.CreateOrder(context.Background(), actor, CreateOrderRequest{
		StoreID:    uuid.New(),
		Lines:      []OrderLineRequest{{ProductID: uuid.New(), Quantity: 1}},
		MethodName: "Efectivo",
		Amount:     decimal.NewFromFloat(10.00),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestOrderService_CreateOrder_StoreNotFound(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	storeID := uuid.New()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCustomer}

	f.stores.On("FindByID", ctx, storeID).Return(nil, shared.ErrNotFound)

	_, err := f.service.CreateOrder(ctx, actor, CreateOrderRequest{
		StoreID:    storeID,
		Lines:      []OrderLineRequest{{ProductID: uuid.New(), Quantity: 1}},
		MethodName: "Efectivo",
		Amount:     decimal.NewFromFloat(10.00),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "STORE_NOT_FOUND", domainErr.Code)
}

func TestOrderService_CreateOrder_ProductNotFound(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	store := newTestStore(t)
	productID := uuid.New()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCustomer}

	f.stores.On("FindByID", ctx, store.ID).Return(store, nil)
	f.products.On("FindByIDForUpdate", ctx, productID).Return(nil, shared.ErrNotFound)

	_, err := f.service.CreateOrder(ctx, actor, CreateOrderRequest{
		StoreID:    store.ID,
		Lines:      []OrderLineRequest{{ProductID: productID, Quantity: 1}},
		MethodName: "Efectivo",
		Amount:     decimal.NewFromFloat(10.00),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
}

func TestOrderService_CreateOrder_ProductFromAnotherStore(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	store := newTestStore(t)
	foreign := newTestProduct(t, uuid.New(), 50.00, 10)
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCustomer}

	f.stores.On("FindByID", ctx, store.ID).Return(store, nil)
	f.products.On("FindByIDForUpdate", ctx, foreign.ID).Return(foreign, nil)

	_, err := f.service.CreateOrder(ctx, actor, CreateOrderRequest{
		StoreID:    store.ID,
		Lines:      []OrderLineRequest{{ProductID: foreign.ID, Quantity: 1}},
		MethodName: "Efectivo",
		Amount:     decimal.NewFromFloat(50.00),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
}

func TestOrderService_CreateOrder_InsufficientStock(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	store := newTestStore(t)
	product := newTestProduct(t, store.ID, 100.00, 3)
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCustomer}

	f.stores.On("FindByID", ctx, store.ID).Return(store, nil)
	f.products.On("FindByIDForUpdate", ctx, product.ID).Return(product, nil)

	_, err := f.service.CreateOrder(ctx, actor, CreateOrderRequest{
		StoreID:    store.ID,
		Lines:      []OrderLineRequest{{ProductID: product.ID, Quantity: 5}},
		MethodName: "Efectivo",
		Amount:     decimal.NewFromFloat(500.00),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Contains(t, domainErr.Message, "available 3")
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_InvalidPaymentMethod(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	store := newTestStore(t)
	product := newTestProduct(t, store.ID, 100.00, 50)
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCustomer}

	f.stores.On("FindByID", ctx, store.ID).Return(store, nil)
	f.products.On("FindByIDForUpdate", ctx, product.ID).Return(product, nil)
	f.products.On("Save", ctx, product).Return(nil)
	f.methods.On("FindActiveByName", ctx, "Bitcoin").Return(nil, shared.ErrNotFound)

	_, err := f.service.CreateOrder(ctx, actor, CreateOrderRequest{
		StoreID:    store.ID,
		Lines:      []OrderLineRequest{{ProductID: product.ID, Quantity: 2}},
		MethodName: "Bitcoin",
		Amount:     decimal.NewFromFloat(200.00),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PAYMENT_METHOD", domainErr.Code)
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.GetEventsByType(order.EventTypeOrderCreated))
}

func TestOrderService_CreateOrder_AmountMismatch(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	store := newTestStore(t)
	product := newTestProduct(t, store.ID, 100.00, 50)
	method := newTestMethod(t)
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCustomer}

	f.stores.On("FindByID", ctx, store.ID).Return(store, nil)
	f.products.On("FindByIDForUpdate", ctx, product.ID).Return(product, nil)
	f.products.On("Save", ctx, product).Return(nil)
	f.methods.On("FindActiveByName", ctx, "Efectivo").Return(method, nil)

	_, err := f.service.CreateOrder(ctx, actor, CreateOrderRequest{
		StoreID:    store.ID,
		Lines:      []OrderLineRequest{{ProductID: product.ID, Quantity: 2}},
		MethodName: "Efectivo",
		Amount:     decimal.NewFromFloat(199.99),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "AMOUNT_MISMATCH", domainErr.Code)
	assert.Contains(t, domainErr.Message, "199.99 COP")
	assert.Contains(t, domainErr.Message, "200.00 COP")
	f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_DuplicateProduct(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	store := newTestStore(t)
	product := newTestProduct(t, store.ID, 100.00, 50)
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCustomer}

	f.stores.On("FindByID", ctx, store.ID).Return(store, nil)
	f.products.On("FindByIDForUpdate", ctx, product.ID).Return(product, nil)
	f.products.On("Save", ctx, product).Return(nil)

	_, err := f.service.CreateOrder(ctx, actor, CreateOrderRequest{
		StoreID: store.ID,
		Lines: []OrderLineRequest{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: product.ID, Quantity: 2},
		},
		MethodName: "Efectivo",
		Amount:     decimal.NewFromFloat(300.00),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_PRODUCT", domainErr.Code)
}

func TestOrderService_ChangeStatus_Advance(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleLogistics}

	o, err := order.NewOrder(uuid.New(), uuid.New(), "")
	require.NoError(t, err)
	o.ClearDomainEvents()

	f.orders.On("FindByID", ctx, o.ID).Return(o, nil)
	f.orders.On("Save", ctx, o).Return(nil)

	resp, err := f.service.ChangeStatus(ctx, actor, o.ID, "preparando")
	require.NoError(t, err)
	assert.Equal(t, "preparando", resp.Status)
	assert.Len(t, f.publisher.GetEventsByType(order.EventTypeOrderStatusChanged), 1)
}

func TestOrderService_ChangeStatus_IllegalTransition(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleLogistics}

	o, err := order.NewOrder(uuid.New(), uuid.New(), "")
	require.NoError(t, err)
	o.ClearDomainEvents()

	f.orders.On("FindByID", ctx, o.ID).Return(o, nil)

	_, err = f.service.ChangeStatus(ctx, actor, o.ID, "entregado")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ILLEGAL_TRANSITION", domainErr.Code)
	assert.Equal(t, order.OrderStatusPending, o.Status)
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_ChangeStatus_UnknownStatus(t *testing.T) {
	f := newServiceFixture()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleAdmin}

	_, err := f.service.ChangeStatus(context.Background(), actor, uuid.New(), "enviado")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATUS", domainErr.Code)
}

func TestOrderService_ChangeStatus_CancelRestocks(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	customerID := uuid.New()
	actor := Actor{UserID: customerID, Role: identity.RoleCustomer}

	store := newTestStore(t)
	product := newTestProduct(t, store.ID, 100.00, 50)

	o, err := order.NewOrder(customerID, store.ID, "")
	require.NoError(t, err)
	_, err = product.ReduceStock(2)
	require.NoError(t, err)
	_, err = o.AddLine(product, 2)
	require.NoError(t, err)
	o.RecomputeTotal()
	o.ClearDomainEvents()
	require.Equal(t, 48, product.Stock)

	f.orders.On("FindByID", ctx, o.ID).Return(o, nil)
	f.orders.On("Save", ctx, o).Return(nil)
	f.products.On("FindByIDForUpdate", ctx, product.ID).Return(product, nil)
	f.products.On("Save", ctx, product).Return(nil)

	resp, err := f.service.ChangeStatus(ctx, actor, o.ID, "cancelado")
	require.NoError(t, err)
	assert.Equal(t, "cancelado", resp.Status)
	assert.Equal(t, 50, product.Stock)
	// Cancellation keeps the lines and total for auditability
	assert.Len(t, resp.Lines, 1)
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(200.00)))
}

func TestOrderService_ChangeStatus_CustomerCannotCancelOthersOrder(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCustomer}

	o, err := order.NewOrder(uuid.New(), uuid.New(), "")
	require.NoError(t, err)
	o.ClearDomainEvents()

	f.orders.On("FindByID", ctx, o.ID).Return(o, nil)

	_, err = f.service.ChangeStatus(ctx, actor, o.ID, "cancelado")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestOrderService_ChangeStatus_CustomerCannotAdvance(t *testing.T) {
	f := newServiceFixture()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCustomer}

	_, err := f.service.ChangeStatus(context.Background(), actor, uuid.New(), "preparando")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestOrderService_GetByID(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	customerID := uuid.New()

	o, err := order.NewOrder(customerID, uuid.New(), "")
	require.NoError(t, err)

	f.orders.On("FindByID", ctx, o.ID).Return(o, nil)

	t.Run("owner sees the order", func(t *testing.T) {
		resp, err := f.service.GetByID(ctx, Actor{UserID: customerID, Role: identity.RoleCustomer}, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, resp.ID)
	})

	t.Run("other customers get not found", func(t *testing.T) {
		_, err := f.service.GetByID(ctx, Actor{UserID: uuid.New(), Role: identity.RoleCustomer}, o.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ORDER_NOT_FOUND", domainErr.Code)
	})

	t.Run("staff sees any order", func(t *testing.T) {
		resp, err := f.service.GetByID(ctx, Actor{UserID: uuid.New(), Role: identity.RoleLogistics}, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, resp.ID)
	})
}

func TestOrderService_List_CustomerScopedToOwnOrders(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	customerID := uuid.New()

	f.orders.On("FindByCustomer", ctx, customerID, mock.AnythingOfType("shared.Filter")).
		Return([]order.Order{}, nil)

	_, err := f.service.List(ctx, Actor{UserID: customerID, Role: identity.RoleCustomer}, OrderListFilter{})
	require.NoError(t, err)
	f.orders.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestOrderService_List_FilterByStatus(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	f.orders.On("FindByStatus", ctx, order.OrderStatusPending, mock.AnythingOfType("shared.Filter")).
		Return([]order.Order{}, nil)

	_, err := f.service.List(ctx, Actor{UserID: uuid.New(), Role: identity.RoleLogistics}, OrderListFilter{Status: "pendiente"})
	require.NoError(t, err)

	_, err = f.service.List(ctx, Actor{UserID: uuid.New(), Role: identity.RoleLogistics}, OrderListFilter{Status: "bogus"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATUS", domainErr.Code)
}
