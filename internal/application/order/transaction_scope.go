package order

import (
	"context"

	"github.com/prexcol/backend/internal/domain/catalog"
	"github.com/prexcol/backend/internal/domain/order"
	"github.com/prexcol/backend/internal/domain/payment"
)

// TransactionScope provides transactional access to the repositories an order
// workflow touches. When a function is executed within a transaction scope,
// all repository operations will be part of the same database transaction and
// will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
//
// Aggregate boundary notes:
//   - Orders: repository for the Order aggregate root. Order lines are child
//     entities persisted through GORM's association handling when the
//     aggregate root is saved.
//   - Products: product lookups inside an order transaction must use
//     FindByIDForUpdate so stock movements serialize on the product row.
type TransactionalRepositories interface {
	// Stores returns the store repository scoped to the current transaction
	Stores() catalog.StoreRepository
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Orders returns the order repository scoped to the current transaction
	Orders() order.OrderRepository
	// Payments returns the payment repository scoped to the current transaction
	Payments() payment.PaymentRepository
	// PaymentMethods returns the payment method repository scoped to the current transaction
	PaymentMethods() payment.PaymentMethodRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is not
// required.
type NoOpTransactionScope struct {
	stores         catalog.StoreRepository
	products       catalog.ProductRepository
	orders         order.OrderRepository
	payments       payment.PaymentRepository
	paymentMethods payment.PaymentMethodRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	stores catalog.StoreRepository,
	products catalog.ProductRepository,
	orders order.OrderRepository,
	payments payment.PaymentRepository,
	paymentMethods payment.PaymentMethodRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stores:         stores,
		products:       products,
		orders:         orders,
		payments:       payments,
		paymentMethods: paymentMethods,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Stores returns the store repository.
func (s *NoOpTransactionScope) Stores() catalog.StoreRepository {
	return s.stores
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.products
}

// Orders returns the order repository.
func (s *NoOpTransactionScope) Orders() order.OrderRepository {
	return s.orders
}

// Payments returns the payment repository.
func (s *NoOpTransactionScope) Payments() payment.PaymentRepository {
	return s.payments
}

// PaymentMethods returns the payment method repository.
func (s *NoOpTransactionScope) PaymentMethods() payment.PaymentMethodRepository {
	return s.paymentMethods
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
