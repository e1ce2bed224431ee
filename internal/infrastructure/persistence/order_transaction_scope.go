package persistence

import (
	"context"

	apporder "github.com/prexcol/backend/internal/application/order"
	"github.com/prexcol/backend/internal/domain/catalog"
	"github.com/prexcol/backend/internal/domain/order"
	"github.com/prexcol/backend/internal/domain/payment"
	"gorm.io/gorm"
)

// GormTransactionScope implements the order workflow TransactionScope using
// GORM transactions. It provides atomic execution of multiple repository
// operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Stores returns the store repository scoped to the current transaction
func (r *gormTransactionalRepositories) Stores() catalog.StoreRepository {
	return NewGormStoreRepository(r.tx)
}

// Products returns the product repository scoped to the current transaction
func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// Orders returns the order repository scoped to the current transaction
func (r *gormTransactionalRepositories) Orders() order.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Payments returns the payment repository scoped to the current transaction
func (r *gormTransactionalRepositories) Payments() payment.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// PaymentMethods returns the payment method repository scoped to the current transaction
func (r *gormTransactionalRepositories) PaymentMethods() payment.PaymentMethodRepository {
	return NewGormPaymentMethodRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ apporder.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ apporder.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
