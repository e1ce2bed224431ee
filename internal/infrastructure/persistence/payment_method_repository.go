package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/payment"
	"github.com/prexcol/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPaymentMethodRepository implements payment.PaymentMethodRepository using GORM
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGormPaymentMethodRepository creates a new GormPaymentMethodRepository
func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// FindByID finds a payment method by its ID
func (r *GormPaymentMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.PaymentMethod, error) {
	var method payment.PaymentMethod
	if err := r.db.WithContext(ctx).First(&method, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindByName resolves a payment method by name, case-insensitively,
// regardless of its active flag
func (r *GormPaymentMethodRepository) FindByName(ctx context.Context, name string) (*payment.PaymentMethod, error) {
	var method payment.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindActiveByName resolves an active payment method by name, case-insensitively
func (r *GormPaymentMethodRepository) FindActiveByName(ctx context.Context, name string) (*payment.PaymentMethod, error) {
	var method payment.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?) AND active = ?", name, true).
		First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindAll finds all payment methods with filtering
func (r *GormPaymentMethodRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.PaymentMethod, error) {
	var methods []payment.PaymentMethod
	query := applyFilter(r.db.WithContext(ctx).Model(&payment.PaymentMethod{}), filter)
	if err := query.Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// Save creates or updates a payment method
func (r *GormPaymentMethodRepository) Save(ctx context.Context, method *payment.PaymentMethod) error {
	return r.db.WithContext(ctx).Save(method).Error
}
