package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/prexcol/backend/internal/domain/shared"
)

// Store represents a retail store in the marketplace.
// Every product belongs to a store and every order targets one.
type Store struct {
	shared.BaseAggregateRoot
	Name      string    `gorm:"type:varchar(150);not null"`
	Address   string    `gorm:"type:text;not null"`
	Phone     string    `gorm:"type:varchar(20)"`
	ManagerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Active    bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Store) TableName() string {
	return "stores"
}

// NewStore creates a new store
func NewStore(name, address, phone string, managerID uuid.UUID) (*Store, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot be empty")
	}
	if len(name) > 150 {
		return nil, shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot exceed 150 characters")
	}
	if address == "" {
		return nil, shared.NewDomainError("INVALID_STORE_ADDRESS", "Store address cannot be empty")
	}
	if managerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MANAGER", "Store manager ID cannot be empty")
	}

	return &Store{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
		Phone:             phone,
		ManagerID:         managerID,
		Active:            true,
	}, nil
}

// Deactivate marks the store as inactive
func (s *Store) Deactivate() {
	s.Active = false
	s.UpdatedAt = time.Now()
}

// Activate marks the store as active
func (s *Store) Activate() {
	s.Active = true
	s.UpdatedAt = time.Now()
}
