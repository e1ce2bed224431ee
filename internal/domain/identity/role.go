package identity

import (
	"strings"

	"github.com/prexcol/backend/internal/domain/shared"
)

// Role identifies the kind of user acting on the system.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCustomer  Role = "cliente"
	RoleBuyer     Role = "comprador"
	RoleSupplier  Role = "proveedor"
	RoleLogistics Role = "logistica"
)

// ParseRole resolves a role from its wire value, case-insensitively.
func ParseRole(value string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleBuyer:
		return RoleBuyer, nil
	case RoleSupplier:
		return RoleSupplier, nil
	case RoleLogistics:
		return RoleLogistics, nil
	default:
		return "", shared.NewDomainError("INVALID_ROLE", "Unknown role: "+value)
	}
}

// IsValid checks whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCustomer, RoleBuyer, RoleSupplier, RoleLogistics:
		return true
	}
	return false
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Action is a capability a role may or may not hold.
type Action string

const (
	ActionCreateOrder    Action = "order:create"
	ActionAdvanceOrder   Action = "order:advance"
	ActionCancelOrder    Action = "order:cancel"
	ActionManageCatalog  Action = "catalog:manage"
	ActionRestock        Action = "catalog:restock"
	ActionManagePayments Action = "payments:manage"
	ActionViewOrders     Action = "order:view"
)

// Checker decides whether a role may perform an action.
type Checker interface {
	Can(role Role, action Action) bool
}

// CapabilityChecker grants actions from a static role capability table.
type CapabilityChecker struct {
	grants map[Action][]Role
}

// NewCapabilityChecker builds a checker with the default grant table.
// Admins hold every action.
func NewCapabilityChecker() *CapabilityChecker {
	return &CapabilityChecker{
		grants: map[Action][]Role{
			ActionCreateOrder:    {RoleCustomer, RoleBuyer},
			ActionAdvanceOrder:   {RoleLogistics, RoleBuyer},
			ActionCancelOrder:    {RoleLogistics, RoleCustomer},
			ActionManageCatalog:  {},
			ActionRestock:        {RoleSupplier},
			ActionManagePayments: {},
			ActionViewOrders:     {RoleCustomer, RoleBuyer, RoleLogistics, RoleSupplier},
		},
	}
}

// Can reports whether the role holds the action.
func (c *CapabilityChecker) Can(role Role, action Action) bool {
	if !role.IsValid() {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	for _, granted := range c.grants[action] {
		if granted == role {
			return true
		}
	}
	return false
}
