package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role identifies the kind of actor performing an operation. Roles are
// supplied by the surrounding application layer together with the actor id;
// this core does not authenticate.
type Role int

const (
	// RoleUnknown is the invalid zero value.
	RoleUnknown Role = iota

	// RoleCustomer is the party that submitted the order.
	RoleCustomer

	// RoleAdmin is a branch administrator handling the order at its current stage.
	RoleAdmin

	// RoleSuperAdmin oversees all branches and may approve any change request.
	RoleSuperAdmin

	// RoleSystem marks automatic, scheduler-triggered operations.
	RoleSystem
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "Unknown",
		RoleCustomer:   "Customer",
		RoleAdmin:      "Admin",
		RoleSuperAdmin: "SuperAdmin",
		RoleSystem:     "System",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleCustomer:   "Customer",
		RoleAdmin:      "Admin",
		RoleSuperAdmin: "SuperAdmin",
		RoleSystem:     "System",
	}
}

// Validate checks that the Role is one of the declared roles.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// RoleFromString parses a role name as supplied by external callers.
func RoleFromString(s string) (Role, error) {
	for role, name := range getValidRoleStrings() {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a valid role", s))
}

// RoleSet is a fixed collection of roles used by the static rule tables.
type RoleSet []Role

// Contains reports whether the set includes the given role.
func (rs RoleSet) Contains(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}
