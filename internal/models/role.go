package models

import "github.com/google/uuid"

// Role is the closed set of user roles.
type Role string

const (
	RoleGuest     Role = "GUEST"
	RoleClient    Role = "CLIENT"
	RoleAdmin     Role = "ADMIN"
	RoleAssembler Role = "ASSEMBLER"
	RoleManager   Role = "MANAGER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleClient, RoleAdmin, RoleAssembler, RoleManager:
		return true
	}
	return false
}

// CanManageOrders reports whether the role may mutate any order.
func (r Role) CanManageOrders() bool {
	return r == RoleAdmin || r == RoleManager
}

// Principal is the resolved identity of a caller.
type Principal struct {
	ID   uuid.UUID
	Role Role
}
