package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStaff   Role = "STAFF"
	RoleCourier Role = "COURIER"
)

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) IsAdmin() bool   { return p.Role == RoleAdmin }
func (p Principal) IsStaff() bool   { return p.Role == RoleStaff }
func (p Principal) IsCourier() bool { return p.Role == RoleCourier }
