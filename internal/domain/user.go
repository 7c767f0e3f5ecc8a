package domain

import "time"

// Role enumerates the actor roles recognized by the claims workflow.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAgent    Role = "agent"
	RoleAdjuster Role = "adjuster"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// AllRoles lists every role.
var AllRoles = []Role{RoleCustomer, RoleAgent, RoleAdjuster, RoleManager, RoleAdmin}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// User is the domain model for every actor: customers filing claims and the
// staff roles working them. A single table holds all five roles.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
