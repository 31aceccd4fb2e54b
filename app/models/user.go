package models

import "time"

// Role is the actor category that scopes which dashboard and navigation
// a user sees.
type Role string

const (
	RoleFarmer      Role = "farmer"
	RoleTransporter Role = "transporter"
	RoleWarehouse   Role = "warehouse"
	RoleRetailer    Role = "retailer"
	RoleConsumer    Role = "consumer"
	RoleAdmin       Role = "admin"
)

// Roles lists every recognised role.
func Roles() []Role {
	return []Role{RoleFarmer, RoleTransporter, RoleWarehouse, RoleRetailer, RoleConsumer, RoleAdmin}
}

// Valid reports whether r is a recognised role.
func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleTransporter, RoleWarehouse, RoleRetailer, RoleConsumer, RoleAdmin:
		return true
	}
	return false
}

// LandingPath returns the default dashboard route for the role.
// Retailers land on /profile: there is no dedicated retailer dashboard,
// their sales view lives on the profile screen. Unknown roles also fall
// back to /profile.
func (r Role) LandingPath() string {
	switch r {
	case RoleFarmer:
		return "/farmer"
	case RoleTransporter:
		return "/transporter"
	case RoleWarehouse:
		return "/warehouse"
	case RoleConsumer:
		return "/consumer"
	default:
		return "/profile"
	}
}

// User is a supply-chain participant. Seed users are loaded from the
// fixture directory (read-only); self-registered users are persisted in
// the database. Credentials only ever live in the database, bcrypt-hashed.
type User struct {
	ID        string    `gorm:"primaryKey;size:64"            json:"id"`
	Name      string    `gorm:"size:255;not null"             json:"name"`
	Role      Role      `gorm:"size:50;not null;index"        json:"role"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"size:255"                      json:"-"` // bcrypt hash, never serialised
	Avatar    string    `gorm:"size:255"                      json:"avatar,omitempty"`
	Location  string    `gorm:"size:255"                      json:"location,omitempty"`
	Company   string    `gorm:"size:255"                      json:"company,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
