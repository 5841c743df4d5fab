package user

import "time"

// Role is the access role assigned to a user profile.
type Role string

// The four roles a profile can hold.
const (
	RoleAdmin     Role = "Admin"
	RoleManager   Role = "Manager"
	RoleDeveloper Role = "Developer"
	RoleUser      Role = "User"
)

// Roles returns all valid roles in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleDeveloper, RoleUser}
}

// Valid reports whether r is one of the four defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDeveloper, RoleUser:
		return true
	}
	return false
}

// User represents a user profile record.
type User struct {
	ID           string    `json:"id"`           // ID is the generated unique identifier, immutable after creation
	Name         string    `json:"name"`         // Name is the full display name
	Email        string    `json:"email"`        // Email is unique (case-insensitive) across the collection
	Role         Role      `json:"role"`         // Role is one of the four defined roles
	Avatar       string    `json:"avatar"`       // Avatar is an optional image URL; empty is valid
	CreatedAt    time.Time `json:"createdAt"`    // CreatedAt is set once at creation
	LastModified time.Time `json:"lastModified"` // LastModified is bumped on every successful mutation
}

// Snapshot is the persisted form of the whole collection: the ordered
// records plus the time the snapshot was written.
type Snapshot struct {
	Users       []User    `json:"users"`
	LastUpdated time.Time `json:"lastUpdated"`
}
