package domain

import "time"

// Role governs access to elevated operations.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Normalize maps a stored role to a known one. Records created before roles
// existed carry no role and are plain users.
func (r Role) Normalize() Role {
	if r == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Identity is the claim carried by a verified credential.
type Identity struct {
	Email string
}

// User is a stored account. Email is the unique key.
type User struct {
	ID        string    `json:"_id,omitempty"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Location  string    `json:"location,omitempty"`
	Education string    `json:"education,omitempty"`
	LinkedIn  string    `json:"linkedin,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile holds the user-editable fields accepted by the upsert route.
// Empty fields are left untouched.
type Profile struct {
	Name      string
	Phone     string
	Location  string
	Education string
	LinkedIn  string
	Image     string
}
