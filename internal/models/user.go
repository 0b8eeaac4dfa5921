package models

import "time"

// UserRole gates who may edit the funnel and run conversions.
type UserRole string

const (
	// RoleAdmin has full access to the admissions pipeline.
	RoleAdmin UserRole = "ADMIN"
	// RoleRegistrar manages enquiries and runs conversions.
	RoleRegistrar UserRole = "REGISTRAR"
	// RoleViewer has read-only access to the funnel.
	RoleViewer UserRole = "VIEWER"
)

// WriterRoles lists the roles allowed to mutate enquiries and run
// conversions.
func WriterRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleRegistrar}
}

// User is an office account able to sign in to the admissions API.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         UserRole   `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Pagination carries list metadata in response envelopes.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
