// AngelaMos | 2026
// entity.go

package systemuser

import (
	"time"
)

type SystemUser struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        *string   `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *SystemUser) IsActive() bool {
	return u.Status == StatusActive
}

func (u *SystemUser) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleAgent      = "AGENT"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)
