// AngelaMos | 2026
// dto.go

package systemuser

import (
	"strings"
	"time"
)

type CreateSystemUserRequest struct {
	Name     string  `json:"name"     validate:"required,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email,max=255"`
	Password string  `json:"password" validate:"required,min=8,max=128"`
	Role     string  `json:"role"     validate:"required,oneof=ADMIN AGENT SUPER_ADMIN"`
}

func (r *CreateSystemUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
}

type UpdateSystemUserRequest struct {
	Name     string  `json:"name"     validate:"required,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email,max=255"`
	Role     string  `json:"role"     validate:"required,oneof=ADMIN AGENT SUPER_ADMIN"`
	Password *string `json:"password" validate:"omitempty,min=8,max=128"`
}

func (r *UpdateSystemUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
	if r.Password != nil && *r.Password == "" {
		r.Password = nil
	}
}

// UpdateStatusRequest accepts either the dashboard's {"active": bool} or an
// explicit {"status": "ACTIVE"|"INACTIVE"}.
type UpdateStatusRequest struct {
	Active *bool   `json:"active"`
	Status *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (r *UpdateStatusRequest) Normalize() {
	if r.Status != nil {
		s := strings.ToUpper(strings.TrimSpace(*r.Status))
		r.Status = &s
	}
}

// Target resolves the requested status; ok is false when neither or both
// fields were sent.
func (r *UpdateStatusRequest) Target() (string, bool) {
	switch {
	case r.Active != nil && r.Status == nil:
		if *r.Active {
			return StatusActive, true
		}
		return StatusInactive, true
	case r.Status != nil && r.Active == nil:
		return *r.Status, true
	default:
		return "", false
	}
}

type SystemUserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SystemUserEnvelope struct {
	User SystemUserResponse `json:"user"`
}

type SystemUserListResponse struct {
	Users []SystemUserResponse `json:"users"`
}

func ToSystemUserResponse(u *SystemUser) SystemUserResponse {
	return SystemUserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToSystemUserResponseList(users []SystemUser) []SystemUserResponse {
	responses := make([]SystemUserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToSystemUserResponse(&users[i]))
	}
	return responses
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}

	e := strings.ToLower(strings.TrimSpace(*email))
	if e == "" {
		return nil
	}

	return &e
}
