// AngelaMos | 2026
// service.go

package systemuser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/weclaim/weclaim-api/internal/auth"
	"github.com/weclaim/weclaim-api/internal/core"
)

var ErrHasCustomers = errors.New("system user still owns customers")

// Actor is the authenticated operator performing a change.
type Actor struct {
	ID   int64
	Role string
}

func (a Actor) isSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

type Service struct {
	repo      Repository
	validator *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:      repo,
		validator: core.NewValidator(),
	}
}

func (s *Service) GetByID(
	ctx context.Context,
	id int64,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	id int64,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

func (s *Service) List(ctx context.Context) ([]SystemUser, error) {
	return s.repo.List(ctx)
}

func (s *Service) CountActive(ctx context.Context) (int, error) {
	return s.repo.CountActive(ctx)
}

func (s *Service) Create(
	ctx context.Context,
	actor Actor,
	req CreateSystemUserRequest,
) (*SystemUser, error) {
	if req.Role == RoleSuperAdmin && !actor.isSuperAdmin() {
		return nil, fmt.Errorf("create system user: %w", core.ErrForbidden)
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &SystemUser{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Status:       StatusActive,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Update(
	ctx context.Context,
	actor Actor,
	id int64,
	req UpdateSystemUserRequest,
) (*SystemUser, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := canManage(actor, user); err != nil {
		return nil, err
	}

	if req.Role == RoleSuperAdmin && !actor.isSuperAdmin() {
		return nil, fmt.Errorf("update system user: %w", core.ErrForbidden)
	}

	if actor.ID == user.ID && req.Role != user.Role {
		return nil, core.ValidationError("You cannot change your own role")
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Role = req.Role

	if req.Password != nil {
		hash, hashErr := core.HashPassword(*req.Password)
		if hashErr != nil {
			return nil, fmt.Errorf("hash password: %w", hashErr)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) SetStatus(
	ctx context.Context,
	actor Actor,
	id int64,
	status string,
) (*SystemUser, error) {
	if status != StatusActive && status != StatusInactive {
		return nil, core.ValidationError("status must be ACTIVE or INACTIVE")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := canManage(actor, user); err != nil {
		return nil, err
	}

	if actor.ID == user.ID && status == StatusInactive {
		return nil, core.ValidationError("You cannot deactivate your own account")
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, actor Actor, id int64) error {
	if actor.ID == id {
		return core.ValidationError("You cannot delete your own account")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := canManage(actor, user); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrForeignKey) {
			return fmt.Errorf("delete system user: %w", ErrHasCustomers)
		}
		return err
	}

	return nil
}

// EnsureSuperAdmin creates an ACTIVE super admin with the given email, or
// resets the password, role and status of the existing account. created
// reports which of the two happened.
func (s *Service) EnsureSuperAdmin(
	ctx context.Context,
	name, email, password string,
) (user *SystemUser, created bool, err error) {
	req := CreateSystemUserRequest{
		Name:     name,
		Email:    &email,
		Password: password,
		Role:     RoleSuperAdmin,
	}
	req.Normalize()

	if req.Email == nil {
		return nil, false, core.ValidationError("email is required")
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, false, core.ValidationError(core.FormatValidationError(err))
	}

	existing, err := s.repo.GetByEmail(ctx, *req.Email)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, false, err
	}

	if existing == nil {
		user, err = s.Create(ctx, Actor{Role: RoleSuperAdmin}, req)
		return user, err == nil, err
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	existing.Role = RoleSuperAdmin
	existing.PasswordHash = hash

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, false, err
	}

	user, err = s.repo.UpdateStatus(ctx, existing.ID, StatusActive)
	return user, false, err
}

func canManage(actor Actor, target *SystemUser) error {
	if target.IsSuperAdmin() && !actor.isSuperAdmin() {
		return fmt.Errorf("manage super admin: %w", core.ErrForbidden)
	}
	return nil
}

func toUserInfo(u *SystemUser) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Status:       u.Status,
		Active:       u.IsActive(),
	}
}

var _ auth.UserProvider = (*Service)(nil)
