// AngelaMos | 2026
// service_test.go

package systemuser

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/weclaim/weclaim-api/internal/auth"
	"github.com/weclaim/weclaim-api/internal/config"
	"github.com/weclaim/weclaim-api/internal/core"
)

type memoryRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*SystemUser
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[int64]*SystemUser)}
}

func (m *memoryRepo) Create(_ context.Context, user *SystemUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if user.Email != nil && u.Email != nil && *u.Email == *user.Email {
			return fmt.Errorf("create system user: %w", core.ErrDuplicateKey)
		}
	}

	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id int64) (*SystemUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("get system user: %w", core.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (*SystemUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email != nil && *u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get system user by email: %w", core.ErrNotFound)
}

func (m *memoryRepo) Update(_ context.Context, user *SystemUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return fmt.Errorf("update system user: %w", core.ErrNotFound)
	}
	user.UpdatedAt = time.Now()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memoryRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = hash
	return nil
}

func (m *memoryRepo) UpdateStatus(_ context.Context, id int64, status string) (*SystemUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("update status: %w", core.ErrNotFound)
	}
	u.Status = status
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("delete system user: %w", core.ErrNotFound)
	}
	delete(m.users, id)
	return nil
}

func (m *memoryRepo) List(_ context.Context) ([]SystemUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]SystemUser, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, nil
}

func (m *memoryRepo) CountActive(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, u := range m.users {
		if u.IsActive() {
			n++
		}
	}
	return n, nil
}

func strPtr(s string) *string { return &s }

func seed(t *testing.T, svc *Service, email, role string) *SystemUser {
	t.Helper()

	user, err := svc.Create(context.Background(), Actor{Role: RoleSuperAdmin}, CreateSystemUserRequest{
		Name:     "Seeded " + role,
		Email:    strPtr(email),
		Password: "password-123",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestCreateHashesPasswordAndActivates(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	user := seed(t, svc, "agent@weclaim.in", RoleAgent)

	assert.Equal(t, StatusActive, user.Status)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$argon2id$"))

	info, err := svc.GetByEmail(context.Background(), "  AGENT@weclaim.in ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, info.ID)
	assert.True(t, info.Active)
}

func TestRoleRules(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	super := seed(t, svc, "super@weclaim.in", RoleSuperAdmin)
	admin := seed(t, svc, "admin@weclaim.in", RoleAdmin)
	agent := seed(t, svc, "agent@weclaim.in", RoleAgent)

	asAdmin := Actor{ID: admin.ID, Role: RoleAdmin}
	asSuper := Actor{ID: super.ID, Role: RoleSuperAdmin}

	t.Run("admin cannot create super admin", func(t *testing.T) {
		_, err := svc.Create(ctx, asAdmin, CreateSystemUserRequest{
			Name:     "Nope",
			Email:    strPtr("nope@weclaim.in"),
			Password: "password-123",
			Role:     RoleSuperAdmin,
		})
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("admin cannot deactivate super admin", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, asAdmin, super.ID, StatusInactive)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("admin cannot promote to super admin", func(t *testing.T) {
		_, err := svc.Update(ctx, asAdmin, agent.ID, UpdateSystemUserRequest{
			Name: agent.Name,
			Role: RoleSuperAdmin,
		})
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("admin manages agent", func(t *testing.T) {
		updated, err := svc.SetStatus(ctx, asAdmin, agent.ID, StatusInactive)
		require.NoError(t, err)
		assert.Equal(t, StatusInactive, updated.Status)
	})

	t.Run("super admin manages admin", func(t *testing.T) {
		updated, err := svc.Update(ctx, asSuper, admin.ID, UpdateSystemUserRequest{
			Name: "Renamed",
			Role: RoleAgent,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
		assert.Equal(t, RoleAgent, updated.Role)
		assert.Equal(t, admin.PasswordHash, updated.PasswordHash)
	})
}

func TestSelfProtection(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	admin := seed(t, svc, "admin@weclaim.in", RoleAdmin)
	self := Actor{ID: admin.ID, Role: RoleAdmin}

	tests := []struct {
		name    string
		run     func() error
		message string
	}{
		{
			name: "deactivate self",
			run: func() error {
				_, err := svc.SetStatus(ctx, self, admin.ID, StatusInactive)
				return err
			},
			message: "You cannot deactivate your own account",
		},
		{
			name: "change own role",
			run: func() error {
				_, err := svc.Update(ctx, self, admin.ID, UpdateSystemUserRequest{
					Name: admin.Name,
					Role: RoleAgent,
				})
				return err
			},
			message: "You cannot change your own role",
		},
		{
			name:    "delete self",
			run:     func() error { return svc.Delete(ctx, self, admin.ID) },
			message: "You cannot delete your own account",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			appErr, ok := core.AsAppError(err)
			require.True(t, ok, "expected app error, got %v", err)
			assert.Equal(t, 400, appErr.StatusCode)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}

	still, err := repo.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, still.Status)
	assert.Equal(t, RoleAdmin, still.Role)
}

type memoryRevocations struct{}

func (memoryRevocations) Revoke(context.Context, string, time.Duration) error { return nil }
func (memoryRevocations) IsRevoked(context.Context, string) (bool, error) { return false, nil }

func TestDeactivatedUserCannotLogin(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	admin := seed(t, svc, "admin@weclaim.in", RoleAdmin)
	agent := seed(t, svc, "agent@weclaim.in", RoleAgent)

	jwtManager, err := auth.NewJWTManager(config.SessionConfig{
		Secret: strings.Repeat("s", 32),
		Issuer: "weclaim-test",
		TTL:    time.Hour,
	})
	require.NoError(t, err)
	authSvc := auth.NewService(jwtManager, svc, memoryRevocations{})

	login := auth.LoginRequest{Email: "agent@weclaim.in", Password: "password-123"}

	result, err := authSvc.Login(ctx, login)
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, Actor{ID: admin.ID, Role: RoleAdmin}, agent.ID, StatusInactive)
	require.NoError(t, err)

	_, err = authSvc.Login(ctx, login)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = authSvc.VerifySession(ctx, result.Token)
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	_, err = svc.SetStatus(ctx, Actor{ID: admin.ID, Role: RoleAdmin}, agent.ID, StatusActive)
	require.NoError(t, err)

	_, err = authSvc.Login(ctx, login)
	assert.NoError(t, err)
}

func TestEnsureSuperAdmin(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	user, created, err := svc.EnsureSuperAdmin(ctx, "Root", "Root@WeClaim.in", "first-password")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, RoleSuperAdmin, user.Role)
	assert.Equal(t, "root@weclaim.in", *user.Email)

	_, err = repo.UpdateStatus(ctx, user.ID, StatusInactive)
	require.NoError(t, err)

	again, created, err := svc.EnsureSuperAdmin(ctx, "Root", "root@weclaim.in", "second-password")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, StatusActive, again.Status)

	ok, err := core.VerifyPassword("second-password", again.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnsureSuperAdminValidatesInput(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		message  string
	}{
		{name: "short password", email: "root@weclaim.in", password: "short", message: "password"},
		{name: "long password", email: "root@weclaim.in", password: strings.Repeat("p", 129), message: "password"},
		{name: "bad email", email: "not-an-email", password: "long-enough-password", message: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepo()
			svc := NewService(repo)

			_, created, err := svc.EnsureSuperAdmin(context.Background(), "Root", tt.email, tt.password)
			require.Error(t, err)
			assert.False(t, created)

			appErr, ok := core.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
			assert.Contains(t, appErr.Message, tt.message)

			_, err = repo.GetByEmail(context.Background(), tt.email)
			assert.ErrorIs(t, err, core.ErrNotFound)
		})
	}
}

type mockRepo struct {
	mock.Mock
	Repository
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*SystemUser, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*SystemUser)
	return user, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestDeleteOwnerOfCustomers(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(9)).Return(&SystemUser{ID: 9, Role: RoleAgent}, nil)
	repo.On("Delete", ctx, int64(9)).Return(fmt.Errorf("delete system user: %w", core.ErrForeignKey))

	err := svc.Delete(ctx, Actor{ID: 1, Role: RoleAdmin}, 9)
	assert.ErrorIs(t, err, ErrHasCustomers)
	repo.AssertExpectations(t)
}

func TestDeleteSuperAdminAsAdmin(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(2)).Return(&SystemUser{ID: 2, Role: RoleSuperAdmin}, nil)

	err := svc.Delete(ctx, Actor{ID: 1, Role: RoleAdmin}, 2)
	assert.ErrorIs(t, err, core.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", ctx, int64(2))
}
