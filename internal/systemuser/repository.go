// AngelaMos | 2026
// repository.go

package systemuser

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/weclaim/weclaim-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *SystemUser) error
	GetByID(ctx context.Context, id int64) (*SystemUser, error)
	GetByEmail(ctx context.Context, email string) (*SystemUser, error)
	Update(ctx context.Context, user *SystemUser) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateStatus(ctx context.Context, id int64, status string) (*SystemUser, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]SystemUser, error)
	CountActive(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const systemUserColumns = `id, name, email, password_hash, role, status, created_at, updated_at`

func (r *repository) Create(ctx context.Context, user *SystemUser) error {
	query := `
		INSERT INTO system_users (name, email, password_hash, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Status,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create system user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create system user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*SystemUser, error) {
	query := `SELECT ` + systemUserColumns + `
		FROM system_users
		WHERE id = $1`

	var user SystemUser
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get system user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get system user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*SystemUser, error) {
	query := `SELECT ` + systemUserColumns + `
		FROM system_users
		WHERE email = $1`

	var user SystemUser
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get system user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get system user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *SystemUser) error {
	query := `
		UPDATE system_users
		SET name = $2, email = $3, role = $4, password_hash = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &user.UpdatedAt, query,
		user.ID,
		user.Name,
		user.Email,
		user.Role,
		user.PasswordHash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update system user: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("update system user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update system user: %w", err)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id int64,
	passwordHash string,
) error {
	query := `
		UPDATE system_users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return core.RequireAffected(result, "update password")
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id int64,
	status string,
) (*SystemUser, error) {
	query := `
		UPDATE system_users
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + systemUserColumns

	var user SystemUser
	err := r.db.GetContext(ctx, &user, query, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update status: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	return &user, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM system_users WHERE id = $1`, id)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("delete system user: %w", core.ErrForeignKey)
		}
		return fmt.Errorf("delete system user: %w", err)
	}

	return core.RequireAffected(result, "delete system user")
}

func (r *repository) List(ctx context.Context) ([]SystemUser, error) {
	query := `SELECT ` + systemUserColumns + `
		FROM system_users
		ORDER BY created_at DESC, id DESC`

	users := []SystemUser{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list system users: %w", err)
	}

	return users, nil
}

func (r *repository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM system_users WHERE status = $1`, StatusActive)
	if err != nil {
		return 0, fmt.Errorf("count active system users: %w", err)
	}

	return count, nil
}
