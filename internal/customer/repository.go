// AngelaMos | 2026
// repository.go

package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/weclaim/weclaim-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	GetByID(ctx context.Context, id int64) (*Customer, error)
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Customer, error)
	Search(ctx context.Context, term string, limit int) ([]Match, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const customerColumns = `id, full_name, mobile, email, proof_type, proof_number,
	created_by_id, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *repository) Create(ctx context.Context, customer *Customer) error {
	query := `
		INSERT INTO users (full_name, mobile, email, proof_type, proof_number, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		customer.FullName,
		customer.Mobile,
		customer.Email,
		customer.ProofType,
		customer.ProofNumber,
		customer.CreatedByID,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM users
		WHERE id = $1`

	var customer Customer
	err := r.db.GetContext(ctx, &customer, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get customer: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return &customer, nil
}

func (r *repository) Update(ctx context.Context, customer *Customer) error {
	query := `
		UPDATE users
		SET full_name = $2, mobile = $3, email = $4, proof_type = $5,
			proof_number = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING created_by_id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		customer.ID,
		customer.FullName,
		customer.Mobile,
		customer.Email,
		customer.ProofType,
		customer.ProofNumber,
	).Scan(&customer.CreatedByID, &customer.CreatedAt, &customer.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update customer: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	return core.RequireAffected(result, "delete customer")
}

func (r *repository) List(ctx context.Context) ([]Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM users
		ORDER BY created_at DESC, id DESC`

	customers := []Customer{}
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	return customers, nil
}

// Search matches term anywhere in the name (case-insensitive) or mobile.
// LIKE wildcards in term are matched literally.
func (r *repository) Search(ctx context.Context, term string, limit int) ([]Match, error) {
	query := `
		SELECT id, full_name, mobile
		FROM users
		WHERE full_name ILIKE $1 OR mobile LIKE $1
		ORDER BY full_name, id
		LIMIT $2`

	pattern := "%" + likeEscaper.Replace(term) + "%"

	matches := []Match{}
	if err := r.db.SelectContext(ctx, &matches, query, pattern, limit); err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}

	return matches, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}

	return count, nil
}
