// AngelaMos | 2026
// repository.go

package insurance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/weclaim/weclaim-api/internal/core"
	"github.com/weclaim/weclaim-api/internal/nominee"
)

type Repository interface {
	Create(ctx context.Context, insurance *Insurance) error
	Update(ctx context.Context, insurance *Insurance) error
	Delete(ctx context.Context, userID, id int64) error
	ListByUserID(ctx context.Context, userID int64) ([]Insurance, error)
	Exists(ctx context.Context, userID, id int64) (bool, error)
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const insuranceColumns = `id, user_id, company_name, insurance_number, insurance_type,
	insurance_from_date, insurance_to_date, insurance_amount, created_at, updated_at`

func (r *repository) Create(ctx context.Context, insurance *Insurance) error {
	query := `
		INSERT INTO insurances (
			user_id, company_name, insurance_number, insurance_type,
			insurance_from_date, insurance_to_date, insurance_amount
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		insurance.UserID,
		insurance.CompanyName,
		insurance.InsuranceNumber,
		insurance.InsuranceType,
		insurance.InsuranceFromDate,
		insurance.InsuranceToDate,
		insurance.InsuranceAmount,
	).Scan(&insurance.ID, &insurance.CreatedAt, &insurance.UpdatedAt)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("create insurance: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create insurance: %w", err)
	}

	return nil
}

func (r *repository) Update(ctx context.Context, insurance *Insurance) error {
	query := `
		UPDATE insurances
		SET company_name = $3,
			insurance_number = $4,
			insurance_type = $5,
			insurance_from_date = $6,
			insurance_to_date = $7,
			insurance_amount = $8,
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		insurance.ID,
		insurance.UserID,
		insurance.CompanyName,
		insurance.InsuranceNumber,
		insurance.InsuranceType,
		insurance.InsuranceFromDate,
		insurance.InsuranceToDate,
		insurance.InsuranceAmount,
	).Scan(&insurance.CreatedAt, &insurance.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update insurance: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update insurance: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM insurances WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete insurance: %w", err)
	}

	return core.RequireAffected(result, "delete insurance")
}

func (r *repository) ListByUserID(ctx context.Context, userID int64) ([]Insurance, error) {
	query := `SELECT ` + insuranceColumns + `
		FROM insurances
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	insurances := []Insurance{}
	if err := r.db.SelectContext(ctx, &insurances, query, userID); err != nil {
		return nil, fmt.Errorf("list insurances: %w", err)
	}

	return insurances, nil
}

func (r *repository) Exists(ctx context.Context, userID, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM insurances WHERE id = $1 AND user_id = $2)`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("insurance exists: %w", err)
	}

	return exists, nil
}

func (r *repository) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM insurances WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete insurances of customer: %w", err)
	}

	return result.RowsAffected()
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM insurances`); err != nil {
		return 0, fmt.Errorf("count insurances: %w", err)
	}

	return count, nil
}

var _ nominee.InsuranceChecker = (Repository)(nil)
