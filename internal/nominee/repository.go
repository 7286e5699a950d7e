// AngelaMos | 2026
// repository.go

package nominee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/weclaim/weclaim-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, nominee *Nominee) error
	Update(ctx context.Context, nominee *Nominee) error
	Delete(ctx context.Context, insuranceID, id int64) error
	ListByInsuranceIDs(ctx context.Context, insuranceIDs []int64) ([]Nominee, error)
	DeleteByInsuranceID(ctx context.Context, insuranceID int64) (int64, error)
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

// NewRepository accepts either the pool or a transaction, so cascading
// deletes can reuse it inside core.InTx.
func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const nomineeColumns = `id, insurance_id, nominee_name, mobile, relation, created_at, updated_at`

func (r *repository) Create(ctx context.Context, nominee *Nominee) error {
	query := `
		INSERT INTO nominees (insurance_id, nominee_name, mobile, relation)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		nominee.InsuranceID,
		nominee.NomineeName,
		nominee.Mobile,
		nominee.Relation,
	).Scan(&nominee.ID, &nominee.CreatedAt, &nominee.UpdatedAt)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("create nominee: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create nominee: %w", err)
	}

	return nil
}

func (r *repository) Update(ctx context.Context, nominee *Nominee) error {
	query := `
		UPDATE nominees
		SET nominee_name = $3, mobile = $4, relation = $5, updated_at = NOW()
		WHERE id = $1 AND insurance_id = $2
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		nominee.ID,
		nominee.InsuranceID,
		nominee.NomineeName,
		nominee.Mobile,
		nominee.Relation,
	).Scan(&nominee.CreatedAt, &nominee.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update nominee: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update nominee: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, insuranceID, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM nominees WHERE id = $1 AND insurance_id = $2`,
		id, insuranceID,
	)
	if err != nil {
		return fmt.Errorf("delete nominee: %w", err)
	}

	return core.RequireAffected(result, "delete nominee")
}

// ListByInsuranceIDs loads the nominees of every listed insurance in one
// query, oldest first.
func (r *repository) ListByInsuranceIDs(
	ctx context.Context,
	insuranceIDs []int64,
) ([]Nominee, error) {
	nominees := []Nominee{}
	if len(insuranceIDs) == 0 {
		return nominees, nil
	}

	query, args, err := sqlx.In(`SELECT `+nomineeColumns+`
		FROM nominees
		WHERE insurance_id IN (?)
		ORDER BY insurance_id, created_at, id`, insuranceIDs)
	if err != nil {
		return nil, fmt.Errorf("list nominees: %w", err)
	}

	if err := r.db.SelectContext(ctx, &nominees, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list nominees: %w", err)
	}

	return nominees, nil
}

func (r *repository) DeleteByInsuranceID(
	ctx context.Context,
	insuranceID int64,
) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM nominees WHERE insurance_id = $1`, insuranceID)
	if err != nil {
		return 0, fmt.Errorf("delete nominees of insurance: %w", err)
	}

	return result.RowsAffected()
}

func (r *repository) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	query := `
		DELETE FROM nominees
		WHERE insurance_id IN (SELECT id FROM insurances WHERE user_id = $1)`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("delete nominees of customer: %w", err)
	}

	return result.RowsAffected()
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM nominees`); err != nil {
		return 0, fmt.Errorf("count nominees: %w", err)
	}

	return count, nil
}
