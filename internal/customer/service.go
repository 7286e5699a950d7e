// AngelaMos | 2026
// service.go

package customer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/weclaim/weclaim-api/internal/core"
	"github.com/weclaim/weclaim-api/internal/insurance"
	"github.com/weclaim/weclaim-api/internal/middleware"
	"github.com/weclaim/weclaim-api/internal/nominee"
)

type Service struct {
	db   *sqlx.DB
	repo Repository
}

func NewService(db *sqlx.DB, repo Repository) *Service {
	return &Service{
		db:   db,
		repo: repo,
	}
}

func (s *Service) List(ctx context.Context) ([]Customer, error) {
	return s.repo.List(ctx)
}

// Search trims q and returns at most ten matches. Queries shorter than three
// characters return nothing without reaching the database.
func (s *Service) Search(ctx context.Context, q string) ([]Match, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < searchMinLength {
		return []Match{}, nil
	}

	return s.repo.Search(ctx, q, searchLimit)
}

func (s *Service) Create(
	ctx context.Context,
	createdByID int64,
	req CustomerRequest,
) (*Customer, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}

	customer := &Customer{
		FullName:    req.FullName,
		Mobile:      req.Mobile,
		Email:       req.Email,
		ProofType:   req.ProofType,
		ProofNumber: req.ProofNumber,
		CreatedByID: createdByID,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req CustomerRequest,
) (*Customer, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}

	customer := &Customer{
		ID:          id,
		FullName:    req.FullName,
		Mobile:      req.Mobile,
		Email:       req.Email,
		ProofType:   req.ProofType,
		ProofNumber: req.ProofNumber,
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// Delete removes the customer with all of its insurances and their
// nominees in one transaction. Agents may not delete customers.
func (s *Service) Delete(ctx context.Context, role string, id int64) error {
	if role == middleware.RoleAgent {
		return core.ForbiddenError("Agents cannot delete users")
	}

	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		nominees, err := nominee.NewRepository(tx).DeleteByUserID(ctx, id)
		if err != nil {
			return err
		}

		insurances, err := insurance.NewRepository(tx).DeleteByUserID(ctx, id)
		if err != nil {
			return err
		}

		if err := NewRepository(tx).Delete(ctx, id); err != nil {
			return err
		}

		core.AddSpanEvent(ctx, "customer.deleted",
			core.AttrCustomerID.Int64(id),
			core.AttrInsurancesRemoved.Int64(insurances),
			core.AttrNomineesRemoved.Int64(nominees),
		)
		slog.DebugContext(ctx, "customer deleted",
			"customer_id", id,
			"insurances_removed", insurances,
			"nominees_removed", nominees,
		)
		return nil
	})
}

// GetOwner serves the insurance listing with a customer summary.
func (s *Service) GetOwner(ctx context.Context, id int64) (*insurance.Owner, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &insurance.Owner{
		ID:       customer.ID,
		FullName: customer.FullName,
		Mobile:   customer.Mobile,
		Email:    customer.Email,
	}, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

var _ insurance.OwnerLookup = (*Service)(nil)
