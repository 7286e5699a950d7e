// AngelaMos | 2026
// service.go

package insurance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/weclaim/weclaim-api/internal/core"
	"github.com/weclaim/weclaim-api/internal/nominee"
)

type OwnerLookup interface {
	GetOwner(ctx context.Context, userID int64) (*Owner, error)
}

type NomineeGrouper interface {
	GroupByInsurance(ctx context.Context, insuranceIDs []int64) (map[int64][]nominee.Nominee, error)
}

type Service struct {
	db       *sqlx.DB
	repo     Repository
	owners   OwnerLookup
	nominees NomineeGrouper
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	owners OwnerLookup,
	nominees NomineeGrouper,
) *Service {
	return &Service{
		db:       db,
		repo:     repo,
		owners:   owners,
		nominees: nominees,
	}
}

// ListForCustomer returns the customer summary and every insurance it owns,
// newest first, each with its nominees.
func (s *Service) ListForCustomer(
	ctx context.Context,
	userID int64,
) (*CustomerInsurancesResponse, error) {
	owner, err := s.requireOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	insurances, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(insurances))
	for _, ins := range insurances {
		ids = append(ids, ins.ID)
	}

	grouped, err := s.nominees.GroupByInsurance(ctx, ids)
	if err != nil {
		return nil, err
	}

	resp := ToCustomerInsurancesResponse(owner, insurances, grouped)
	return &resp, nil
}

func (s *Service) Create(
	ctx context.Context,
	userID int64,
	req InsuranceRequest,
) (*Insurance, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}

	if _, err := s.requireOwner(ctx, userID); err != nil {
		return nil, err
	}

	insurance := fromRequest(userID, req)
	if err := s.repo.Create(ctx, insurance); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("User")
		}
		return nil, err
	}

	return insurance, nil
}

func (s *Service) Update(
	ctx context.Context,
	userID, id int64,
	req InsuranceRequest,
) (*Insurance, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}

	insurance := fromRequest(userID, req)
	insurance.ID = id

	if err := s.repo.Update(ctx, insurance); err != nil {
		return nil, err
	}

	return insurance, nil
}

// Delete removes the insurance and its nominees in one transaction.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		exists, err := NewRepository(tx).Exists(ctx, userID, id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("delete insurance: %w", core.ErrNotFound)
		}

		removed, err := nominee.NewRepository(tx).DeleteByInsuranceID(ctx, id)
		if err != nil {
			return err
		}

		if err := NewRepository(tx).Delete(ctx, userID, id); err != nil {
			return err
		}

		core.AddSpanEvent(ctx, "insurance.deleted",
			core.AttrInsuranceID.Int64(id),
			core.AttrNomineesRemoved.Int64(removed),
		)
		slog.DebugContext(ctx, "insurance deleted",
			"insurance_id", id,
			"nominees_removed", removed,
		)
		return nil
	})
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) requireOwner(ctx context.Context, userID int64) (*Owner, error) {
	owner, err := s.owners.GetOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("User")
		}
		return nil, err
	}
	return owner, nil
}

func fromRequest(userID int64, req InsuranceRequest) *Insurance {
	return &Insurance{
		UserID:            userID,
		CompanyName:       req.CompanyName,
		InsuranceNumber:   req.InsuranceNumber,
		InsuranceType:     req.InsuranceType,
		InsuranceFromDate: req.InsuranceFromDate.Time,
		InsuranceToDate:   req.InsuranceToDate.Time,
		InsuranceAmount:   req.InsuranceAmount,
	}
}
