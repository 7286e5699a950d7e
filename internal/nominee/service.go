// AngelaMos | 2026
// service.go

package nominee

import (
	"context"
	"fmt"

	"github.com/weclaim/weclaim-api/internal/core"
)

// InsuranceChecker reports whether insuranceID exists and belongs to the
// customer userID.
type InsuranceChecker interface {
	Exists(ctx context.Context, userID, insuranceID int64) (bool, error)
}

type Service struct {
	repo       Repository
	insurances InsuranceChecker
}

func NewService(repo Repository, insurances InsuranceChecker) *Service {
	return &Service{
		repo:       repo,
		insurances: insurances,
	}
}

func (s *Service) Create(
	ctx context.Context,
	userID, insuranceID int64,
	req NomineeRequest,
) (*Nominee, error) {
	if err := s.requireInsurance(ctx, userID, insuranceID); err != nil {
		return nil, err
	}

	nominee := &Nominee{
		InsuranceID: insuranceID,
		NomineeName: req.NomineeName,
		Mobile:      req.Mobile,
		Relation:    req.Relation,
	}

	if err := s.repo.Create(ctx, nominee); err != nil {
		return nil, err
	}

	return nominee, nil
}

func (s *Service) Update(
	ctx context.Context,
	userID, insuranceID, id int64,
	req NomineeRequest,
) (*Nominee, error) {
	if err := s.requireInsurance(ctx, userID, insuranceID); err != nil {
		return nil, err
	}

	nominee := &Nominee{
		ID:          id,
		InsuranceID: insuranceID,
		NomineeName: req.NomineeName,
		Mobile:      req.Mobile,
		Relation:    req.Relation,
	}

	if err := s.repo.Update(ctx, nominee); err != nil {
		return nil, err
	}

	return nominee, nil
}

func (s *Service) Delete(ctx context.Context, userID, insuranceID, id int64) error {
	if err := s.requireInsurance(ctx, userID, insuranceID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, insuranceID, id)
}

// GroupByInsurance returns the nominees of each insurance keyed by its id.
// Insurances without nominees map to an empty slice.
func (s *Service) GroupByInsurance(
	ctx context.Context,
	insuranceIDs []int64,
) (map[int64][]Nominee, error) {
	nominees, err := s.repo.ListByInsuranceIDs(ctx, insuranceIDs)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int64][]Nominee, len(insuranceIDs))
	for _, id := range insuranceIDs {
		grouped[id] = []Nominee{}
	}
	for _, n := range nominees {
		grouped[n.InsuranceID] = append(grouped[n.InsuranceID], n)
	}

	return grouped, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) requireInsurance(ctx context.Context, userID, insuranceID int64) error {
	ok, err := s.insurances.Exists(ctx, userID, insuranceID)
	if err != nil {
		return fmt.Errorf("check insurance: %w", err)
	}
	if !ok {
		return core.NotFoundError("Insurance")
	}
	return nil
}
