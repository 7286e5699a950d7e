// AngelaMos | 2026
// dto.go

package insurance

import (
	"strings"
	"time"

	"github.com/weclaim/weclaim-api/internal/core"
	"github.com/weclaim/weclaim-api/internal/nominee"
)

type InsuranceRequest struct {
	CompanyName       string `json:"companyName"       validate:"required,max=150"`
	InsuranceNumber   string `json:"insuranceNumber"   validate:"required,max=100"`
	InsuranceType     string `json:"insuranceType"     validate:"required,max=100"`
	InsuranceFromDate *Date  `json:"insuranceFromDate" validate:"required"`
	InsuranceToDate   *Date  `json:"insuranceToDate"   validate:"required"`
	InsuranceAmount   Amount `json:"insuranceAmount"   validate:"-"`
}

func (r *InsuranceRequest) Normalize() {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.InsuranceNumber = strings.TrimSpace(r.InsuranceNumber)
	r.InsuranceType = strings.TrimSpace(r.InsuranceType)
}

// Check enforces the rules the tags cannot express. It assumes the tag
// validation already passed.
func (r *InsuranceRequest) Check() error {
	if !r.InsuranceToDate.After(r.InsuranceFromDate.Time) {
		return core.ValidationError("To date must be after From date")
	}

	if !r.InsuranceAmount.Valid {
		return nil
	}

	if !r.InsuranceAmount.Positive() {
		return core.ValidationError("Insurance amount must be greater than 0")
	}

	exact, inRange := r.InsuranceAmount.Storable()
	if !exact {
		return core.ValidationError("Insurance amount can have at most 2 decimal places")
	}
	if !inRange {
		return core.ValidationError("Insurance amount must be less than 1000000000000")
	}

	return nil
}

type InsuranceResponse struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"userId"`
	CompanyName       string    `json:"companyName"`
	InsuranceNumber   string    `json:"insuranceNumber"`
	InsuranceType     string    `json:"insuranceType"`
	InsuranceFromDate time.Time `json:"insuranceFromDate"`
	InsuranceToDate   time.Time `json:"insuranceToDate"`
	InsuranceAmount   Amount    `json:"insuranceAmount"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type InsuranceWithNominees struct {
	InsuranceResponse
	Nominees []nominee.NomineeResponse `json:"nominees"`
}

type InsuranceEnvelope struct {
	Insurance InsuranceResponse `json:"insurance"`
}

type CreatedEnvelope struct {
	Success   bool              `json:"success"`
	Insurance InsuranceResponse `json:"insurance"`
}

type CustomerInsurancesResponse struct {
	User       Owner                   `json:"user"`
	Insurances []InsuranceWithNominees `json:"insurances"`
}

func ToInsuranceResponse(i *Insurance) InsuranceResponse {
	return InsuranceResponse{
		ID:                i.ID,
		UserID:            i.UserID,
		CompanyName:       i.CompanyName,
		InsuranceNumber:   i.InsuranceNumber,
		InsuranceType:     i.InsuranceType,
		InsuranceFromDate: i.InsuranceFromDate,
		InsuranceToDate:   i.InsuranceToDate,
		InsuranceAmount:   i.InsuranceAmount,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

func ToCustomerInsurancesResponse(
	owner *Owner,
	insurances []Insurance,
	nominees map[int64][]nominee.Nominee,
) CustomerInsurancesResponse {
	items := make([]InsuranceWithNominees, 0, len(insurances))
	for i := range insurances {
		items = append(items, InsuranceWithNominees{
			InsuranceResponse: ToInsuranceResponse(&insurances[i]),
			Nominees:          nominee.ToNomineeResponseList(nominees[insurances[i].ID]),
		})
	}

	return CustomerInsurancesResponse{
		User:       *owner,
		Insurances: items,
	}
}
