// AngelaMos | 2026
// dto.go

package customer

import (
	"strings"
	"time"

	"github.com/weclaim/weclaim-api/internal/core"
)

type CustomerRequest struct {
	FullName    string  `json:"fullName"    validate:"required,max=150"`
	Mobile      string  `json:"mobile"      validate:"required,mobile_in"`
	Email       *string `json:"email"       validate:"omitempty,email,max=255"`
	ProofType   string  `json:"proofType"   validate:"required"`
	ProofNumber string  `json:"proofNumber" validate:"required,max=50"`
}

func (r *CustomerRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Mobile = strings.TrimSpace(r.Mobile)
	r.ProofType = strings.ToUpper(strings.TrimSpace(r.ProofType))
	r.ProofNumber = strings.TrimSpace(r.ProofNumber)

	if r.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*r.Email))
		if e == "" {
			r.Email = nil
		} else {
			r.Email = &e
		}
	}
}

func (r *CustomerRequest) Check() error {
	if !IsValidProofType(r.ProofType) {
		return core.ValidationError("Invalid proofType. Allowed: AADHAR, PAN")
	}
	return nil
}

type CustomerResponse struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"fullName"`
	Mobile      string    `json:"mobile"`
	Email       *string   `json:"email"`
	ProofType   string    `json:"proofType"`
	ProofNumber string    `json:"proofNumber"`
	CreatedByID int64     `json:"createdById"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CustomerEnvelope struct {
	User CustomerResponse `json:"user"`
}

type CustomerListResponse struct {
	Users []CustomerResponse `json:"users"`
}

type SearchResponse struct {
	Users []Match `json:"users"`
}

func ToCustomerResponse(c *Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		FullName:    c.FullName,
		Mobile:      c.Mobile,
		Email:       c.Email,
		ProofType:   c.ProofType,
		ProofNumber: c.ProofNumber,
		CreatedByID: c.CreatedByID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ToCustomerResponseList(customers []Customer) []CustomerResponse {
	responses := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, ToCustomerResponse(&customers[i]))
	}
	return responses
}
