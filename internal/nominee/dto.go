// AngelaMos | 2026
// dto.go

package nominee

import (
	"strings"
	"time"
)

type NomineeRequest struct {
	NomineeName string `json:"nomineeName" validate:"required,max=150"`
	Mobile      string `json:"mobile"      validate:"required,mobile_in"`
	Relation    string `json:"relation"    validate:"required,max=50"`
}

func (r *NomineeRequest) Normalize() {
	r.NomineeName = strings.TrimSpace(r.NomineeName)
	r.Mobile = strings.TrimSpace(r.Mobile)
	r.Relation = strings.TrimSpace(r.Relation)
}

type NomineeResponse struct {
	ID          int64     `json:"id"`
	InsuranceID int64     `json:"insuranceId"`
	NomineeName string    `json:"nomineeName"`
	Mobile      string    `json:"mobile"`
	Relation    string    `json:"relation"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type NomineeEnvelope struct {
	Nominee NomineeResponse `json:"nominee"`
}

func ToNomineeResponse(n *Nominee) NomineeResponse {
	return NomineeResponse{
		ID:          n.ID,
		InsuranceID: n.InsuranceID,
		NomineeName: n.NomineeName,
		Mobile:      n.Mobile,
		Relation:    n.Relation,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func ToNomineeResponseList(nominees []Nominee) []NomineeResponse {
	responses := make([]NomineeResponse, 0, len(nominees))
	for i := range nominees {
		responses = append(responses, ToNomineeResponse(&nominees[i]))
	}
	return responses
}
