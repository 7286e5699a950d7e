// AngelaMos | 2026
// entity.go

package customer

import (
	"time"
)

type Customer struct {
	ID          int64     `db:"id"`
	FullName    string    `db:"full_name"`
	Mobile      string    `db:"mobile"`
	Email       *string   `db:"email"`
	ProofType   string    `db:"proof_type"`
	ProofNumber string    `db:"proof_number"`
	CreatedByID int64     `db:"created_by_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Match is a compact search hit for autocomplete.
type Match struct {
	ID       int64  `db:"id"        json:"id"`
	FullName string `db:"full_name" json:"fullName"`
	Mobile   string `db:"mobile"    json:"mobile"`
}

const (
	ProofAadhar = "AADHAR"
	ProofPAN    = "PAN"
)

const (
	searchMinLength = 3
	searchLimit     = 10
)

func IsValidProofType(proofType string) bool {
	return proofType == ProofAadhar || proofType == ProofPAN
}
