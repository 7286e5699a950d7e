// AngelaMos | 2026
// entity.go

package insurance

import (
	"time"
)

type Insurance struct {
	ID                int64     `db:"id"`
	UserID            int64     `db:"user_id"`
	CompanyName       string    `db:"company_name"`
	InsuranceNumber   string    `db:"insurance_number"`
	InsuranceType     string    `db:"insurance_type"`
	InsuranceFromDate time.Time `db:"insurance_from_date"`
	InsuranceToDate   time.Time `db:"insurance_to_date"`
	InsuranceAmount   Amount    `db:"insurance_amount"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// Owner is the customer summary returned alongside a customer's insurances.
type Owner struct {
	ID       int64   `json:"id"`
	FullName string  `json:"fullName"`
	Mobile   string  `json:"mobile"`
	Email    *string `json:"email"`
}
