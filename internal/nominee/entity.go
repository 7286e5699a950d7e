// AngelaMos | 2026
// entity.go

package nominee

import (
	"time"
)

type Nominee struct {
	ID          int64     `db:"id"`
	InsuranceID int64     `db:"insurance_id"`
	NomineeName string    `db:"nominee_name"`
	Mobile      string    `db:"mobile"`
	Relation    string    `db:"relation"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
