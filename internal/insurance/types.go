// AngelaMos | 2026
// types.go

package insurance

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/weclaim/weclaim-api/internal/core"
)

const dateLayout = "2006-01-02"

// maxAmount is the first value that no longer fits NUMERIC(14,2).
var maxAmount = decimal.New(1, 12)

// Amount is an optional monetary value. JSON null, a missing field and an
// empty string all decode to an absent amount that is stored as NULL.
type Amount struct {
	decimal.NullDecimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		a.NullDecimal = decimal.NullDecimal{}
		return nil
	}

	var d decimal.Decimal
	if err := d.UnmarshalJSON(trimmed); err != nil {
		return core.ValidationError("insuranceAmount must be a number")
	}

	a.NullDecimal = decimal.NewNullDecimal(d)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Decimal.StringFixed(2)), nil
}

// Positive reports whether the amount is present and greater than zero.
func (a Amount) Positive() bool {
	return a.Valid && a.Decimal.IsPositive()
}

// Storable reports whether the amount fits the column without rounding.
func (a Amount) Storable() (exact, inRange bool) {
	return a.Decimal.Equal(a.Decimal.Round(2)), a.Decimal.LessThan(maxAmount)
}

// Date accepts either a calendar date (2006-01-02) or an RFC 3339 timestamp.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return core.ValidationError("dates must be strings")
	}

	t, err := ParseDate(raw)
	if err != nil {
		return err
	}

	d.Time = t
	return nil
}

func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, core.ValidationError("Invalid date: " + raw)
}
