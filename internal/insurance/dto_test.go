// AngelaMos | 2026
// dto_test.go

package insurance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weclaim/weclaim-api/internal/core"
)

func date(t *testing.T, raw string) *Date {
	t.Helper()

	parsed, err := ParseDate(raw)
	require.NoError(t, err)
	return &Date{Time: parsed}
}

func amountOf(d decimal.Decimal) Amount {
	return Amount{NullDecimal: decimal.NewNullDecimal(d)}
}

func TestInsuranceRequestCheck(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		amount  Amount
		wantErr string
	}{
		{name: "one day apart", from: "2025-01-01", to: "2025-01-02"},
		{name: "a year with amount", from: "2025-01-01", to: "2026-01-01", amount: amountOf(decimal.NewFromInt(250000))},
		{name: "same day", from: "2025-01-01", to: "2025-01-01", wantErr: "To date must be after From date"},
		{name: "reversed", from: "2025-03-01", to: "2025-01-01", wantErr: "To date must be after From date"},
		{name: "zero amount", from: "2025-01-01", to: "2025-06-01", amount: amountOf(decimal.Zero), wantErr: "Insurance amount must be greater than 0"},
		{
			name:    "negative amount",
			from:    "2025-01-01",
			to:      "2025-06-01",
			amount:  amountOf(decimal.NewFromInt(-10)),
			wantErr: "Insurance amount must be greater than 0",
		},
		{
			name:    "sub cent amount",
			from:    "2025-01-01",
			to:      "2025-06-01",
			amount:  amountOf(decimal.RequireFromString("0.001")),
			wantErr: "Insurance amount can have at most 2 decimal places",
		},
		{
			name:    "three decimals",
			from:    "2025-01-01",
			to:      "2025-06-01",
			amount:  amountOf(decimal.RequireFromString("10.125")),
			wantErr: "Insurance amount can have at most 2 decimal places",
		},
		{
			name:   "trailing zeros",
			from:   "2025-01-01",
			to:     "2025-06-01",
			amount: amountOf(decimal.RequireFromString("10.500")),
		},
		{
			name:   "largest storable",
			from:   "2025-01-01",
			to:     "2025-06-01",
			amount: amountOf(decimal.RequireFromString("999999999999.99")),
		},
		{
			name:    "column overflow",
			from:    "2025-01-01",
			to:      "2025-06-01",
			amount:  amountOf(decimal.RequireFromString("1e15")),
			wantErr: "Insurance amount must be less than 1000000000000",
		},
		{
			name:    "exactly ten to the twelfth",
			from:    "2025-01-01",
			to:      "2025-06-01",
			amount:  amountOf(decimal.New(1, 12)),
			wantErr: "Insurance amount must be less than 1000000000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := InsuranceRequest{
				InsuranceFromDate: date(t, tt.from),
				InsuranceToDate:   date(t, tt.to),
				InsuranceAmount:   tt.amount,
			}

			err := req.Check()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			appErr, ok := core.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantErr, appErr.Message)
		})
	}
}

func TestAmountJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		valid   bool
		want    string
		wantErr bool
	}{
		{name: "number", body: `{"insuranceAmount": 1500.5}`, valid: true, want: "1500.5"},
		{name: "numeric string", body: `{"insuranceAmount": "2500"}`, valid: true, want: "2500"},
		{name: "null", body: `{"insuranceAmount": null}`},
		{name: "empty string", body: `{"insuranceAmount": ""}`},
		{name: "missing", body: `{}`},
		{name: "garbage", body: `{"insuranceAmount": "lots"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req InsuranceRequest
			err := json.Unmarshal([]byte(tt.body), &req)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, core.IsAppError(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.valid, req.InsuranceAmount.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, req.InsuranceAmount.Decimal.String())
			}
		})
	}
}

func TestDecodedSubCentAmountRejected(t *testing.T) {
	var req InsuranceRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"insuranceFromDate": "2025-01-01",
		"insuranceToDate": "2026-01-01",
		"insuranceAmount": 0.001
	}`), &req))

	appErr, ok := core.AsAppError(req.Check())
	require.True(t, ok)
	assert.Equal(t, "Insurance amount can have at most 2 decimal places", appErr.Message)
}

func TestAmountMarshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
	}{
		A: amountOf(decimal.RequireFromString("1500.5")),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1500.50,"b":null}`, string(out))

	value, err := Amount{}.Value()
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-02-28 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2025-02-28T10:30:00+05:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 28, 5, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("28/02/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid date")

	var req InsuranceRequest
	err = json.Unmarshal([]byte(`{"insuranceFromDate": 20250101}`), &req)
	assert.True(t, core.IsAppError(err))
}
