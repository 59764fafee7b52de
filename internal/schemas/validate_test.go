package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProfilePayload_Valid(t *testing.T) {
	payload := []byte(`{
		"company_name": "Acme Robotics",
		"annual_revenue": 2000000,
		"growth_rate": 0.4,
		"summary": "Warehouse automation.",
		"strength": "Strong team",
		"weakness": "Single customer",
		"opportunity": "Large market",
		"threat": "Incumbents"
	}`)

	assert.NoError(t, ValidateProfilePayload(payload))
}

func TestValidateProfilePayload_PartialIsValid(t *testing.T) {
	// Missing fields are filled by coercion, not rejected here.
	assert.NoError(t, ValidateProfilePayload([]byte(`{"company_name": "Acme"}`)))
}

func TestValidateProfilePayload_WrongTypes(t *testing.T) {
	err := ValidateProfilePayload([]byte(`{"annual_revenue": "two million"}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
	assert.Equal(t, "annual_revenue", validationErr.Errors[0].Field)
}

func TestValidateProfilePayload_NegativeRevenue(t *testing.T) {
	err := ValidateProfilePayload([]byte(`{"annual_revenue": -5}`))
	require.Error(t, err)
}

func TestValidateProfilePayload_NotJSON(t *testing.T) {
	err := ValidateProfilePayload([]byte(`not json at all`))
	require.Error(t, err)
}
