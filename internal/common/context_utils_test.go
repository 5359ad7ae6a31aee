package common

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateGSTIN(t *testing.T) {
	assert.NoError(t, ValidateGSTIN("27AAPFU0939F1ZV", "gstin"))
	assert.NoError(t, ValidateGSTIN("", "gstin"))
	assert.NoError(t, ValidateGSTIN("   ", "gstin"))

	assert.Error(t, ValidateGSTIN("27AAPFU0939F1Z", "gstin"), "14 characters")
	assert.Error(t, ValidateGSTIN("27AAPFU0939F1ZVX", "gstin"), "16 characters")
	assert.Error(t, ValidateGSTIN("27aapfu0939f1zv", "gstin"), "lowercase")
	assert.Error(t, ValidateGSTIN("XXAAPFU0939F1ZV", "gstin"), "non-numeric state code")
	assert.Error(t, ValidateGSTIN("27AAPFU0939F1XV", "gstin"), "missing Z at position 14")
}

func TestValidateStateCode(t *testing.T) {
	assert.NoError(t, ValidateStateCode("27", "state_code"))
	assert.NoError(t, ValidateStateCode("07", "state_code"))

	assert.Error(t, ValidateStateCode("7", "state_code"))
	assert.Error(t, ValidateStateCode("271", "state_code"))
	assert.Error(t, ValidateStateCode("MH", "state_code"))
	assert.Error(t, ValidateStateCode("", "state_code"))
}

func TestStateCodeFromGSTIN(t *testing.T) {
	assert.Equal(t, "27", StateCodeFromGSTIN("27AAPFU0939F1ZV"))
	assert.Equal(t, "07", StateCodeFromGSTIN("07AABCU9603R1ZM"))
	assert.Equal(t, "", StateCodeFromGSTIN("2"))
	assert.Equal(t, "", StateCodeFromGSTIN(""))
}

func TestFinancialYear(t *testing.T) {
	assert.Equal(t, "2024-25", FinancialYear(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-25", FinancialYear(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-25", FinancialYear(time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)))
	assert.Equal(t, "2025-26", FinancialYear(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2023-24", FinancialYear(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2099-00", FinancialYear(time.Date(2099, time.June, 1, 0, 0, 0, 0, time.UTC)))
}

func TestValidateUUID(t *testing.T) {
	id, err := ValidateUUID("b9a7f9a0-9c1f-4a7e-9a9a-0f2f4e1c2d3e", "id")
	assert.NoError(t, err)
	assert.Equal(t, "b9a7f9a0-9c1f-4a7e-9a9a-0f2f4e1c2d3e", id.String())

	_, err = ValidateUUID("", "id")
	assert.EqualError(t, err, "id is required")

	_, err = ValidateUUID("not-a-uuid", "id")
	assert.EqualError(t, err, "id has invalid UUID format")
}

func TestSanitizeSearchQuery(t *testing.T) {
	assert.Equal(t, "urea", SanitizeSearchQuery("  urea  "))
	assert.Equal(t, "urea", SanitizeSearchQuery("%urea_"))
	assert.Len(t, SanitizeSearchQuery(strings.Repeat("a", 150)), 100)
}

func TestValidatePaginationParams(t *testing.T) {
	limit, offset := ValidatePaginationParams(0, -5)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 0, offset)

	limit, offset = ValidatePaginationParams(500, 20)
	assert.Equal(t, 200, limit)
	assert.Equal(t, 20, offset)

	limit, offset = ValidatePaginationParams(25, 10)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 10, offset)
}
