package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidate(t *testing.T) {
	row := &HSCode{
		Code:              "6109.10.00.00.11",
		CustomsTaxPercent: dec("0.12"),
		VATPercent:        dec("0.20"),
	}
	assert.NoError(t, row.Validate())

	row.Code = "  "
	assert.ErrorIs(t, row.Validate(), ErrInvalidCode)

	row.Code = "6109"
	row.KKDFPercent = dec("-0.01")
	assert.ErrorIs(t, row.Validate(), ErrInvalidRateFraction)

	// Rates are fractions, never percent points.
	row.KKDFPercent = dec("3")
	assert.ErrorIs(t, row.Validate(), ErrInvalidRateFraction)
}

func TestEffectiveCustomsTaxPercent(t *testing.T) {
	pref := dec("0.02")
	row := &HSCode{
		Code:                          "6109",
		CustomsTaxPercent:             dec("0.10"),
		PreferentialCustomsTaxPercent: &pref,
	}

	assert.True(t, row.EffectiveCustomsTaxPercent(false).Equal(dec("0.10")))
	assert.True(t, row.EffectiveCustomsTaxPercent(true).Equal(dec("0.02")))

	// No override row falls back to the standard rate either way.
	row.PreferentialCustomsTaxPercent = nil
	assert.True(t, row.EffectiveCustomsTaxPercent(true).Equal(dec("0.10")))
}

func TestRequirements(t *testing.T) {
	row := &HSCode{Code: "6109"}
	assert.Empty(t, row.Requirements())

	row.RequiresRegistryForm = true
	assert.Equal(t, "EX REGISTRY FORM", row.Requirements())

	row.RequiresDyeTest = true
	row.SpecialCustoms = true
	assert.Equal(t, "EX REGISTRY FORM, AZO DYE TEST, SPECIAL CUSTOM", row.Requirements())
}

func TestDeclarationCountryCode(t *testing.T) {
	assert.Equal(t, "720", DeclarationCountryCode("CN"))

	// Leading zeros survive the string representation.
	assert.Equal(t, "052", DeclarationCountryCode("TR"))
	assert.Equal(t, "005", DeclarationCountryCode("IT"))

	assert.Empty(t, DeclarationCountryCode("ZZ"))

	codes := DeclarationCountryCodes()
	require.NotEmpty(t, codes)
	codes["CN"] = "mutated"
	assert.Equal(t, "720", DeclarationCountryCode("CN"))
}
