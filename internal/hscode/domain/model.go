// Package domain contains the tariff-code rate table.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Requirement markers copied onto calculated items as advisory text. The
// declaration export layer matches on these exact strings.
const (
	RequirementRegistryForm   = "EX REGISTRY FORM"
	RequirementDyeTest        = "AZO DYE TEST"
	RequirementSpecialCustoms = "SPECIAL CUSTOM"
)

// HSCode is one rate-table row keyed by a TR HS classification code.
// All percent columns hold fractions in [0,1], never pre-multiplied by 100.
// PreferentialCustomsTaxPercent is the optional ATR-style override applied in
// place of CustomsTaxPercent when a calculation runs under a trade
// certificate; the other percentages are unaffected.
type HSCode struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	Code          string       `gorm:"type:text;not null;uniqueIndex:ux_hs_codes_code"`
	Description   string       `gorm:"type:text"`
	DescriptionTR string       `gorm:"type:text"`
	Unit          string       `gorm:"type:text"`

	CustomsTaxPercent             decimal.Decimal  `gorm:"type:numeric(8,6);not null"`
	AdditionalCustomsTaxPercent   decimal.Decimal  `gorm:"type:numeric(8,6);not null"`
	KKDFPercent                   decimal.Decimal  `gorm:"type:numeric(8,6);not null"`
	VATPercent                    decimal.Decimal  `gorm:"type:numeric(8,6);not null"`
	PreferentialCustomsTaxPercent *decimal.Decimal `gorm:"type:numeric(8,6)"`

	RequiresRegistryForm bool `gorm:"not null;default:false"`
	RequiresDyeTest      bool `gorm:"not null;default:false"`
	SpecialCustoms       bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (HSCode) TableName() string { return "hs_codes" }

func (h *HSCode) Validate() error {
	if strings.TrimSpace(h.Code) == "" {
		return ErrInvalidCode
	}
	for _, rate := range []decimal.Decimal{
		h.CustomsTaxPercent,
		h.AdditionalCustomsTaxPercent,
		h.KKDFPercent,
		h.VATPercent,
	} {
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return ErrInvalidRateFraction
		}
	}
	if h.PreferentialCustomsTaxPercent != nil {
		if h.PreferentialCustomsTaxPercent.IsNegative() || h.PreferentialCustomsTaxPercent.GreaterThan(decimal.NewFromInt(1)) {
			return ErrInvalidRateFraction
		}
	}
	return nil
}

// EffectiveCustomsTaxPercent returns the customs-tax fraction to apply,
// honoring the preferential override when requested and present.
func (h *HSCode) EffectiveCustomsTaxPercent(preferential bool) decimal.Decimal {
	if preferential && h.PreferentialCustomsTaxPercent != nil {
		return *h.PreferentialCustomsTaxPercent
	}
	return h.CustomsTaxPercent
}

// Requirements renders the advisory requirement markers for this code.
func (h *HSCode) Requirements() string {
	var markers []string
	if h.RequiresRegistryForm {
		markers = append(markers, RequirementRegistryForm)
	}
	if h.RequiresDyeTest {
		markers = append(markers, RequirementDyeTest)
	}
	if h.SpecialCustoms {
		markers = append(markers, RequirementSpecialCustoms)
	}
	return strings.Join(markers, ", ")
}
