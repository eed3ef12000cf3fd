package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateLookup resolves the rate row for a classification code. Tax
// calculations depend on this narrow interface rather than the full service.
type RateLookup interface {
	FindByCode(ctx context.Context, code string) (*HSCode, error)
}

type Service interface {
	Create(ctx context.Context, req UpsertRequest) (*Response, error)
	Update(ctx context.Context, code string, req UpsertRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	GetByCode(ctx context.Context, code string) (*Response, error)
}

type UpsertRequest struct {
	Code                          string           `json:"code"`
	Description                   string           `json:"description"`
	DescriptionTR                 string           `json:"description_tr"`
	Unit                          string           `json:"unit"`
	CustomsTaxPercent             decimal.Decimal  `json:"customs_tax_percent"`
	AdditionalCustomsTaxPercent   decimal.Decimal  `json:"additional_customs_tax_percent"`
	KKDFPercent                   decimal.Decimal  `json:"kkdf_percent"`
	VATPercent                    decimal.Decimal  `json:"vat_percent"`
	PreferentialCustomsTaxPercent *decimal.Decimal `json:"preferential_customs_tax_percent"`
	RequiresRegistryForm          bool             `json:"requires_registry_form"`
	RequiresDyeTest               bool             `json:"requires_dye_test"`
	SpecialCustoms                bool             `json:"special_customs"`
}

type ListRequest struct {
	Code    string
	SortBy  string
	OrderBy string
}

type Response struct {
	ID                            string           `json:"id"`
	Code                          string           `json:"code"`
	Description                   string           `json:"description,omitempty"`
	DescriptionTR                 string           `json:"description_tr,omitempty"`
	Unit                          string           `json:"unit,omitempty"`
	CustomsTaxPercent             decimal.Decimal  `json:"customs_tax_percent"`
	AdditionalCustomsTaxPercent   decimal.Decimal  `json:"additional_customs_tax_percent"`
	KKDFPercent                   decimal.Decimal  `json:"kkdf_percent"`
	VATPercent                    decimal.Decimal  `json:"vat_percent"`
	PreferentialCustomsTaxPercent *decimal.Decimal `json:"preferential_customs_tax_percent,omitempty"`
	RequiresRegistryForm          bool             `json:"requires_registry_form"`
	RequiresDyeTest               bool             `json:"requires_dye_test"`
	SpecialCustoms                bool             `json:"special_customs"`
	Requirements                  string           `json:"requirements,omitempty"`
	CreatedAt                     time.Time        `json:"created_at"`
	UpdatedAt                     time.Time        `json:"updated_at"`
}
