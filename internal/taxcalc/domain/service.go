package domain

import (
	"context"
	"time"

	allocationdomain "github.com/marmaralog/brokerage/internal/allocation/domain"
	"github.com/shopspring/decimal"
)

type Service interface {
	// Compute runs a full customs tax calculation for the reference and
	// persists it, replacing any previous run for that reference.
	Compute(ctx context.Context, req ComputeRequest) (*CalculationResponse, error)
	GetByReference(ctx context.Context, reference string) (*CalculationResponse, error)
}

type ItemInput struct {
	HTSCode         string `json:"hts_code"`
	TRHSCode        string `json:"tr_hs_code"`
	CountryOfOrigin string `json:"country_of_origin"`
	Style           string `json:"style"`
	Color           string `json:"color"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	FabricContent   string `json:"fabric_content"`

	Cost      decimal.Decimal `json:"cost"`
	UnitCount int64           `json:"unit_count"`
}

type ComputeRequest struct {
	Reference   string     `json:"reference"`
	InvoiceNo   string     `json:"invoice_no"`
	InvoiceDate *time.Time `json:"invoice_date"`

	Items []ItemInput `json:"items"`

	TransportCost decimal.Decimal `json:"transport_cost"`
	InsuranceCost decimal.Decimal `json:"insurance_cost"`
	StorageCost   decimal.Decimal `json:"storage_cost"`

	// Method defaults to proportional when empty.
	Method       allocationdomain.DistributionMethod `json:"method,omitempty"`
	CurrencyRate decimal.Decimal                     `json:"currency_rate"`
	StampTax     decimal.Decimal                     `json:"stamp_tax"`
	Preferential bool                                `json:"preferential"`
}

type ItemResponse struct {
	ID              string `json:"id"`
	HTSCode         string `json:"hts_code,omitempty"`
	TRHSCode        string `json:"tr_hs_code"`
	CountryOfOrigin string `json:"country_of_origin,omitempty"`
	Style           string `json:"style,omitempty"`
	Color           string `json:"color,omitempty"`
	Category        string `json:"category,omitempty"`
	Description     string `json:"description,omitempty"`
	FabricContent   string `json:"fabric_content,omitempty"`

	Cost       decimal.Decimal `json:"cost"`
	UnitCount  int64           `json:"unit_count"`
	TotalValue decimal.Decimal `json:"total_value"`

	TransportShare decimal.Decimal `json:"transport_share"`
	InsuranceShare decimal.Decimal `json:"insurance_share"`
	StorageShare   decimal.Decimal `json:"storage_share"`
	CIFValue       decimal.Decimal `json:"cif_value"`

	CustomsTaxPercent           decimal.Decimal `json:"customs_tax_percent"`
	AdditionalCustomsTaxPercent decimal.Decimal `json:"additional_customs_tax_percent"`
	KKDFPercent                 decimal.Decimal `json:"kkdf_percent"`
	VATPercent                  decimal.Decimal `json:"vat_percent"`

	CustomsTax           decimal.Decimal `json:"customs_tax"`
	AdditionalCustomsTax decimal.Decimal `json:"additional_customs_tax"`
	KKDF                 decimal.Decimal `json:"kkdf"`
	VATBase              decimal.Decimal `json:"vat_base"`
	VAT                  decimal.Decimal `json:"vat"`

	// Declaration exports also report the VAT picture with KKDF backed out.
	VATBaseExcludingKKDF decimal.Decimal `json:"vat_base_excluding_kkdf"`
	VATExcludingKKDF     decimal.Decimal `json:"vat_excluding_kkdf"`

	TotalTaxTL  decimal.Decimal `json:"total_tax_tl"`
	TotalTaxUSD decimal.Decimal `json:"total_tax_usd"`

	Requirements string `json:"requirements,omitempty"`
}

type CalculationResponse struct {
	ID          string     `json:"id"`
	Reference   string     `json:"reference"`
	InvoiceNo   string     `json:"invoice_no,omitempty"`
	InvoiceDate *time.Time `json:"invoice_date,omitempty"`

	TotalValue    decimal.Decimal `json:"total_value"`
	TotalQuantity int64           `json:"total_quantity"`

	TransportCost decimal.Decimal `json:"transport_cost"`
	InsuranceCost decimal.Decimal `json:"insurance_cost"`
	StorageCost   decimal.Decimal `json:"storage_cost"`

	Method       allocationdomain.DistributionMethod `json:"method"`
	CurrencyRate decimal.Decimal                     `json:"currency_rate"`
	StampTax     decimal.Decimal                     `json:"stamp_tax"`
	Preferential bool                                `json:"preferential"`

	TotalCustomsTax           decimal.Decimal `json:"total_customs_tax"`
	TotalAdditionalCustomsTax decimal.Decimal `json:"total_additional_customs_tax"`
	TotalKKDF                 decimal.Decimal `json:"total_kkdf"`
	TotalVAT                  decimal.Decimal `json:"total_vat"`
	TotalTaxTL                decimal.Decimal `json:"total_tax_tl"`
	TotalTaxUSD               decimal.Decimal `json:"total_tax_usd"`

	Items []ItemResponse `json:"items"`

	CreatedAt time.Time `json:"created_at"`
}
