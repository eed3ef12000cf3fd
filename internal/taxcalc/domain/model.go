// Package domain contains the customs tax calculation models. A calculation
// is one run over a shipment reference; re-running replaces the previous run
// wholesale so persisted rows always describe a single consistent run.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	allocationdomain "github.com/marmaralog/brokerage/internal/allocation/domain"
	"github.com/shopspring/decimal"
)

// TaxCalculation is the header row for one calculation run.
type TaxCalculation struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Reference   string       `gorm:"type:text;not null;uniqueIndex:ux_tax_calculations_reference"`
	InvoiceNo   string       `gorm:"type:text"`
	InvoiceDate *time.Time   `gorm:""`

	TotalValue    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	TotalQuantity int64           `gorm:"not null"`

	TransportCost decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	InsuranceCost decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	StorageCost   decimal.Decimal `gorm:"type:numeric(18,2);not null"`

	Method       allocationdomain.DistributionMethod `gorm:"type:text;not null"`
	CurrencyRate decimal.Decimal                     `gorm:"type:numeric(18,6);not null"`
	StampTax     decimal.Decimal                     `gorm:"type:numeric(18,2);not null"`
	Preferential bool                                `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (TaxCalculation) TableName() string { return "tax_calculations" }

// TaxCalculationItem is one line of a calculation run. The four percent
// columns snapshot the rate table at run time so stored amounts stay
// auditable after rate edits.
type TaxCalculationItem struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	CalculationID snowflake.ID `gorm:"not null;index"`

	HTSCode         string `gorm:"type:text"`
	TRHSCode        string `gorm:"type:text;not null"`
	CountryOfOrigin string `gorm:"type:text"`
	Style           string `gorm:"type:text"`
	Color           string `gorm:"type:text"`
	Category        string `gorm:"type:text"`
	Description     string `gorm:"type:text"`
	FabricContent   string `gorm:"type:text"`

	Cost       decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	UnitCount  int64           `gorm:"not null"`
	TotalValue decimal.Decimal `gorm:"type:numeric(18,2);not null"`

	TransportShare decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	InsuranceShare decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	StorageShare   decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	CIFValue       decimal.Decimal `gorm:"type:numeric(18,2);not null"`

	CustomsTaxPercent           decimal.Decimal `gorm:"type:numeric(8,6);not null"`
	AdditionalCustomsTaxPercent decimal.Decimal `gorm:"type:numeric(8,6);not null"`
	KKDFPercent                 decimal.Decimal `gorm:"type:numeric(8,6);not null"`
	VATPercent                  decimal.Decimal `gorm:"type:numeric(8,6);not null"`

	CustomsTax           decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	AdditionalCustomsTax decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	KKDF                 decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	VATBase              decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	VAT                  decimal.Decimal `gorm:"type:numeric(18,2);not null"`

	TotalTaxTL  decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	TotalTaxUSD decimal.Decimal `gorm:"type:numeric(18,2);not null"`

	Requirements string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (TaxCalculationItem) TableName() string { return "tax_calculation_items" }
