// Package domain holds the cost records a shipment accrues outside the tax
// engine: import expenses paid to third parties and service invoices issued
// by the brokerage itself.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/marmaralog/brokerage/pkg/money"
	"github.com/shopspring/decimal"
)

// ImportExpense is a cost incurred on behalf of the importer during
// clearance. The TL rate is captured at entry so later summaries are not
// affected by rate movement.
type ImportExpense struct {
	ID                snowflake.ID    `gorm:"primaryKey"`
	ShipmentReference string          `gorm:"type:text;not null;index"`
	Description       string          `gorm:"type:text;not null"`
	Amount            decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Currency          string          `gorm:"type:text;not null;default:'TRY'"`
	TLRate            decimal.Decimal `gorm:"type:numeric(18,6);not null;default:1"`
	CreatedAt         time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ImportExpense) TableName() string { return "import_expenses" }

// AmountTL converts the expense into Turkish lira at its entry rate.
func (e *ImportExpense) AmountTL() decimal.Decimal {
	return money.Round2(e.Amount.Mul(e.TLRate))
}

// ServiceInvoice is a brokerage fee billed against the shipment.
type ServiceInvoice struct {
	ID                snowflake.ID    `gorm:"primaryKey"`
	ShipmentReference string          `gorm:"type:text;not null;index"`
	Description       string          `gorm:"type:text;not null"`
	InvoiceNo         string          `gorm:"type:text"`
	Amount            decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Currency          string          `gorm:"type:text;not null;default:'TRY'"`
	TLRate            decimal.Decimal `gorm:"type:numeric(18,6);not null;default:1"`
	IssuedAt          time.Time       `gorm:"not null"`
	CreatedAt         time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ServiceInvoice) TableName() string { return "service_invoices" }

// AmountTL converts the invoice into Turkish lira at its entry rate.
func (i *ServiceInvoice) AmountTL() decimal.Decimal {
	return money.Round2(i.Amount.Mul(i.TLRate))
}
