// Package domain contains incoming payments and their per-shipment
// distributions.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/marmaralog/brokerage/pkg/money"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DistributionStatus is the derived state of an incoming payment.
type DistributionStatus string

const (
	StatusPending DistributionStatus = "PENDING"
	StatusPartial DistributionStatus = "PARTIAL"
	StatusFull    DistributionStatus = "FULL"
)

// PaymentType says which bucket of a shipment a distribution settles.
type PaymentType string

const (
	TypeAdvance PaymentType = "advance"
	TypeBalance PaymentType = "balance"
)

// IncomingPayment is a received payment, possibly not yet assigned to any
// shipment. AmountDistributed is maintained by the ledger; Status is derived
// from it and stored for cheap filtering.
type IncomingPayment struct {
	ID                snowflake.ID       `gorm:"primaryKey"`
	PayerName         string             `gorm:"type:text;not null"`
	BankReference     string             `gorm:"type:text"`
	Currency          string             `gorm:"type:text;not null;default:'TRY'"`
	TotalAmount       decimal.Decimal    `gorm:"type:numeric(18,2);not null"`
	AmountDistributed decimal.Decimal    `gorm:"type:numeric(18,2);not null;default:0"`
	Status            DistributionStatus `gorm:"type:text;not null;default:'PENDING'"`
	ReceivedAt        time.Time          `gorm:"not null"`
	Metadata          datatypes.JSONMap  `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt         time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (IncomingPayment) TableName() string { return "incoming_payments" }

// RemainingBalance is always TotalAmount - AmountDistributed.
func (p *IncomingPayment) RemainingBalance() decimal.Decimal {
	return p.TotalAmount.Sub(p.AmountDistributed)
}

// DeriveStatus computes the distribution status for a distributed amount.
// Full absorbs sub-cent rounding noise via the shared settlement epsilon.
func DeriveStatus(total, distributed decimal.Decimal) DistributionStatus {
	switch {
	case money.IsSettled(total.Sub(distributed)):
		return StatusFull
	case distributed.GreaterThan(decimal.Zero):
		return StatusPartial
	default:
		return StatusPending
	}
}

// PaymentDistribution is a slice of an incoming payment assigned to one
// shipment. Rows are append-only; corrections happen by deletion.
type PaymentDistribution struct {
	ID                snowflake.ID    `gorm:"primaryKey"`
	PaymentID         snowflake.ID    `gorm:"not null;index"`
	ShipmentReference string          `gorm:"type:text;not null;index"`
	Amount            decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Type              PaymentType     `gorm:"type:text;not null"`
	Note              string          `gorm:"type:text"`
	CreatedAt         time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (PaymentDistribution) TableName() string { return "payment_distributions" }
