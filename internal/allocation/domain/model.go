// Package domain contains the invoice line items and shared-cost allocation
// models for a shipment.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// DistributionMethod selects how a shared-cost pool is split across items.
type DistributionMethod string

const (
	MethodProportional DistributionMethod = "proportional"
	MethodEqual        DistributionMethod = "equal"
)

// LineItem is one product line on a shipment invoice.
// TotalPrice always equals Quantity * UnitPrice at entry.
type LineItem struct {
	ID          snowflake.ID    `gorm:"primaryKey"`
	ShipmentID  snowflake.ID    `gorm:"not null;index"`
	Description string          `gorm:"type:text"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (LineItem) TableName() string { return "line_items" }

// AllocationResult is the allocated cost for one line item. The set of rows
// for a shipment is replaced wholesale on every calculation run.
type AllocationResult struct {
	ID               snowflake.ID       `gorm:"primaryKey"`
	ShipmentID       snowflake.ID       `gorm:"not null;index"`
	LineItemID       snowflake.ID       `gorm:"not null;uniqueIndex:ux_allocation_results_line_item"`
	Method           DistributionMethod `gorm:"type:text;not null"`
	FinalCost        decimal.Decimal    `gorm:"type:numeric(18,2);not null"`
	FinalCostPerItem decimal.Decimal    `gorm:"type:numeric(18,6);not null"`
	// CostMultiplier is only meaningful for proportional distribution; equal
	// distribution is not weight-derived, so the column stays NULL.
	CostMultiplier *decimal.Decimal `gorm:"type:numeric(18,8)"`
	CreatedAt      time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (AllocationResult) TableName() string { return "allocation_results" }

// AllocationConfig is the per-shipment distribution policy.
type AllocationConfig struct {
	ID         snowflake.ID       `gorm:"primaryKey"`
	ShipmentID snowflake.ID       `gorm:"not null;uniqueIndex:ux_allocation_configs_shipment"`
	Method     DistributionMethod `gorm:"type:text;not null;default:'proportional'"`
	IsVisible  bool               `gorm:"not null;default:true"`
	CreatedAt  time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (AllocationConfig) TableName() string { return "allocation_configs" }
