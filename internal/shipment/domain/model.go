// Package domain contains persistence models for import procedures.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Status represents procedure lifecycle states.
type Status string

const (
	StatusOpen        Status = "OPEN"
	StatusInClearance Status = "IN_CLEARANCE"
	StatusClosed      Status = "CLOSED"
)

// Shipment represents one import procedure tracked by the office.
// CalcVersion guards the per-shipment recalculation write path: allocation and
// tax calculation runs bump it with a compare-and-set, so two concurrent
// recalculations cannot interleave partial overwrites.
type Shipment struct {
	ID            snowflake.ID      `gorm:"primaryKey"`
	Reference     string            `gorm:"type:text;not null;uniqueIndex:ux_shipments_reference"`
	ImporterName  string            `gorm:"type:text;not null"`
	DeclarationNo string            `gorm:"type:text"`
	Status        Status            `gorm:"type:text;not null;default:'OPEN'"`
	Notes         string            `gorm:"type:text"`
	CalcVersion   int64             `gorm:"not null;default:0"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Shipment) TableName() string { return "shipments" }
