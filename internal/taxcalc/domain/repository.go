package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	// ReplaceCalculation overwrites the run stored for calc.Reference. The
	// write only proceeds when the owning shipment's calc version still
	// equals expectedVersion; otherwise
	// shipmentdomain.ErrConcurrentModification is returned unwritten.
	ReplaceCalculation(ctx context.Context, shipmentID snowflake.ID, expectedVersion int64, calc *TaxCalculation, items []TaxCalculationItem) error
	FindByReference(ctx context.Context, reference string) (*TaxCalculation, []TaxCalculationItem, error)
}
