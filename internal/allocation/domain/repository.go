package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	// ReplaceLineItems swaps the shipment's line items and clears stale
	// allocation results in one transaction.
	ReplaceLineItems(ctx context.Context, shipmentID snowflake.ID, items []LineItem) error
	ListLineItems(ctx context.Context, shipmentID snowflake.ID) ([]LineItem, error)

	UpsertConfig(ctx context.Context, cfg *AllocationConfig) error
	FindConfig(ctx context.Context, shipmentID snowflake.ID) (*AllocationConfig, error)

	// ReplaceResults overwrites the shipment's allocation results. The write
	// only proceeds when the shipment's calc version still equals
	// expectedVersion; otherwise shipmentdomain.ErrConcurrentModification is
	// returned and nothing is written.
	ReplaceResults(ctx context.Context, shipmentID snowflake.ID, expectedVersion int64, results []AllocationResult) error
	ListResults(ctx context.Context, shipmentID snowflake.ID) ([]AllocationResult, error)
}
