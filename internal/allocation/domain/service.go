package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	// ReplaceLineItems swaps the shipment's full line-item set in one
	// transaction. Previous allocation results for the shipment are dropped
	// because they no longer describe the stored items.
	ReplaceLineItems(ctx context.Context, reference string, items []LineItemInput) ([]LineItemResponse, error)
	ListLineItems(ctx context.Context, reference string) ([]LineItemResponse, error)

	UpsertConfig(ctx context.Context, reference string, req ConfigRequest) (*ConfigResponse, error)
	GetConfig(ctx context.Context, reference string) (*ConfigResponse, error)

	// Allocate distributes the pool across the shipment's line items and
	// persists the results, replacing any previous run.
	Allocate(ctx context.Context, reference string, req AllocateRequest) ([]ResultResponse, error)
	ListResults(ctx context.Context, reference string) ([]ResultResponse, error)
}

type LineItemInput struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ConfigRequest struct {
	Method    DistributionMethod `json:"method"`
	IsVisible *bool              `json:"is_visible"`
}

type ConfigResponse struct {
	Method    DistributionMethod `json:"method"`
	IsVisible bool               `json:"is_visible"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type AllocateRequest struct {
	Pool decimal.Decimal `json:"pool"`
	// Method overrides the shipment's configured policy when set.
	Method DistributionMethod `json:"method,omitempty"`
}

type ResultResponse struct {
	LineItemID       string             `json:"line_item_id"`
	Description      string             `json:"description,omitempty"`
	Method           DistributionMethod `json:"method"`
	FinalCost        decimal.Decimal    `json:"final_cost"`
	FinalCostPerItem decimal.Decimal    `json:"final_cost_per_item"`
	CostMultiplier   *decimal.Decimal   `json:"cost_multiplier,omitempty"`
}
