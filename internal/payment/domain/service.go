package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*PaymentResponse, error)
	List(ctx context.Context, req ListRequest) ([]PaymentResponse, error)
	GetByID(ctx context.Context, id string) (*PaymentResponse, error)
	// Delete removes a payment and all its distributions atomically.
	Delete(ctx context.Context, id string) error

	// Distribute assigns part of a payment's remaining balance to a shipment
	// bucket. The amount must not exceed the remaining balance; nothing is
	// written on rejection.
	Distribute(ctx context.Context, paymentID string, req DistributeRequest) (*DistributionResponse, error)
	DeleteDistribution(ctx context.Context, distributionID string) error
	ListDistributionsByShipment(ctx context.Context, reference string) ([]DistributionResponse, error)
}

type CreateRequest struct {
	PayerName     string          `json:"payer_name"`
	BankReference string          `json:"bank_reference"`
	Currency      string          `json:"currency"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ReceivedAt    *time.Time      `json:"received_at"`
	Metadata      map[string]any  `json:"metadata"`
}

type ListRequest struct {
	Status  string
	SortBy  string
	OrderBy string
}

type DistributeRequest struct {
	ShipmentReference string          `json:"shipment_reference"`
	Amount            decimal.Decimal `json:"amount"`
	Type              PaymentType     `json:"type"`
	Note              string          `json:"note"`
}

type PaymentResponse struct {
	ID                string             `json:"id"`
	PayerName         string             `json:"payer_name"`
	BankReference     string             `json:"bank_reference,omitempty"`
	Currency          string             `json:"currency"`
	TotalAmount       decimal.Decimal    `json:"total_amount"`
	AmountDistributed decimal.Decimal    `json:"amount_distributed"`
	RemainingBalance  decimal.Decimal    `json:"remaining_balance"`
	Status            DistributionStatus `json:"status"`
	ReceivedAt        time.Time          `json:"received_at"`
	CreatedAt         time.Time          `json:"created_at"`
}

type DistributionResponse struct {
	ID                string          `json:"id"`
	PaymentID         string          `json:"payment_id"`
	ShipmentReference string          `json:"shipment_reference"`
	Amount            decimal.Decimal `json:"amount"`
	Type              PaymentType     `json:"type"`
	Note              string          `json:"note,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}
