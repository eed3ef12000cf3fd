package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	CreateExpense(ctx context.Context, reference string, req EntryRequest) (*ExpenseResponse, error)
	ListExpenses(ctx context.Context, reference string) ([]ExpenseResponse, error)
	DeleteExpense(ctx context.Context, id string) error

	CreateInvoice(ctx context.Context, reference string, req InvoiceRequest) (*InvoiceResponse, error)
	ListInvoices(ctx context.Context, reference string) ([]InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
}

// EntryRequest creates an import expense. TLRate defaults to 1 when omitted,
// covering amounts already entered in lira.
type EntryRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	TLRate      decimal.Decimal `json:"tl_rate"`
}

type InvoiceRequest struct {
	Description string          `json:"description"`
	InvoiceNo   string          `json:"invoice_no"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	TLRate      decimal.Decimal `json:"tl_rate"`
	IssuedAt    *time.Time      `json:"issued_at"`
}

type ExpenseResponse struct {
	ID                string          `json:"id"`
	ShipmentReference string          `json:"shipment_reference"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	TLRate            decimal.Decimal `json:"tl_rate"`
	AmountTL          decimal.Decimal `json:"amount_tl"`
	CreatedAt         time.Time       `json:"created_at"`
}

type InvoiceResponse struct {
	ID                string          `json:"id"`
	ShipmentReference string          `json:"shipment_reference"`
	Description       string          `json:"description"`
	InvoiceNo         string          `json:"invoice_no,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	TLRate            decimal.Decimal `json:"tl_rate"`
	AmountTL          decimal.Decimal `json:"amount_tl"`
	IssuedAt          time.Time       `json:"issued_at"`
	CreatedAt         time.Time       `json:"created_at"`
}
