// Package domain exposes the per-shipment financial position, aggregated
// from the tax engine, the expense records and the payment ledger.
package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Service interface {
	// Summarize reads the shipment's accrued costs and received payments and
	// returns the signed balance. It never writes.
	Summarize(ctx context.Context, reference string) (*SummaryResponse, error)
}

type SummaryResponse struct {
	Reference        string          `json:"reference"`
	TotalTaxTL       decimal.Decimal `json:"total_tax_tl"`
	ImportExpensesTL decimal.Decimal `json:"import_expenses_tl"`
	ServiceFeesTL    decimal.Decimal `json:"service_fees_tl"`
	TotalExpensesTL  decimal.Decimal `json:"total_expenses_tl"`
	AdvancePayments  decimal.Decimal `json:"advance_payments"`
	BalancePayments  decimal.Decimal `json:"balance_payments"`
	TotalPayments    decimal.Decimal `json:"total_payments"`
	// RemainingBalance is TotalExpensesTL - TotalPayments. Negative means the
	// importer has overpaid.
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}
