package service

import (
	"context"
	"strings"

	expensedomain "github.com/marmaralog/brokerage/internal/expense/domain"
	paymentdomain "github.com/marmaralog/brokerage/internal/payment/domain"
	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
	domain "github.com/marmaralog/brokerage/internal/summary/domain"
	taxcalcdomain "github.com/marmaralog/brokerage/internal/taxcalc/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log          *zap.Logger
	ShipmentRepo shipmentdomain.Repository
	TaxcalcRepo  taxcalcdomain.Repository
	ExpenseRepo  expensedomain.Repository
	PaymentRepo  paymentdomain.Repository
}

type service struct {
	log          *zap.Logger
	shipmentRepo shipmentdomain.Repository
	taxcalcRepo  taxcalcdomain.Repository
	expenseRepo  expensedomain.Repository
	paymentRepo  paymentdomain.Repository
}

func NewService(p Params) domain.Service {
	return &service{
		log:          p.Log.Named("summary.service"),
		shipmentRepo: p.ShipmentRepo,
		taxcalcRepo:  p.TaxcalcRepo,
		expenseRepo:  p.ExpenseRepo,
		paymentRepo:  p.PaymentRepo,
	}
}

func (s *service) Summarize(ctx context.Context, reference string) (*domain.SummaryResponse, error) {
	reference = strings.TrimSpace(reference)

	shipment, err := s.shipmentRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, shipmentdomain.ErrNotFound
	}

	totalTax := decimal.Zero
	_, items, err := s.taxcalcRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	for i := range items {
		totalTax = totalTax.Add(items[i].TotalTaxTL)
	}

	expenses, err := s.expenseRepo.ListExpenses(ctx, reference)
	if err != nil {
		return nil, err
	}
	expensesTL := decimal.Zero
	for i := range expenses {
		expensesTL = expensesTL.Add(expenses[i].AmountTL())
	}

	invoices, err := s.expenseRepo.ListInvoices(ctx, reference)
	if err != nil {
		return nil, err
	}
	feesTL := decimal.Zero
	for i := range invoices {
		feesTL = feesTL.Add(invoices[i].AmountTL())
	}

	dists, err := s.paymentRepo.ListDistributionsByShipment(ctx, reference)
	if err != nil {
		return nil, err
	}
	advance, balance := decimal.Zero, decimal.Zero
	for i := range dists {
		switch dists[i].Type {
		case paymentdomain.TypeAdvance:
			advance = advance.Add(dists[i].Amount)
		default:
			balance = balance.Add(dists[i].Amount)
		}
	}

	totalExpenses := totalTax.Add(expensesTL).Add(feesTL)
	totalPayments := advance.Add(balance)

	return &domain.SummaryResponse{
		Reference:        reference,
		TotalTaxTL:       totalTax,
		ImportExpensesTL: expensesTL,
		ServiceFeesTL:    feesTL,
		TotalExpensesTL:  totalExpenses,
		AdvancePayments:  advance,
		BalancePayments:  balance,
		TotalPayments:    totalPayments,
		RemainingBalance: totalExpenses.Sub(totalPayments),
	}, nil
}
