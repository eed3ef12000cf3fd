package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	domain "github.com/marmaralog/brokerage/internal/expense/domain"
	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         domain.Repository
	ShipmentRepo shipmentdomain.Repository
}

type service struct {
	log          *zap.Logger
	genID        *snowflake.Node
	repo         domain.Repository
	shipmentRepo shipmentdomain.Repository
}

func NewService(p Params) domain.Service {
	return &service{
		log:          p.Log.Named("expense.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		shipmentRepo: p.ShipmentRepo,
	}
}

func (s *service) CreateExpense(ctx context.Context, reference string, req domain.EntryRequest) (*domain.ExpenseResponse, error) {
	reference = strings.TrimSpace(reference)
	if err := s.checkShipment(ctx, reference); err != nil {
		return nil, err
	}

	currency, rate, err := normalizeEntry(req.Description, req.Amount, req.Currency, req.TLRate)
	if err != nil {
		return nil, err
	}

	expense := &domain.ImportExpense{
		ID:                s.genID.Generate(),
		ShipmentReference: reference,
		Description:       strings.TrimSpace(req.Description),
		Amount:            req.Amount,
		Currency:          currency,
		TLRate:            rate,
	}

	if err := s.repo.CreateExpense(ctx, expense); err != nil {
		s.log.Error("failed to create import expense", zap.Error(err))
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

func (s *service) ListExpenses(ctx context.Context, reference string) ([]domain.ExpenseResponse, error) {
	expenses, err := s.repo.ListExpenses(ctx, strings.TrimSpace(reference))
	if err != nil {
		return nil, err
	}

	resp := make([]domain.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		resp = append(resp, *toExpenseResponse(&expenses[i]))
	}
	return resp, nil
}

func (s *service) DeleteExpense(ctx context.Context, id string) error {
	expenseID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.ErrExpenseNotFound
	}
	return s.repo.DeleteExpense(ctx, expenseID)
}

func (s *service) CreateInvoice(ctx context.Context, reference string, req domain.InvoiceRequest) (*domain.InvoiceResponse, error) {
	reference = strings.TrimSpace(reference)
	if err := s.checkShipment(ctx, reference); err != nil {
		return nil, err
	}

	currency, rate, err := normalizeEntry(req.Description, req.Amount, req.Currency, req.TLRate)
	if err != nil {
		return nil, err
	}

	issuedAt := time.Now().UTC()
	if req.IssuedAt != nil {
		issuedAt = req.IssuedAt.UTC()
	}

	invoice := &domain.ServiceInvoice{
		ID:                s.genID.Generate(),
		ShipmentReference: reference,
		Description:       strings.TrimSpace(req.Description),
		InvoiceNo:         strings.TrimSpace(req.InvoiceNo),
		Amount:            req.Amount,
		Currency:          currency,
		TLRate:            rate,
		IssuedAt:          issuedAt,
	}

	if err := s.repo.CreateInvoice(ctx, invoice); err != nil {
		s.log.Error("failed to create service invoice", zap.Error(err))
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

func (s *service) ListInvoices(ctx context.Context, reference string) ([]domain.InvoiceResponse, error) {
	invoices, err := s.repo.ListInvoices(ctx, strings.TrimSpace(reference))
	if err != nil {
		return nil, err
	}

	resp := make([]domain.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		resp = append(resp, *toInvoiceResponse(&invoices[i]))
	}
	return resp, nil
}

func (s *service) DeleteInvoice(ctx context.Context, id string) error {
	invoiceID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.ErrInvoiceNotFound
	}
	return s.repo.DeleteInvoice(ctx, invoiceID)
}

func (s *service) checkShipment(ctx context.Context, reference string) error {
	shipment, err := s.shipmentRepo.FindByReference(ctx, reference)
	if err != nil {
		return err
	}
	if shipment == nil {
		return shipmentdomain.ErrNotFound
	}
	return nil
}

// normalizeEntry validates the shared expense fields and applies the
// defaults: TRY currency and a 1.0 rate for amounts already in lira.
func normalizeEntry(description string, amount decimal.Decimal, currency string, rate decimal.Decimal) (string, decimal.Decimal, error) {
	if strings.TrimSpace(description) == "" {
		return "", decimal.Zero, domain.ErrInvalidDescription
	}
	if !amount.GreaterThan(decimal.Zero) {
		return "", decimal.Zero, domain.ErrInvalidAmount
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "TRY"
	}

	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	if !rate.GreaterThan(decimal.Zero) {
		return "", decimal.Zero, domain.ErrInvalidRate
	}
	return currency, rate, nil
}

func toExpenseResponse(e *domain.ImportExpense) *domain.ExpenseResponse {
	return &domain.ExpenseResponse{
		ID:                e.ID.String(),
		ShipmentReference: e.ShipmentReference,
		Description:       e.Description,
		Amount:            e.Amount,
		Currency:          e.Currency,
		TLRate:            e.TLRate,
		AmountTL:          e.AmountTL(),
		CreatedAt:         e.CreatedAt,
	}
}

func toInvoiceResponse(i *domain.ServiceInvoice) *domain.InvoiceResponse {
	return &domain.InvoiceResponse{
		ID:                i.ID.String(),
		ShipmentReference: i.ShipmentReference,
		Description:       i.Description,
		InvoiceNo:         i.InvoiceNo,
		Amount:            i.Amount,
		Currency:          i.Currency,
		TLRate:            i.TLRate,
		AmountTL:          i.AmountTL(),
		IssuedAt:          i.IssuedAt,
		CreatedAt:         i.CreatedAt,
	}
}
