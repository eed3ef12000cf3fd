package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	domain "github.com/marmaralog/brokerage/internal/payment/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &service{
		log:   p.Log.Named("payment.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.PaymentResponse, error) {
	if strings.TrimSpace(req.PayerName) == "" {
		return nil, domain.ErrInvalidPayer
	}
	if !req.TotalAmount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "TRY"
	}

	receivedAt := time.Now().UTC()
	if req.ReceivedAt != nil {
		receivedAt = req.ReceivedAt.UTC()
	}

	metadata := datatypes.JSONMap{}
	if req.Metadata != nil {
		metadata = datatypes.JSONMap(req.Metadata)
	}

	payment := &domain.IncomingPayment{
		ID:                s.genID.Generate(),
		PayerName:         strings.TrimSpace(req.PayerName),
		BankReference:     strings.TrimSpace(req.BankReference),
		Currency:          currency,
		TotalAmount:       req.TotalAmount,
		AmountDistributed: decimal.Zero,
		Status:            domain.StatusPending,
		ReceivedAt:        receivedAt,
		Metadata:          metadata,
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		s.log.Error("failed to create payment", zap.Error(err))
		return nil, err
	}

	return toResponse(payment), nil
}

func (s *service) List(ctx context.Context, req domain.ListRequest) ([]domain.PaymentResponse, error) {
	payments, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.PaymentResponse, 0, len(payments))
	for i := range payments {
		resp = append(resp, *toResponse(&payments[i]))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.PaymentResponse, error) {
	payment, err := s.loadPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(payment), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	paymentID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.ErrNotFound
	}
	return s.repo.DeleteCascade(ctx, paymentID)
}

func (s *service) Distribute(ctx context.Context, paymentID string, req domain.DistributeRequest) (*domain.DistributionResponse, error) {
	if strings.TrimSpace(req.ShipmentReference) == "" {
		return nil, domain.ErrInvalidReference
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if req.Type != domain.TypeAdvance && req.Type != domain.TypeBalance {
		return nil, domain.ErrInvalidType
	}

	payment, err := s.loadPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if req.Amount.GreaterThan(payment.RemainingBalance()) {
		return nil, domain.ErrInsufficientBalance
	}

	dist := &domain.PaymentDistribution{
		ID:                s.genID.Generate(),
		PaymentID:         payment.ID,
		ShipmentReference: strings.TrimSpace(req.ShipmentReference),
		Amount:            req.Amount,
		Type:              req.Type,
		Note:              strings.TrimSpace(req.Note),
	}

	if err := s.repo.AppendDistribution(ctx, dist, payment.AmountDistributed); err != nil {
		s.log.Error("failed to append distribution",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return toDistributionResponse(dist), nil
}

func (s *service) DeleteDistribution(ctx context.Context, distributionID string) error {
	id, err := snowflake.ParseString(distributionID)
	if err != nil {
		return domain.ErrDistributionNotFound
	}

	if _, err := s.repo.RemoveDistribution(ctx, id); err != nil {
		return err
	}
	return nil
}

func (s *service) ListDistributionsByShipment(ctx context.Context, reference string) ([]domain.DistributionResponse, error) {
	dists, err := s.repo.ListDistributionsByShipment(ctx, strings.TrimSpace(reference))
	if err != nil {
		return nil, err
	}

	resp := make([]domain.DistributionResponse, 0, len(dists))
	for i := range dists {
		resp = append(resp, *toDistributionResponse(&dists[i]))
	}
	return resp, nil
}

func (s *service) loadPayment(ctx context.Context, id string) (*domain.IncomingPayment, error) {
	paymentID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	return payment, nil
}

func toResponse(p *domain.IncomingPayment) *domain.PaymentResponse {
	return &domain.PaymentResponse{
		ID:                p.ID.String(),
		PayerName:         p.PayerName,
		BankReference:     p.BankReference,
		Currency:          p.Currency,
		TotalAmount:       p.TotalAmount,
		AmountDistributed: p.AmountDistributed,
		RemainingBalance:  p.RemainingBalance(),
		Status:            p.Status,
		ReceivedAt:        p.ReceivedAt,
		CreatedAt:         p.CreatedAt,
	}
}

func toDistributionResponse(d *domain.PaymentDistribution) *domain.DistributionResponse {
	return &domain.DistributionResponse{
		ID:                d.ID.String(),
		PaymentID:         d.PaymentID.String(),
		ShipmentReference: d.ShipmentReference,
		Amount:            d.Amount,
		Type:              d.Type,
		Note:              d.Note,
		CreatedAt:         d.CreatedAt,
	}
}
