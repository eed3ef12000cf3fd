package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	allocationdomain "github.com/marmaralog/brokerage/internal/allocation/domain"
	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
	"github.com/marmaralog/brokerage/pkg/money"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         allocationdomain.Repository
	ShipmentRepo shipmentdomain.Repository
}

type Service struct {
	log          *zap.Logger
	genID        *snowflake.Node
	repo         allocationdomain.Repository
	shipmentRepo shipmentdomain.Repository
}

func NewService(p Params) allocationdomain.Service {
	return &Service{
		log:          p.Log.Named("allocation.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		shipmentRepo: p.ShipmentRepo,
	}
}

func (s *Service) ReplaceLineItems(ctx context.Context, reference string, inputs []allocationdomain.LineItemInput) ([]allocationdomain.LineItemResponse, error) {
	shipment, err := s.loadShipment(ctx, reference)
	if err != nil {
		return nil, err
	}

	items := make([]allocationdomain.LineItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity < 1 {
			return nil, allocationdomain.ErrZeroQuantity
		}
		if in.UnitPrice.IsNegative() {
			return nil, allocationdomain.ErrNegativeValue
		}
		items = append(items, allocationdomain.LineItem{
			ID:          s.genID.Generate(),
			ShipmentID:  shipment.ID,
			Description: strings.TrimSpace(in.Description),
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TotalPrice:  money.Round2(in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity))),
		})
	}

	if err := s.repo.ReplaceLineItems(ctx, shipment.ID, items); err != nil {
		return nil, err
	}

	s.log.Info("line items replaced",
		zap.String("reference", shipment.Reference),
		zap.Int("count", len(items)),
	)

	out := make([]allocationdomain.LineItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toLineItemResponse(&items[i]))
	}
	return out, nil
}

func (s *Service) ListLineItems(ctx context.Context, reference string) ([]allocationdomain.LineItemResponse, error) {
	shipment, err := s.loadShipment(ctx, reference)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListLineItems(ctx, shipment.ID)
	if err != nil {
		return nil, err
	}

	out := make([]allocationdomain.LineItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toLineItemResponse(&items[i]))
	}
	return out, nil
}

func (s *Service) UpsertConfig(ctx context.Context, reference string, req allocationdomain.ConfigRequest) (*allocationdomain.ConfigResponse, error) {
	shipment, err := s.loadShipment(ctx, reference)
	if err != nil {
		return nil, err
	}

	switch req.Method {
	case allocationdomain.MethodProportional, allocationdomain.MethodEqual:
	default:
		return nil, allocationdomain.ErrInvalidMethod
	}

	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}

	cfg := &allocationdomain.AllocationConfig{
		ID:         s.genID.Generate(),
		ShipmentID: shipment.ID,
		Method:     req.Method,
		IsVisible:  visible,
	}
	if err := s.repo.UpsertConfig(ctx, cfg); err != nil {
		return nil, err
	}

	return s.GetConfig(ctx, reference)
}

func (s *Service) GetConfig(ctx context.Context, reference string) (*allocationdomain.ConfigResponse, error) {
	shipment, err := s.loadShipment(ctx, reference)
	if err != nil {
		return nil, err
	}

	cfg, err := s.repo.FindConfig(ctx, shipment.ID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		// Unconfigured shipments fall back to the proportional policy.
		return &allocationdomain.ConfigResponse{
			Method:    allocationdomain.MethodProportional,
			IsVisible: true,
		}, nil
	}
	return &allocationdomain.ConfigResponse{
		Method:    cfg.Method,
		IsVisible: cfg.IsVisible,
		UpdatedAt: cfg.UpdatedAt,
	}, nil
}

func (s *Service) Allocate(ctx context.Context, reference string, req allocationdomain.AllocateRequest) ([]allocationdomain.ResultResponse, error) {
	shipment, err := s.loadShipment(ctx, reference)
	if err != nil {
		return nil, err
	}
	if req.Pool.IsNegative() {
		return nil, allocationdomain.ErrNegativePool
	}

	method := req.Method
	if method == "" {
		cfg, err := s.repo.FindConfig(ctx, shipment.ID)
		if err != nil {
			return nil, err
		}
		method = allocationdomain.MethodProportional
		if cfg != nil {
			method = cfg.Method
		}
	}

	items, err := s.repo.ListLineItems(ctx, shipment.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, allocationdomain.ErrEmptyInput
	}

	values := make([]decimal.Decimal, len(items))
	for i, item := range items {
		if item.Quantity < 1 {
			return nil, allocationdomain.ErrZeroQuantity
		}
		values[i] = item.TotalPrice
	}

	amounts, err := allocationdomain.DistributePool(values, req.Pool, method)
	if err != nil {
		return nil, err
	}

	results := make([]allocationdomain.AllocationResult, len(items))
	for i, item := range items {
		result := allocationdomain.AllocationResult{
			ID:               s.genID.Generate(),
			ShipmentID:       shipment.ID,
			LineItemID:       item.ID,
			Method:           method,
			FinalCost:        amounts[i],
			FinalCostPerItem: amounts[i].Div(decimal.NewFromInt(item.Quantity)).Round(6),
		}
		if method == allocationdomain.MethodProportional && !item.TotalPrice.IsZero() {
			multiplier := amounts[i].Div(item.TotalPrice).Round(8)
			result.CostMultiplier = &multiplier
		}
		results[i] = result
	}

	if err := s.repo.ReplaceResults(ctx, shipment.ID, shipment.CalcVersion, results); err != nil {
		return nil, err
	}

	s.log.Info("allocation computed",
		zap.String("reference", shipment.Reference),
		zap.String("method", string(method)),
		zap.String("pool", req.Pool.StringFixed(2)),
		zap.Int("items", len(items)),
	)

	return toResultResponses(items, results), nil
}

func (s *Service) ListResults(ctx context.Context, reference string) ([]allocationdomain.ResultResponse, error) {
	shipment, err := s.loadShipment(ctx, reference)
	if err != nil {
		return nil, err
	}

	results, err := s.repo.ListResults(ctx, shipment.ID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, allocationdomain.ErrNoResults
	}

	items, err := s.repo.ListLineItems(ctx, shipment.ID)
	if err != nil {
		return nil, err
	}
	return toResultResponses(items, results), nil
}

func (s *Service) loadShipment(ctx context.Context, reference string) (*shipmentdomain.Shipment, error) {
	shipment, err := s.shipmentRepo.FindByReference(ctx, strings.TrimSpace(reference))
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, shipmentdomain.ErrNotFound
	}
	return shipment, nil
}

func toLineItemResponse(item *allocationdomain.LineItem) allocationdomain.LineItemResponse {
	return allocationdomain.LineItemResponse{
		ID:          item.ID.String(),
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TotalPrice:  item.TotalPrice,
		CreatedAt:   item.CreatedAt,
	}
}

func toResultResponses(items []allocationdomain.LineItem, results []allocationdomain.AllocationResult) []allocationdomain.ResultResponse {
	descriptions := make(map[snowflake.ID]string, len(items))
	for _, item := range items {
		descriptions[item.ID] = item.Description
	}

	out := make([]allocationdomain.ResultResponse, 0, len(results))
	for _, result := range results {
		out = append(out, allocationdomain.ResultResponse{
			LineItemID:       result.LineItemID.String(),
			Description:      descriptions[result.LineItemID],
			Method:           result.Method,
			FinalCost:        result.FinalCost,
			FinalCostPerItem: result.FinalCostPerItem,
			CostMultiplier:   result.CostMultiplier,
		})
	}
	return out
}
