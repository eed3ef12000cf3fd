package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
	"github.com/marmaralog/brokerage/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  shipmentdomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  shipmentdomain.Repository
}

func NewService(p Params) shipmentdomain.Service {
	return &Service{
		log:   p.Log.Named("shipment.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req shipmentdomain.CreateRequest) (*shipmentdomain.Response, error) {
	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		return nil, shipmentdomain.ErrInvalidReference
	}
	importer := strings.TrimSpace(req.ImporterName)
	if importer == "" {
		return nil, shipmentdomain.ErrInvalidImporter
	}

	metadata := datatypes.JSONMap{}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	shipment := &shipmentdomain.Shipment{
		ID:            s.genID.Generate(),
		Reference:     reference,
		ImporterName:  importer,
		DeclarationNo: strings.TrimSpace(req.DeclarationNo),
		Status:        shipmentdomain.StatusOpen,
		Notes:         strings.TrimSpace(req.Notes),
		Metadata:      metadata,
	}

	if err := s.repo.Create(ctx, shipment); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, shipmentdomain.ErrDuplicate
		}
		return nil, err
	}

	s.log.Info("shipment created",
		zap.String("reference", shipment.Reference),
		zap.String("importer", shipment.ImporterName),
	)

	return toResponse(shipment), nil
}

func (s *Service) List(ctx context.Context, req shipmentdomain.ListRequest) ([]shipmentdomain.Response, error) {
	shipments, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	out := make([]shipmentdomain.Response, 0, len(shipments))
	for i := range shipments {
		out = append(out, *toResponse(&shipments[i]))
	}
	return out, nil
}

func (s *Service) GetByReference(ctx context.Context, reference string) (*shipmentdomain.Response, error) {
	shipment, err := s.repo.FindByReference(ctx, strings.TrimSpace(reference))
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, shipmentdomain.ErrNotFound
	}
	return toResponse(shipment), nil
}

func (s *Service) UpdateStatus(ctx context.Context, reference string, status shipmentdomain.Status) (*shipmentdomain.Response, error) {
	switch status {
	case shipmentdomain.StatusOpen, shipmentdomain.StatusInClearance, shipmentdomain.StatusClosed:
	default:
		return nil, shipmentdomain.ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, strings.TrimSpace(reference), status); err != nil {
		return nil, err
	}
	return s.GetByReference(ctx, reference)
}

func toResponse(shipment *shipmentdomain.Shipment) *shipmentdomain.Response {
	return &shipmentdomain.Response{
		ID:            shipment.ID.String(),
		Reference:     shipment.Reference,
		ImporterName:  shipment.ImporterName,
		DeclarationNo: shipment.DeclarationNo,
		Status:        shipment.Status,
		Notes:         shipment.Notes,
		Metadata:      shipment.Metadata,
		CreatedAt:     shipment.CreatedAt,
		UpdatedAt:     shipment.UpdatedAt,
	}
}
