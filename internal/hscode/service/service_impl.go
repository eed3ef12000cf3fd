package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	hscodedomain "github.com/marmaralog/brokerage/internal/hscode/domain"
	"github.com/marmaralog/brokerage/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  hscodedomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  hscodedomain.Repository
}

func NewService(p Params) hscodedomain.Service {
	return &Service{
		log:   p.Log.Named("hscode.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req hscodedomain.UpsertRequest) (*hscodedomain.Response, error) {
	row := fromRequest(req)
	row.ID = s.genID.Generate()
	if err := row.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, row); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, hscodedomain.ErrDuplicate
		}
		return nil, err
	}

	s.log.Info("hs code created", zap.String("code", row.Code))
	return toResponse(row), nil
}

func (s *Service) Update(ctx context.Context, code string, req hscodedomain.UpsertRequest) (*hscodedomain.Response, error) {
	code = strings.TrimSpace(code)
	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, hscodedomain.ErrNotFound
	}

	row := fromRequest(req)
	row.Code = code
	row.UpdatedAt = time.Now().UTC()
	if err := row.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, err
	}
	return s.GetByCode(ctx, code)
}

func (s *Service) List(ctx context.Context, req hscodedomain.ListRequest) ([]hscodedomain.Response, error) {
	rows, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	out := make([]hscodedomain.Response, 0, len(rows))
	for i := range rows {
		out = append(out, *toResponse(&rows[i]))
	}
	return out, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*hscodedomain.Response, error) {
	row, err := s.repo.FindByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, hscodedomain.ErrNotFound
	}
	return toResponse(row), nil
}

func fromRequest(req hscodedomain.UpsertRequest) *hscodedomain.HSCode {
	return &hscodedomain.HSCode{
		Code:                          strings.TrimSpace(req.Code),
		Description:                   strings.TrimSpace(req.Description),
		DescriptionTR:                 strings.TrimSpace(req.DescriptionTR),
		Unit:                          strings.TrimSpace(req.Unit),
		CustomsTaxPercent:             req.CustomsTaxPercent,
		AdditionalCustomsTaxPercent:   req.AdditionalCustomsTaxPercent,
		KKDFPercent:                   req.KKDFPercent,
		VATPercent:                    req.VATPercent,
		PreferentialCustomsTaxPercent: req.PreferentialCustomsTaxPercent,
		RequiresRegistryForm:          req.RequiresRegistryForm,
		RequiresDyeTest:               req.RequiresDyeTest,
		SpecialCustoms:                req.SpecialCustoms,
	}
}

func toResponse(row *hscodedomain.HSCode) *hscodedomain.Response {
	return &hscodedomain.Response{
		ID:                            row.ID.String(),
		Code:                          row.Code,
		Description:                   row.Description,
		DescriptionTR:                 row.DescriptionTR,
		Unit:                          row.Unit,
		CustomsTaxPercent:             row.CustomsTaxPercent,
		AdditionalCustomsTaxPercent:   row.AdditionalCustomsTaxPercent,
		KKDFPercent:                   row.KKDFPercent,
		VATPercent:                    row.VATPercent,
		PreferentialCustomsTaxPercent: row.PreferentialCustomsTaxPercent,
		RequiresRegistryForm:          row.RequiresRegistryForm,
		RequiresDyeTest:               row.RequiresDyeTest,
		SpecialCustoms:                row.SpecialCustoms,
		Requirements:                  row.Requirements(),
		CreatedAt:                     row.CreatedAt,
		UpdatedAt:                     row.UpdatedAt,
	}
}
