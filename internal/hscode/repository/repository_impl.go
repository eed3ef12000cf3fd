package repository

import (
	"context"
	"errors"

	hscodedomain "github.com/marmaralog/brokerage/internal/hscode/domain"
	"github.com/marmaralog/brokerage/pkg/db/option"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) hscodedomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindByCode(ctx context.Context, code string) (*hscodedomain.HSCode, error) {
	var row hscodedomain.HSCode
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) Create(ctx context.Context, code *hscodedomain.HSCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *repository) Update(ctx context.Context, code *hscodedomain.HSCode) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE hs_codes
		 SET description = ?, description_tr = ?, unit = ?,
		     customs_tax_percent = ?, additional_customs_tax_percent = ?,
		     kkdf_percent = ?, vat_percent = ?, preferential_customs_tax_percent = ?,
		     requires_registry_form = ?, requires_dye_test = ?, special_customs = ?,
		     updated_at = ?
		 WHERE code = ?`,
		code.Description,
		code.DescriptionTR,
		code.Unit,
		code.CustomsTaxPercent,
		code.AdditionalCustomsTaxPercent,
		code.KKDFPercent,
		code.VATPercent,
		code.PreferentialCustomsTaxPercent,
		code.RequiresRegistryForm,
		code.RequiresDyeTest,
		code.SpecialCustoms,
		code.UpdatedAt,
		code.Code,
	).Error
}

func (r *repository) List(ctx context.Context, filter hscodedomain.ListRequest) ([]hscodedomain.HSCode, error) {
	var rows []hscodedomain.HSCode
	stmt := r.db.WithContext(ctx).Model(&hscodedomain.HSCode{})

	if filter.Code != "" {
		stmt = stmt.Where("code LIKE ?", filter.Code+"%")
	}

	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"code":       true,
		"created_at": true,
		"updated_at": true,
	})).Apply(stmt)

	if err := stmt.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
