package repository

import (
	"context"
	"errors"
	"time"

	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
	"github.com/marmaralog/brokerage/pkg/db/option"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) shipmentdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, shipment *shipmentdomain.Shipment) error {
	return r.db.WithContext(ctx).Create(shipment).Error
}

func (r *repository) FindByReference(ctx context.Context, reference string) (*shipmentdomain.Shipment, error) {
	var shipment shipmentdomain.Shipment
	err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&shipment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shipment, nil
}

func (r *repository) List(ctx context.Context, filter shipmentdomain.ListRequest) ([]shipmentdomain.Shipment, error) {
	var shipments []shipmentdomain.Shipment
	stmt := r.db.WithContext(ctx).Model(&shipmentdomain.Shipment{})

	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
		"reference":  true,
	})).Apply(stmt)

	if err := stmt.Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

func (r *repository) UpdateStatus(ctx context.Context, reference string, status shipmentdomain.Status) error {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE shipments SET status = ?, updated_at = ? WHERE reference = ?`,
		status,
		time.Now().UTC(),
		reference,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shipmentdomain.ErrNotFound
	}
	return nil
}
