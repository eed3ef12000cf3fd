package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	allocationdomain "github.com/marmaralog/brokerage/internal/allocation/domain"
	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) allocationdomain.Repository {
	return &repository{db: db}
}

func (r *repository) ReplaceLineItems(ctx context.Context, shipmentID snowflake.ID, items []allocationdomain.LineItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shipment_id = ?", shipmentID).Delete(&allocationdomain.AllocationResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shipment_id = ?", shipmentID).Delete(&allocationdomain.LineItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *repository) ListLineItems(ctx context.Context, shipmentID snowflake.ID) ([]allocationdomain.LineItem, error) {
	var items []allocationdomain.LineItem
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpsertConfig(ctx context.Context, cfg *allocationdomain.AllocationConfig) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing allocationdomain.AllocationConfig
		err := tx.Where("shipment_id = ?", cfg.ShipmentID).First(&existing).Error
		if err == nil {
			return tx.Model(&allocationdomain.AllocationConfig{}).
				Where("id = ?", existing.ID).
				Updates(map[string]any{
					"method":     cfg.Method,
					"is_visible": cfg.IsVisible,
					"updated_at": time.Now().UTC(),
				}).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return tx.Create(cfg).Error
	})
}

func (r *repository) FindConfig(ctx context.Context, shipmentID snowflake.ID) (*allocationdomain.AllocationConfig, error) {
	var cfg allocationdomain.AllocationConfig
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		First(&cfg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) ReplaceResults(ctx context.Context, shipmentID snowflake.ID, expectedVersion int64, results []allocationdomain.AllocationResult) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Compare-and-set on the shipment calc version keeps two concurrent
		// recalculations from interleaving partial overwrites.
		bumped := tx.Exec(
			`UPDATE shipments SET calc_version = calc_version + 1, updated_at = ? WHERE id = ? AND calc_version = ?`,
			time.Now().UTC(),
			shipmentID,
			expectedVersion,
		)
		if bumped.Error != nil {
			return bumped.Error
		}
		if bumped.RowsAffected == 0 {
			return shipmentdomain.ErrConcurrentModification
		}

		if err := tx.Where("shipment_id = ?", shipmentID).Delete(&allocationdomain.AllocationResult{}).Error; err != nil {
			return err
		}
		return tx.Create(&results).Error
	})
}

func (r *repository) ListResults(ctx context.Context, shipmentID snowflake.ID) ([]allocationdomain.AllocationResult, error) {
	var results []allocationdomain.AllocationResult
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("line_item_id ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
