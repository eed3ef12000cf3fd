package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
	taxcalcdomain "github.com/marmaralog/brokerage/internal/taxcalc/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) taxcalcdomain.Repository {
	return &repository{db: db}
}

func (r *repository) ReplaceCalculation(ctx context.Context, shipmentID snowflake.ID, expectedVersion int64, calc *taxcalcdomain.TaxCalculation, items []taxcalcdomain.TaxCalculationItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
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

		var previous taxcalcdomain.TaxCalculation
		err := tx.Where("reference = ?", calc.Reference).First(&previous).Error
		if err == nil {
			if err := tx.Where("calculation_id = ?", previous.ID).Delete(&taxcalcdomain.TaxCalculationItem{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&previous).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(calc).Error; err != nil {
			return err
		}
		return tx.Create(&items).Error
	})
}

func (r *repository) FindByReference(ctx context.Context, reference string) (*taxcalcdomain.TaxCalculation, []taxcalcdomain.TaxCalculationItem, error) {
	var calc taxcalcdomain.TaxCalculation
	err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&calc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var items []taxcalcdomain.TaxCalculationItem
	if err := r.db.WithContext(ctx).
		Where("calculation_id = ?", calc.ID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, nil, err
	}
	return &calc, items, nil
}
