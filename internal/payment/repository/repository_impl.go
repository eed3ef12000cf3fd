package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	paymentdomain "github.com/marmaralog/brokerage/internal/payment/domain"
	"github.com/marmaralog/brokerage/pkg/db/option"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) paymentdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, payment *paymentdomain.IncomingPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*paymentdomain.IncomingPayment, error) {
	var payment paymentdomain.IncomingPayment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *repository) List(ctx context.Context, filter paymentdomain.ListRequest) ([]paymentdomain.IncomingPayment, error) {
	var payments []paymentdomain.IncomingPayment
	stmt := r.db.WithContext(ctx).Model(&paymentdomain.IncomingPayment{})

	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"received_at": true,
		"created_at":  true,
		"updated_at":  true,
	})).Apply(stmt)

	if err := stmt.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) DeleteCascade(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_id = ?", id).Delete(&paymentdomain.PaymentDistribution{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&paymentdomain.IncomingPayment{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return paymentdomain.ErrNotFound
		}
		return nil
	})
}

func (r *repository) AppendDistribution(ctx context.Context, dist *paymentdomain.PaymentDistribution, observedDistributed decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dist).Error; err != nil {
			return err
		}

		// The compare-and-set on the observed distributed amount serializes
		// writers per payment: a second distribution that read the same
		// balance loses the race and is rejected whole.
		bumped := tx.Exec(
			`UPDATE incoming_payments
			 SET amount_distributed = amount_distributed + ?, updated_at = ?
			 WHERE id = ? AND amount_distributed = ?`,
			dist.Amount,
			time.Now().UTC(),
			dist.PaymentID,
			observedDistributed,
		)
		if bumped.Error != nil {
			return bumped.Error
		}
		if bumped.RowsAffected == 0 {
			return paymentdomain.ErrConcurrentModification
		}

		return r.refreshStatus(tx, dist.PaymentID)
	})
}

func (r *repository) RemoveDistribution(ctx context.Context, id snowflake.ID) (*paymentdomain.PaymentDistribution, error) {
	var dist paymentdomain.PaymentDistribution
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&dist, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return paymentdomain.ErrDistributionNotFound
			}
			return err
		}

		if err := tx.Delete(&paymentdomain.PaymentDistribution{}, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Exec(
			`UPDATE incoming_payments
			 SET amount_distributed = amount_distributed - ?, updated_at = ?
			 WHERE id = ?`,
			dist.Amount,
			time.Now().UTC(),
			dist.PaymentID,
		).Error; err != nil {
			return err
		}

		return r.refreshStatus(tx, dist.PaymentID)
	})
	if err != nil {
		return nil, err
	}
	return &dist, nil
}

func (r *repository) FindDistribution(ctx context.Context, id snowflake.ID) (*paymentdomain.PaymentDistribution, error) {
	var dist paymentdomain.PaymentDistribution
	err := r.db.WithContext(ctx).First(&dist, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dist, nil
}

func (r *repository) ListDistributionsByShipment(ctx context.Context, reference string) ([]paymentdomain.PaymentDistribution, error) {
	var dists []paymentdomain.PaymentDistribution
	err := r.db.WithContext(ctx).
		Where("shipment_reference = ?", reference).
		Order("id ASC").
		Find(&dists).Error
	if err != nil {
		return nil, err
	}
	return dists, nil
}

// refreshStatus rederives the payment status from the just-updated balance,
// inside the caller's transaction.
func (r *repository) refreshStatus(tx *gorm.DB, paymentID snowflake.ID) error {
	var payment paymentdomain.IncomingPayment
	if err := tx.First(&payment, "id = ?", paymentID).Error; err != nil {
		return err
	}

	status := paymentdomain.DeriveStatus(payment.TotalAmount, payment.AmountDistributed)
	if status == payment.Status {
		return nil
	}
	return tx.Model(&paymentdomain.IncomingPayment{}).
		Where("id = ?", paymentID).
		Update("status", status).Error
}
