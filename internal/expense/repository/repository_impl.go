package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	expensedomain "github.com/marmaralog/brokerage/internal/expense/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) expensedomain.Repository {
	return &repository{db: db}
}

func (r *repository) CreateExpense(ctx context.Context, expense *expensedomain.ImportExpense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *repository) ListExpenses(ctx context.Context, reference string) ([]expensedomain.ImportExpense, error) {
	var expenses []expensedomain.ImportExpense
	err := r.db.WithContext(ctx).
		Where("shipment_reference = ?", reference).
		Order("id ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *repository) DeleteExpense(ctx context.Context, id snowflake.ID) error {
	result := r.db.WithContext(ctx).Delete(&expensedomain.ImportExpense{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return expensedomain.ErrExpenseNotFound
	}
	return nil
}

func (r *repository) CreateInvoice(ctx context.Context, invoice *expensedomain.ServiceInvoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *repository) ListInvoices(ctx context.Context, reference string) ([]expensedomain.ServiceInvoice, error) {
	var invoices []expensedomain.ServiceInvoice
	err := r.db.WithContext(ctx).
		Where("shipment_reference = ?", reference).
		Order("id ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repository) DeleteInvoice(ctx context.Context, id snowflake.ID) error {
	result := r.db.WithContext(ctx).Delete(&expensedomain.ServiceInvoice{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return expensedomain.ErrInvoiceNotFound
	}
	return nil
}
