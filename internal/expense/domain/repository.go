package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	CreateExpense(ctx context.Context, expense *ImportExpense) error
	ListExpenses(ctx context.Context, reference string) ([]ImportExpense, error)
	// DeleteExpense returns ErrExpenseNotFound when no row matched.
	DeleteExpense(ctx context.Context, id snowflake.ID) error

	CreateInvoice(ctx context.Context, invoice *ServiceInvoice) error
	ListInvoices(ctx context.Context, reference string) ([]ServiceInvoice, error)
	DeleteInvoice(ctx context.Context, id snowflake.ID) error
}
