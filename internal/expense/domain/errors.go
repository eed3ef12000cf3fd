package domain

import "errors"

var (
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidRate        = errors.New("invalid_tl_rate")
	ErrExpenseNotFound    = errors.New("expense_not_found")
	ErrInvoiceNotFound    = errors.New("service_invoice_not_found")
)
