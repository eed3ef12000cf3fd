package domain

import "errors"

var (
	ErrInvalidPayer           = errors.New("invalid_payer")
	ErrInvalidReference       = errors.New("invalid_shipment_reference")
	ErrInvalidAmount          = errors.New("invalid_amount")
	ErrInvalidType            = errors.New("invalid_payment_type")
	ErrNotFound               = errors.New("payment_not_found")
	ErrDistributionNotFound   = errors.New("distribution_not_found")
	ErrInsufficientBalance    = errors.New("insufficient_balance")
	ErrConcurrentModification = errors.New("concurrent_modification")
)
