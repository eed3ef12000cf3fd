package domain

import "errors"

var (
	ErrInvalidReference     = errors.New("invalid_reference")
	ErrEmptyItems           = errors.New("empty_items")
	ErrInvalidUnitCount     = errors.New("invalid_unit_count")
	ErrNegativeCost         = errors.New("negative_cost")
	ErrNegativePool         = errors.New("negative_pool")
	ErrUnknownClassification = errors.New("unknown_classification")
	ErrInvalidRate          = errors.New("invalid_currency_rate")
	ErrNotFound             = errors.New("calculation_not_found")
)
