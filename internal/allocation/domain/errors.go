package domain

import "errors"

var (
	ErrEmptyInput             = errors.New("empty_input")
	ErrNegativePool           = errors.New("negative_pool")
	ErrNegativeValue          = errors.New("negative_value")
	ErrZeroQuantity           = errors.New("zero_quantity")
	ErrDegenerateDistribution = errors.New("degenerate_distribution")
	ErrInvalidMethod          = errors.New("invalid_distribution_method")
	ErrNoResults              = errors.New("no_allocation_results")
)
