package domain

import "errors"

var (
	ErrInvalidCode         = errors.New("invalid_code")
	ErrInvalidRateFraction = errors.New("invalid_rate_fraction")
	ErrNotFound            = errors.New("hs_code_not_found")
	ErrDuplicate           = errors.New("duplicate_code")
)
