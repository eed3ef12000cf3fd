package domain

import "context"

type Repository interface {
	RateLookup

	Create(ctx context.Context, code *HSCode) error
	Update(ctx context.Context, code *HSCode) error
	List(ctx context.Context, filter ListRequest) ([]HSCode, error)
}
