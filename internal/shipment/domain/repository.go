package domain

import "context"

type Repository interface {
	Create(ctx context.Context, shipment *Shipment) error
	FindByReference(ctx context.Context, reference string) (*Shipment, error)
	List(ctx context.Context, filter ListRequest) ([]Shipment, error)
	UpdateStatus(ctx context.Context, reference string, status Status) error
}
