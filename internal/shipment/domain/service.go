package domain

import (
	"context"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	GetByReference(ctx context.Context, reference string) (*Response, error)
	UpdateStatus(ctx context.Context, reference string, status Status) (*Response, error)
}

type CreateRequest struct {
	Reference     string         `json:"reference"`
	ImporterName  string         `json:"importer_name"`
	DeclarationNo string         `json:"declaration_no"`
	Notes         string         `json:"notes"`
	Metadata      map[string]any `json:"metadata"`
}

type ListRequest struct {
	Status  string
	SortBy  string
	OrderBy string
}

type Response struct {
	ID            string         `json:"id"`
	Reference     string         `json:"reference"`
	ImporterName  string         `json:"importer_name"`
	DeclarationNo string         `json:"declaration_no,omitempty"`
	Status        Status         `json:"status"`
	Notes         string         `json:"notes,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
