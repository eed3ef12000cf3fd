package hscode

import (
	"github.com/marmaralog/brokerage/internal/hscode/domain"
	"github.com/marmaralog/brokerage/internal/hscode/repository"
	"github.com/marmaralog/brokerage/internal/hscode/service"
	"go.uber.org/fx"
)

var Module = fx.Module("hscode.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(func(r domain.Repository) domain.RateLookup { return r }),
	fx.Provide(service.NewService),
)
