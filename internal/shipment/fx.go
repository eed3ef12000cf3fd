package shipment

import (
	"github.com/marmaralog/brokerage/internal/shipment/repository"
	"github.com/marmaralog/brokerage/internal/shipment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("shipment.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
