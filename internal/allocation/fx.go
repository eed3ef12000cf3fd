package allocation

import (
	"github.com/marmaralog/brokerage/internal/allocation/repository"
	"github.com/marmaralog/brokerage/internal/allocation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("allocation.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
