package taxcalc

import (
	"github.com/marmaralog/brokerage/internal/taxcalc/repository"
	"github.com/marmaralog/brokerage/internal/taxcalc/service"
	"go.uber.org/fx"
)

var Module = fx.Module("taxcalc.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
