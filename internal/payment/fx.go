package payment

import (
	"github.com/marmaralog/brokerage/internal/payment/repository"
	"github.com/marmaralog/brokerage/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
