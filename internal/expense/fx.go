package expense

import (
	"github.com/marmaralog/brokerage/internal/expense/repository"
	"github.com/marmaralog/brokerage/internal/expense/service"
	"go.uber.org/fx"
)

var Module = fx.Module("expense.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
