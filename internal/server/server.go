package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marmaralog/brokerage/internal/allocation"
	allocationdomain "github.com/marmaralog/brokerage/internal/allocation/domain"
	"github.com/marmaralog/brokerage/internal/config"
	"github.com/marmaralog/brokerage/internal/expense"
	expensedomain "github.com/marmaralog/brokerage/internal/expense/domain"
	"github.com/marmaralog/brokerage/internal/hscode"
	hscodedomain "github.com/marmaralog/brokerage/internal/hscode/domain"
	"github.com/marmaralog/brokerage/internal/payment"
	paymentdomain "github.com/marmaralog/brokerage/internal/payment/domain"
	"github.com/marmaralog/brokerage/internal/shipment"
	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
	"github.com/marmaralog/brokerage/internal/summary"
	summarydomain "github.com/marmaralog/brokerage/internal/summary/domain"
	"github.com/marmaralog/brokerage/internal/taxcalc"
	taxcalcdomain "github.com/marmaralog/brokerage/internal/taxcalc/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	shipment.Module,
	allocation.Module,
	hscode.Module,
	taxcalc.Module,
	payment.Module,
	expense.Module,
	summary.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	shipmentSvc   shipmentdomain.Service
	allocationSvc allocationdomain.Service
	hscodeSvc     hscodedomain.Service
	taxcalcSvc    taxcalcdomain.Service
	paymentSvc    paymentdomain.Service
	expenseSvc    expensedomain.Service
	summarySvc    summarydomain.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	ShipmentSvc   shipmentdomain.Service
	AllocationSvc allocationdomain.Service
	HSCodeSvc     hscodedomain.Service
	TaxcalcSvc    taxcalcdomain.Service
	PaymentSvc    paymentdomain.Service
	ExpenseSvc    expensedomain.Service
	SummarySvc    summarydomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		shipmentSvc:   p.ShipmentSvc,
		allocationSvc: p.AllocationSvc,
		hscodeSvc:     p.HSCodeSvc,
		taxcalcSvc:    p.TaxcalcSvc,
		paymentSvc:    p.PaymentSvc,
		expenseSvc:    p.ExpenseSvc,
		summarySvc:    p.SummarySvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Shipments --------
	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments", s.ListShipments)
	api.GET("/shipments/:reference", s.GetShipment)
	api.PATCH("/shipments/:reference/status", s.UpdateShipmentStatus)

	// -------- Line items & allocation --------
	api.PUT("/shipments/:reference/line-items", s.ReplaceLineItems)
	api.GET("/shipments/:reference/line-items", s.ListLineItems)
	api.PUT("/shipments/:reference/allocation-config", s.UpsertAllocationConfig)
	api.GET("/shipments/:reference/allocation-config", s.GetAllocationConfig)
	api.POST("/shipments/:reference/allocate", s.Allocate)
	api.GET("/shipments/:reference/allocation-results", s.ListAllocationResults)

	// -------- HS codes --------
	api.POST("/hs-codes", s.CreateHSCode)
	api.GET("/hs-codes", s.ListHSCodes)
	api.GET("/hs-codes/:code", s.GetHSCode)
	api.PUT("/hs-codes/:code", s.UpdateHSCode)
	api.GET("/country-codes", s.ListCountryCodes)

	// -------- Tax calculations --------
	api.POST("/tax-calculations", s.ComputeTaxCalculation)
	api.GET("/tax-calculations/:reference", s.GetTaxCalculation)

	// -------- Payments --------
	api.POST("/payments", s.CreatePayment)
	api.GET("/payments", s.ListPayments)
	api.GET("/payments/:id", s.GetPayment)
	api.DELETE("/payments/:id", s.DeletePayment)
	api.POST("/payments/:id/distributions", s.DistributePayment)
	api.DELETE("/distributions/:id", s.DeleteDistribution)
	api.GET("/shipments/:reference/distributions", s.ListShipmentDistributions)

	// -------- Expenses --------
	api.POST("/shipments/:reference/expenses", s.CreateImportExpense)
	api.GET("/shipments/:reference/expenses", s.ListImportExpenses)
	api.DELETE("/expenses/:id", s.DeleteImportExpense)
	api.POST("/shipments/:reference/service-invoices", s.CreateServiceInvoice)
	api.GET("/shipments/:reference/service-invoices", s.ListServiceInvoices)
	api.DELETE("/service-invoices/:id", s.DeleteServiceInvoice)

	// -------- Summary --------
	api.GET("/shipments/:reference/summary", s.GetShipmentSummary)
}
