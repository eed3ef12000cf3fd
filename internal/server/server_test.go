package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	allocationdomain "github.com/marmaralog/brokerage/internal/allocation/domain"
	allocationrepo "github.com/marmaralog/brokerage/internal/allocation/repository"
	allocationservice "github.com/marmaralog/brokerage/internal/allocation/service"
	"github.com/marmaralog/brokerage/internal/config"
	expensedomain "github.com/marmaralog/brokerage/internal/expense/domain"
	expenserepo "github.com/marmaralog/brokerage/internal/expense/repository"
	expenseservice "github.com/marmaralog/brokerage/internal/expense/service"
	hscodedomain "github.com/marmaralog/brokerage/internal/hscode/domain"
	hscoderepo "github.com/marmaralog/brokerage/internal/hscode/repository"
	hscodeservice "github.com/marmaralog/brokerage/internal/hscode/service"
	paymentdomain "github.com/marmaralog/brokerage/internal/payment/domain"
	paymentrepo "github.com/marmaralog/brokerage/internal/payment/repository"
	paymentservice "github.com/marmaralog/brokerage/internal/payment/service"
	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
	shipmentrepo "github.com/marmaralog/brokerage/internal/shipment/repository"
	shipmentservice "github.com/marmaralog/brokerage/internal/shipment/service"
	summaryservice "github.com/marmaralog/brokerage/internal/summary/service"
	taxcalcdomain "github.com/marmaralog/brokerage/internal/taxcalc/domain"
	taxcalcrepo "github.com/marmaralog/brokerage/internal/taxcalc/repository"
	taxcalcservice "github.com/marmaralog/brokerage/internal/taxcalc/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&shipmentdomain.Shipment{},
		&allocationdomain.LineItem{},
		&allocationdomain.AllocationConfig{},
		&allocationdomain.AllocationResult{},
		&hscodedomain.HSCode{},
		&taxcalcdomain.TaxCalculation{},
		&taxcalcdomain.TaxCalculationItem{},
		&paymentdomain.IncomingPayment{},
		&paymentdomain.PaymentDistribution{},
		&expensedomain.ImportExpense{},
		&expensedomain.ServiceInvoice{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	shipRepo := shipmentrepo.NewRepository(conn)
	allocRepo := allocationrepo.NewRepository(conn)
	hsRepo := hscoderepo.NewRepository(conn)
	taxRepo := taxcalcrepo.NewRepository(conn)
	payRepo := paymentrepo.NewRepository(conn)
	expRepo := expenserepo.NewRepository(conn)

	return NewServer(ServerParams{
		Gin: NewEngine(log),
		Cfg: config.Config{Environment: "test"},
		ShipmentSvc: shipmentservice.NewService(shipmentservice.Params{
			Log: log, GenID: node, Repo: shipRepo,
		}),
		AllocationSvc: allocationservice.NewService(allocationservice.Params{
			Log: log, GenID: node, Repo: allocRepo, ShipmentRepo: shipRepo,
		}),
		HSCodeSvc: hscodeservice.NewService(hscodeservice.Params{
			Log: log, GenID: node, Repo: hsRepo,
		}),
		TaxcalcSvc: taxcalcservice.NewService(taxcalcservice.Params{
			Log: log, GenID: node, Repo: taxRepo, Rates: hsRepo, ShipmentRepo: shipRepo,
		}),
		PaymentSvc: paymentservice.NewService(paymentservice.Params{
			Log: log, GenID: node, Repo: payRepo,
		}),
		ExpenseSvc: expenseservice.NewService(expenseservice.Params{
			Log: log, GenID: node, Repo: expRepo, ShipmentRepo: shipRepo,
		}),
		SummarySvc: summaryservice.NewService(summaryservice.Params{
			Log: log, ShipmentRepo: shipRepo, TaxcalcRepo: taxRepo, ExpenseRepo: expRepo, PaymentRepo: payRepo,
		}),
	})
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func TestShipmentRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/shipments", map[string]any{
		"reference":     "SHP-7001",
		"importer_name": "Marmara Tekstil",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/shipments/SHP-7001", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Duplicate references conflict.
	rec = doRequest(t, srv, http.MethodPost, "/api/shipments", map[string]any{
		"reference":     "SHP-7001",
		"importer_name": "Marmara Tekstil",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/shipments/SHP-MISSING", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Missing importer is a validation error.
	rec = doRequest(t, srv, http.MethodPost, "/api/shipments", map[string]any{
		"reference": "SHP-7002",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAllocationRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/shipments", map[string]any{
		"reference":     "SHP-7003",
		"importer_name": "Marmara Tekstil",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodPut, "/api/shipments/SHP-7003/line-items", map[string]any{
		"items": []map[string]any{
			{"description": "t-shirt", "quantity": 3, "unit_price": "100"},
			{"description": "hoodie", "quantity": 7, "unit_price": "100"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/shipments/SHP-7003/allocate", map[string]any{
		"pool": "90",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data []allocationdomain.ResultResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Data, 2)
	assert.Equal(t, "27", payload.Data[0].FinalCost.String())
	assert.Equal(t, "63", payload.Data[1].FinalCost.String())
}

func TestPaymentRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/payments", map[string]any{
		"payer_name":   "Marmara Tekstil",
		"total_amount": "1000",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		Data paymentdomain.PaymentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doRequest(t, srv, http.MethodPost, "/api/payments/"+created.Data.ID+"/distributions", map[string]any{
		"shipment_reference": "SHP-7004",
		"amount":             "400",
		"type":               "advance",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Over-distribution is unprocessable, not a validation error.
	rec = doRequest(t, srv, http.MethodPost, "/api/payments/"+created.Data.ID+"/distributions", map[string]any{
		"shipment_reference": "SHP-7004",
		"amount":             "700",
		"type":               "balance",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/shipments/SHP-7004/distributions", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthAndCountryCodes(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/country-codes", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "720")
}
