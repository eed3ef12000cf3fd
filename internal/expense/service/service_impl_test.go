package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	expensedomain "github.com/marmaralog/brokerage/internal/expense/domain"
	expenserepo "github.com/marmaralog/brokerage/internal/expense/repository"
	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
	shipmentrepo "github.com/marmaralog/brokerage/internal/shipment/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (expensedomain.Service, shipmentdomain.Repository, *snowflake.Node) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&shipmentdomain.Shipment{},
		&expensedomain.ImportExpense{},
		&expensedomain.ServiceInvoice{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	shipRepo := shipmentrepo.NewRepository(conn)
	svc := NewService(Params{
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         expenserepo.NewRepository(conn),
		ShipmentRepo: shipRepo,
	})
	return svc, shipRepo, node
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func createShipment(t *testing.T, repo shipmentdomain.Repository, node *snowflake.Node, reference string) {
	t.Helper()

	require.NoError(t, repo.Create(context.Background(), &shipmentdomain.Shipment{
		ID:           node.Generate(),
		Reference:    reference,
		ImporterName: "Marmara Tekstil",
		Status:       shipmentdomain.StatusOpen,
		Metadata:     datatypes.JSONMap{},
	}))
}

func TestCreateExpense_TLNormalization(t *testing.T) {
	svc, shipRepo, node := newTestService(t)
	ctx := context.Background()
	createShipment(t, shipRepo, node, "SHP-6001")

	created, err := svc.CreateExpense(ctx, "SHP-6001", expensedomain.EntryRequest{
		Description: "port handling",
		Amount:      dec("25.50"),
		Currency:    "usd",
		TLRate:      dec("40.1234"),
	})
	require.NoError(t, err)

	assert.Equal(t, "USD", created.Currency)
	assert.True(t, created.AmountTL.Equal(dec("1023.15")), "got %s", created.AmountTL)
}

func TestCreateExpense_DefaultsToLira(t *testing.T) {
	svc, shipRepo, node := newTestService(t)
	ctx := context.Background()
	createShipment(t, shipRepo, node, "SHP-6002")

	created, err := svc.CreateExpense(ctx, "SHP-6002", expensedomain.EntryRequest{
		Description: "customs stamp",
		Amount:      dec("150"),
	})
	require.NoError(t, err)

	assert.Equal(t, "TRY", created.Currency)
	assert.True(t, created.TLRate.Equal(dec("1")))
	assert.True(t, created.AmountTL.Equal(dec("150")))
}

func TestCreateExpense_Validation(t *testing.T) {
	svc, shipRepo, node := newTestService(t)
	ctx := context.Background()
	createShipment(t, shipRepo, node, "SHP-6003")

	_, err := svc.CreateExpense(ctx, "SHP-6003", expensedomain.EntryRequest{Amount: dec("10")})
	assert.ErrorIs(t, err, expensedomain.ErrInvalidDescription)

	_, err = svc.CreateExpense(ctx, "SHP-6003", expensedomain.EntryRequest{Description: "x", Amount: decimal.Zero})
	assert.ErrorIs(t, err, expensedomain.ErrInvalidAmount)

	_, err = svc.CreateExpense(ctx, "SHP-6003", expensedomain.EntryRequest{
		Description: "x", Amount: dec("10"), TLRate: dec("-1"),
	})
	assert.ErrorIs(t, err, expensedomain.ErrInvalidRate)

	_, err = svc.CreateExpense(ctx, "SHP-MISSING", expensedomain.EntryRequest{Description: "x", Amount: dec("10")})
	assert.ErrorIs(t, err, shipmentdomain.ErrNotFound)
}

func TestInvoiceLifecycle(t *testing.T) {
	svc, shipRepo, node := newTestService(t)
	ctx := context.Background()
	createShipment(t, shipRepo, node, "SHP-6004")

	created, err := svc.CreateInvoice(ctx, "SHP-6004", expensedomain.InvoiceRequest{
		Description: "brokerage fee",
		InvoiceNo:   "MRM2026000123",
		Amount:      dec("300"),
	})
	require.NoError(t, err)

	listed, err := svc.ListInvoices(ctx, "SHP-6004")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "MRM2026000123", listed[0].InvoiceNo)

	require.NoError(t, svc.DeleteInvoice(ctx, created.ID))

	listed, err = svc.ListInvoices(ctx, "SHP-6004")
	require.NoError(t, err)
	assert.Empty(t, listed)

	assert.ErrorIs(t, svc.DeleteInvoice(ctx, created.ID), expensedomain.ErrInvoiceNotFound)
}

func TestDeleteExpense_NotFound(t *testing.T) {
	svc, _, node := newTestService(t)

	assert.ErrorIs(t, svc.DeleteExpense(context.Background(), node.Generate().String()), expensedomain.ErrExpenseNotFound)
}
