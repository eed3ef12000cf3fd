package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	allocationdomain "github.com/marmaralog/brokerage/internal/allocation/domain"
	allocationrepo "github.com/marmaralog/brokerage/internal/allocation/repository"
	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
	shipmentrepo "github.com/marmaralog/brokerage/internal/shipment/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type testEnv struct {
	svc          allocationdomain.Service
	repo         allocationdomain.Repository
	shipmentRepo shipmentdomain.Repository
	node         *snowflake.Node
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&shipmentdomain.Shipment{},
		&allocationdomain.LineItem{},
		&allocationdomain.AllocationConfig{},
		&allocationdomain.AllocationResult{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo := allocationrepo.NewRepository(conn)
	shipRepo := shipmentrepo.NewRepository(conn)

	svc := NewService(Params{
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         repo,
		ShipmentRepo: shipRepo,
	})

	return &testEnv{svc: svc, repo: repo, shipmentRepo: shipRepo, node: node}
}

func (e *testEnv) createShipment(t *testing.T, reference string) *shipmentdomain.Shipment {
	t.Helper()

	shipment := &shipmentdomain.Shipment{
		ID:           e.node.Generate(),
		Reference:    reference,
		ImporterName: "Marmara Tekstil",
		Status:       shipmentdomain.StatusOpen,
		Metadata:     datatypes.JSONMap{},
	}
	require.NoError(t, e.shipmentRepo.Create(context.Background(), shipment))
	return shipment
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAllocate_Proportional(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createShipment(t, "SHP-1001")

	_, err := env.svc.ReplaceLineItems(ctx, "SHP-1001", []allocationdomain.LineItemInput{
		{Description: "t-shirt", Quantity: 3, UnitPrice: dec("100")},
		{Description: "hoodie", Quantity: 7, UnitPrice: dec("100")},
	})
	require.NoError(t, err)

	results, err := env.svc.Allocate(ctx, "SHP-1001", allocationdomain.AllocateRequest{Pool: dec("90")})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].FinalCost.Equal(dec("27")), "got %s", results[0].FinalCost)
	assert.True(t, results[1].FinalCost.Equal(dec("63")), "got %s", results[1].FinalCost)
	assert.True(t, results[0].FinalCostPerItem.Equal(dec("9")), "got %s", results[0].FinalCostPerItem)
	assert.True(t, results[1].FinalCostPerItem.Equal(dec("9")), "got %s", results[1].FinalCostPerItem)

	require.NotNil(t, results[0].CostMultiplier)
	assert.True(t, results[0].CostMultiplier.Equal(dec("0.09")), "got %s", results[0].CostMultiplier)
}

func TestAllocate_EqualMethodFromConfig(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createShipment(t, "SHP-1002")

	_, err := env.svc.ReplaceLineItems(ctx, "SHP-1002", []allocationdomain.LineItemInput{
		{Quantity: 1, UnitPrice: dec("900")},
		{Quantity: 1, UnitPrice: dec("100")},
	})
	require.NoError(t, err)

	_, err = env.svc.UpsertConfig(ctx, "SHP-1002", allocationdomain.ConfigRequest{
		Method: allocationdomain.MethodEqual,
	})
	require.NoError(t, err)

	results, err := env.svc.Allocate(ctx, "SHP-1002", allocationdomain.AllocateRequest{Pool: dec("100")})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].FinalCost.Equal(dec("50")))
	assert.True(t, results[1].FinalCost.Equal(dec("50")))
	assert.Nil(t, results[0].CostMultiplier)
	assert.Nil(t, results[1].CostMultiplier)
}

func TestAllocate_ReplacesPreviousRun(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createShipment(t, "SHP-1003")

	_, err := env.svc.ReplaceLineItems(ctx, "SHP-1003", []allocationdomain.LineItemInput{
		{Quantity: 1, UnitPrice: dec("100")},
		{Quantity: 1, UnitPrice: dec("300")},
	})
	require.NoError(t, err)

	_, err = env.svc.Allocate(ctx, "SHP-1003", allocationdomain.AllocateRequest{Pool: dec("40")})
	require.NoError(t, err)

	results, err := env.svc.Allocate(ctx, "SHP-1003", allocationdomain.AllocateRequest{Pool: dec("80")})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].FinalCost.Equal(dec("20")))
	assert.True(t, results[1].FinalCost.Equal(dec("60")))

	stored, err := env.svc.ListResults(ctx, "SHP-1003")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.True(t, stored[0].FinalCost.Equal(dec("20")))
	assert.True(t, stored[1].FinalCost.Equal(dec("60")))
}

func TestAllocate_StaleVersionRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shipment := env.createShipment(t, "SHP-1004")

	_, err := env.svc.ReplaceLineItems(ctx, "SHP-1004", []allocationdomain.LineItemInput{
		{Quantity: 1, UnitPrice: dec("100")},
	})
	require.NoError(t, err)

	// First run bumps the shipment's calc version.
	_, err = env.svc.Allocate(ctx, "SHP-1004", allocationdomain.AllocateRequest{Pool: dec("10")})
	require.NoError(t, err)

	// A writer still holding the pre-run version must lose.
	err = env.repo.ReplaceResults(ctx, shipment.ID, shipment.CalcVersion, []allocationdomain.AllocationResult{})
	assert.ErrorIs(t, err, shipmentdomain.ErrConcurrentModification)
}

func TestAllocate_NoLineItems(t *testing.T) {
	env := newTestEnv(t)
	env.createShipment(t, "SHP-1005")

	_, err := env.svc.Allocate(context.Background(), "SHP-1005", allocationdomain.AllocateRequest{Pool: dec("10")})
	assert.ErrorIs(t, err, allocationdomain.ErrEmptyInput)
}

func TestAllocate_UnknownShipment(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Allocate(context.Background(), "SHP-MISSING", allocationdomain.AllocateRequest{Pool: dec("10")})
	assert.ErrorIs(t, err, shipmentdomain.ErrNotFound)
}

func TestReplaceLineItems_RejectsZeroQuantity(t *testing.T) {
	env := newTestEnv(t)
	env.createShipment(t, "SHP-1006")

	_, err := env.svc.ReplaceLineItems(context.Background(), "SHP-1006", []allocationdomain.LineItemInput{
		{Quantity: 0, UnitPrice: dec("10")},
	})
	assert.ErrorIs(t, err, allocationdomain.ErrZeroQuantity)
}

func TestReplaceLineItems_DropsStaleResults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createShipment(t, "SHP-1007")

	_, err := env.svc.ReplaceLineItems(ctx, "SHP-1007", []allocationdomain.LineItemInput{
		{Quantity: 2, UnitPrice: dec("50")},
	})
	require.NoError(t, err)

	_, err = env.svc.Allocate(ctx, "SHP-1007", allocationdomain.AllocateRequest{Pool: dec("10")})
	require.NoError(t, err)

	_, err = env.svc.ReplaceLineItems(ctx, "SHP-1007", []allocationdomain.LineItemInput{
		{Quantity: 4, UnitPrice: dec("25")},
	})
	require.NoError(t, err)

	_, err = env.svc.ListResults(ctx, "SHP-1007")
	assert.ErrorIs(t, err, allocationdomain.ErrNoResults)
}

func TestGetConfig_DefaultsToProportional(t *testing.T) {
	env := newTestEnv(t)
	env.createShipment(t, "SHP-1008")

	cfg, err := env.svc.GetConfig(context.Background(), "SHP-1008")
	require.NoError(t, err)
	assert.Equal(t, allocationdomain.MethodProportional, cfg.Method)
	assert.True(t, cfg.IsVisible)
}
