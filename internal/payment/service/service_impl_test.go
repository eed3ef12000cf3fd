package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	paymentdomain "github.com/marmaralog/brokerage/internal/payment/domain"
	paymentrepo "github.com/marmaralog/brokerage/internal/payment/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (paymentdomain.Service, paymentdomain.Repository) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&paymentdomain.IncomingPayment{},
		&paymentdomain.PaymentDistribution{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo := paymentrepo.NewRepository(conn)
	svc := NewService(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repo,
	})
	return svc, repo
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func createPayment(t *testing.T, svc paymentdomain.Service, amount string) *paymentdomain.PaymentResponse {
	t.Helper()

	resp, err := svc.Create(context.Background(), paymentdomain.CreateRequest{
		PayerName:   "Marmara Tekstil",
		TotalAmount: dec(amount),
	})
	require.NoError(t, err)
	return resp
}

func TestDistribute_FullLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	payment := createPayment(t, svc, "1000")
	assert.Equal(t, paymentdomain.StatusPending, payment.Status)
	assert.True(t, payment.RemainingBalance.Equal(dec("1000")))

	_, err := svc.Distribute(ctx, payment.ID, paymentdomain.DistributeRequest{
		ShipmentReference: "SHP-3001",
		Amount:            dec("400"),
		Type:              paymentdomain.TypeAdvance,
	})
	require.NoError(t, err)

	mid, err := svc.GetByID(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, paymentdomain.StatusPartial, mid.Status)
	assert.True(t, mid.RemainingBalance.Equal(dec("600")), "got %s", mid.RemainingBalance)

	_, err = svc.Distribute(ctx, payment.ID, paymentdomain.DistributeRequest{
		ShipmentReference: "SHP-3001",
		Amount:            dec("600"),
		Type:              paymentdomain.TypeBalance,
	})
	require.NoError(t, err)

	full, err := svc.GetByID(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, paymentdomain.StatusFull, full.Status)
	assert.True(t, full.RemainingBalance.IsZero(), "got %s", full.RemainingBalance)

	dists, err := svc.ListDistributionsByShipment(ctx, "SHP-3001")
	require.NoError(t, err)
	require.Len(t, dists, 2)
	assert.Equal(t, paymentdomain.TypeAdvance, dists[0].Type)
	assert.Equal(t, paymentdomain.TypeBalance, dists[1].Type)
}

func TestDistribute_InsufficientBalance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	payment := createPayment(t, svc, "100")

	_, err := svc.Distribute(ctx, payment.ID, paymentdomain.DistributeRequest{
		ShipmentReference: "SHP-3002",
		Amount:            dec("100.01"),
		Type:              paymentdomain.TypeAdvance,
	})
	assert.ErrorIs(t, err, paymentdomain.ErrInsufficientBalance)

	// Nothing was written on rejection.
	after, err := svc.GetByID(ctx, payment.ID)
	require.NoError(t, err)
	assert.True(t, after.AmountDistributed.IsZero())
	assert.Equal(t, paymentdomain.StatusPending, after.Status)
}

func TestDistribute_StaleBalanceRejected(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	payment := createPayment(t, svc, "1000")

	_, err := svc.Distribute(ctx, payment.ID, paymentdomain.DistributeRequest{
		ShipmentReference: "SHP-3003",
		Amount:            dec("300"),
		Type:              paymentdomain.TypeAdvance,
	})
	require.NoError(t, err)

	// A writer that observed the pre-distribution balance loses the race.
	paymentID, err := snowflake.ParseString(payment.ID)
	require.NoError(t, err)
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	err = repo.AppendDistribution(ctx, &paymentdomain.PaymentDistribution{
		ID:                node.Generate(),
		PaymentID:         paymentID,
		ShipmentReference: "SHP-3003",
		Amount:            dec("300"),
		Type:              paymentdomain.TypeAdvance,
	}, decimal.Zero)
	assert.ErrorIs(t, err, paymentdomain.ErrConcurrentModification)
}

func TestDeleteDistribution_ReversesBalance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	payment := createPayment(t, svc, "500")

	dist, err := svc.Distribute(ctx, payment.ID, paymentdomain.DistributeRequest{
		ShipmentReference: "SHP-3004",
		Amount:            dec("500"),
		Type:              paymentdomain.TypeBalance,
	})
	require.NoError(t, err)

	full, err := svc.GetByID(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, paymentdomain.StatusFull, full.Status)

	require.NoError(t, svc.DeleteDistribution(ctx, dist.ID))

	after, err := svc.GetByID(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, paymentdomain.StatusPending, after.Status)
	assert.True(t, after.RemainingBalance.Equal(dec("500")), "got %s", after.RemainingBalance)

	dists, err := svc.ListDistributionsByShipment(ctx, "SHP-3004")
	require.NoError(t, err)
	assert.Empty(t, dists)
}

func TestDeletePayment_Cascades(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	payment := createPayment(t, svc, "200")

	_, err := svc.Distribute(ctx, payment.ID, paymentdomain.DistributeRequest{
		ShipmentReference: "SHP-3005",
		Amount:            dec("200"),
		Type:              paymentdomain.TypeAdvance,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, payment.ID))

	_, err = svc.GetByID(ctx, payment.ID)
	assert.ErrorIs(t, err, paymentdomain.ErrNotFound)

	dists, err := svc.ListDistributionsByShipment(ctx, "SHP-3005")
	require.NoError(t, err)
	assert.Empty(t, dists)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, paymentdomain.CreateRequest{TotalAmount: dec("10")})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidPayer)

	_, err = svc.Create(ctx, paymentdomain.CreateRequest{PayerName: "X", TotalAmount: decimal.Zero})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidAmount)
}

func TestDistribute_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	payment := createPayment(t, svc, "100")

	_, err := svc.Distribute(ctx, payment.ID, paymentdomain.DistributeRequest{
		Amount: dec("10"),
		Type:   paymentdomain.TypeAdvance,
	})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidReference)

	_, err = svc.Distribute(ctx, payment.ID, paymentdomain.DistributeRequest{
		ShipmentReference: "SHP-3006",
		Amount:            decimal.Zero,
		Type:              paymentdomain.TypeAdvance,
	})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidAmount)

	_, err = svc.Distribute(ctx, payment.ID, paymentdomain.DistributeRequest{
		ShipmentReference: "SHP-3006",
		Amount:            dec("10"),
		Type:              paymentdomain.PaymentType("refund"),
	})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidType)
}

func TestDeriveStatus_Epsilon(t *testing.T) {
	// Sub-cent residue counts as fully distributed.
	assert.Equal(t, paymentdomain.StatusFull, paymentdomain.DeriveStatus(dec("100"), dec("99.995")))
	assert.Equal(t, paymentdomain.StatusPartial, paymentdomain.DeriveStatus(dec("100"), dec("99.98")))
	assert.Equal(t, paymentdomain.StatusPending, paymentdomain.DeriveStatus(dec("100"), decimal.Zero))
}
