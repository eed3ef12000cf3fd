package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
	shipmentrepo "github.com/marmaralog/brokerage/internal/shipment/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) shipmentdomain.Service {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&shipmentdomain.Shipment{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  shipmentrepo.NewRepository(conn),
	})
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, shipmentdomain.CreateRequest{
		Reference:     "  SHP-5001  ",
		ImporterName:  "Marmara Tekstil",
		DeclarationNo: "25341300IM000001",
		Metadata:      map[string]any{"season": "FW26"},
	})
	require.NoError(t, err)
	assert.Equal(t, "SHP-5001", created.Reference)
	assert.Equal(t, shipmentdomain.StatusOpen, created.Status)

	got, err := svc.GetByReference(ctx, "SHP-5001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "FW26", got.Metadata["season"])
}

func TestCreate_DuplicateReference(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := shipmentdomain.CreateRequest{Reference: "SHP-5002", ImporterName: "Marmara Tekstil"}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, shipmentdomain.ErrDuplicate)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, shipmentdomain.CreateRequest{ImporterName: "X"})
	assert.ErrorIs(t, err, shipmentdomain.ErrInvalidReference)

	_, err = svc.Create(ctx, shipmentdomain.CreateRequest{Reference: "SHP-5003"})
	assert.ErrorIs(t, err, shipmentdomain.ErrInvalidImporter)
}

func TestUpdateStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, shipmentdomain.CreateRequest{Reference: "SHP-5004", ImporterName: "X"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, "SHP-5004", shipmentdomain.StatusInClearance)
	require.NoError(t, err)
	assert.Equal(t, shipmentdomain.StatusInClearance, updated.Status)

	_, err = svc.UpdateStatus(ctx, "SHP-5004", shipmentdomain.Status("ARCHIVED"))
	assert.ErrorIs(t, err, shipmentdomain.ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, "SHP-MISSING", shipmentdomain.StatusClosed)
	assert.ErrorIs(t, err, shipmentdomain.ErrNotFound)
}

func TestList_FilterByStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, ref := range []string{"SHP-5005", "SHP-5006"} {
		_, err := svc.Create(ctx, shipmentdomain.CreateRequest{Reference: ref, ImporterName: "X"})
		require.NoError(t, err)
	}
	_, err := svc.UpdateStatus(ctx, "SHP-5006", shipmentdomain.StatusClosed)
	require.NoError(t, err)

	open, err := svc.List(ctx, shipmentdomain.ListRequest{Status: "OPEN"})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "SHP-5005", open[0].Reference)
}
