package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	allocationdomain "github.com/marmaralog/brokerage/internal/allocation/domain"
	expensedomain "github.com/marmaralog/brokerage/internal/expense/domain"
	hscodedomain "github.com/marmaralog/brokerage/internal/hscode/domain"
	paymentdomain "github.com/marmaralog/brokerage/internal/payment/domain"
	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
	taxcalcdomain "github.com/marmaralog/brokerage/internal/taxcalc/domain"
	"gorm.io/gorm"
)

//go:embed sql
var embeddedMigrations embed.FS

const migrationsDir = "sql"

// RunMigrations applies the embedded SQL migrations against postgres. The
// schema is created automatically at startup so a fresh database is usable
// without manual setup.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate builds the schema from the gorm models. Used for the sqlite and
// mysql dialects, where the versioned SQL does not apply.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
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
	)
}
