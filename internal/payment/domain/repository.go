package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, payment *IncomingPayment) error
	FindByID(ctx context.Context, id snowflake.ID) (*IncomingPayment, error)
	List(ctx context.Context, filter ListRequest) ([]IncomingPayment, error)
	// DeleteCascade removes the payment and its distributions in one
	// transaction.
	DeleteCascade(ctx context.Context, id snowflake.ID) error

	// AppendDistribution inserts the distribution and applies the balance
	// increment with a compare-and-set on the payment's previously observed
	// distributed amount. A lost race returns ErrConcurrentModification with
	// nothing written; simultaneous distributions can therefore never jointly
	// over-allocate a stale balance.
	AppendDistribution(ctx context.Context, dist *PaymentDistribution, observedDistributed decimal.Decimal) error
	// RemoveDistribution deletes the row and reverses its increment in one
	// transaction.
	RemoveDistribution(ctx context.Context, id snowflake.ID) (*PaymentDistribution, error)
	FindDistribution(ctx context.Context, id snowflake.ID) (*PaymentDistribution, error)
	ListDistributionsByShipment(ctx context.Context, reference string) ([]PaymentDistribution, error)
}
