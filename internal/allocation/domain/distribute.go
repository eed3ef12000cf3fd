package domain

import (
	"github.com/marmaralog/brokerage/pkg/money"
	"github.com/shopspring/decimal"
)

// DistributePool splits pool across len(values) slots and returns the
// per-slot amounts in input order.
//
// Proportional weights each slot by values[i] / sum(values); equal ignores
// the values. In both cases every slot but the last is rounded to 2 decimal
// places and the last slot absorbs the rounding remainder, so the returned
// amounts always sum to pool exactly. The same inputs always produce the
// same outputs.
func DistributePool(values []decimal.Decimal, pool decimal.Decimal, method DistributionMethod) ([]decimal.Decimal, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}
	if pool.IsNegative() {
		return nil, ErrNegativePool
	}

	switch method {
	case MethodProportional:
		return distributeProportional(values, pool)
	case MethodEqual:
		return distributeEqual(len(values), pool)
	default:
		return nil, ErrInvalidMethod
	}
}

func distributeProportional(values []decimal.Decimal, pool decimal.Decimal) ([]decimal.Decimal, error) {
	total := decimal.Zero
	for _, v := range values {
		if v.IsNegative() {
			return nil, ErrNegativeValue
		}
		total = total.Add(v)
	}
	if total.IsZero() {
		return nil, ErrDegenerateDistribution
	}

	amounts := make([]decimal.Decimal, len(values))
	allocated := decimal.Zero
	for i, v := range values {
		if i == len(values)-1 {
			amounts[i] = pool.Sub(allocated)
			break
		}
		amounts[i] = money.Round2(pool.Mul(v).Div(total))
		allocated = allocated.Add(amounts[i])
	}
	return amounts, nil
}

func distributeEqual(count int, pool decimal.Decimal) ([]decimal.Decimal, error) {
	per := money.Round2(pool.Div(decimal.NewFromInt(int64(count))))

	amounts := make([]decimal.Decimal, count)
	allocated := decimal.Zero
	for i := 0; i < count; i++ {
		if i == count-1 {
			amounts[i] = pool.Sub(allocated)
			break
		}
		amounts[i] = per
		allocated = allocated.Add(per)
	}
	return amounts, nil
}

// Weights returns each value's fraction of the total, in input order.
// The caller must have rejected a zero total beforehand.
func Weights(values []decimal.Decimal) []decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}

	weights := make([]decimal.Decimal, len(values))
	for i, v := range values {
		weights[i] = v.Div(total)
	}
	return weights
}
