package queries

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetLowStockUnitsQueryIsNotConstructed = errors.New(
	"GetLowStockUnitsQuery must be created via NewGetLowStockUnitsQuery constructor",
)

// GetLowStockUnitsQuery lists storage units whose available stock is at or
// below threshold. Out-of-stock units are included.
type GetLowStockUnitsQuery struct {
	threshold int

	guard guard.ConstructorGuard
}

func NewGetLowStockUnitsQuery(threshold int) (GetLowStockUnitsQuery, error) {
	if threshold < 0 {
		return GetLowStockUnitsQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"threshold", fmt.Errorf("%d is negative", threshold))
	}
	return GetLowStockUnitsQuery{threshold: threshold, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLowStockUnitsQuery) Validate() error {
	return q.guard.Validate(ErrGetLowStockUnitsQueryIsNotConstructed)
}

func (q GetLowStockUnitsQuery) Threshold() int {
	return q.threshold
}

type LowStockUnit struct {
	ID              kernel.UUID
	ProductID       kernel.UUID
	ProductName     string
	SKU             string
	LocationCode    string
	Zone            string
	Quantity        int
	Reserved        int
	Available       int
	LastRestockedAt time.Time
}
