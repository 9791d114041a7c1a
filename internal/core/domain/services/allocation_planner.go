package services

import (
	"sort"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/pkg/errs"
)

// Allocation is one (line, storage unit) pair chosen by the planner.
type Allocation struct {
	Product       kernel.Product
	StorageUnitID kernel.UUID
	LocationCode  string
	Barcode       string
	Quantity      int
}

// Item converts the allocation into a picking item. Location and barcode are
// copied, never linked to the storage unit.
func (a Allocation) Item() (picking.Item, error) {
	return picking.NewItem(a.Product, a.StorageUnitID, a.LocationCode, a.Barcode, a.Quantity)
}

// Barcode synthesizes the scan reference of a pick, e.g. "WID-1-A-01-03".
func Barcode(sku, locationCode string) string {
	return sku + "-" + locationCode
}

// AllocationPlanner computes allocation plans.
//
// Algorithm, per order line:
//   - candidates are units of the line's product with available > 0, restricted
//     to zone when zone is not blank
//   - candidates are ordered by available quantity descending, then location
//     code ascending, then unit id, so a given snapshot always yields the same plan
//   - the line is consumed greedily from the largest bins first
//
// Planning is read-only: candidate units are never mutated. When any line
// cannot be satisfied the whole plan fails with InsufficientStockError and
// no allocation is returned.
//
// Example usage:
//
//	planner := services.NewAllocationPlanner()
//	plan, err := planner.Plan(o, units, "A")
//	if errors.Is(err, errs.ErrInsufficientStock) {
//	    // Nothing was reserved
//	}
type AllocationPlanner struct{}

func NewAllocationPlanner() AllocationPlanner {
	return AllocationPlanner{}
}

// Plan returns allocations in order-line order, largest bin first within a line.
func (p AllocationPlanner) Plan(o *order.Order, candidates []*inventory.StorageUnit, zone string) ([]Allocation, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	byProduct := make(map[kernel.UUID][]*inventory.StorageUnit)
	for _, unit := range candidates {
		if err := unit.Validate(); err != nil {
			return nil, err
		}
		if unit.Available() <= 0 {
			continue
		}
		if zone != "" && unit.Zone() != zone {
			continue
		}
		productID := unit.Product().ID()
		byProduct[productID] = append(byProduct[productID], unit)
	}

	var plan []Allocation
	for _, line := range o.Lines() {
		allocations, err := p.planLine(line, byProduct[line.Product().ID()])
		if err != nil {
			return nil, err
		}
		plan = append(plan, allocations...)
	}

	return plan, nil
}

func (p AllocationPlanner) planLine(line order.OrderLine, units []*inventory.StorageUnit) ([]Allocation, error) {
	sorted := make([]*inventory.StorageUnit, len(units))
	copy(sorted, units)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Available() != b.Available() {
			return a.Available() > b.Available()
		}
		if a.LocationCode() != b.LocationCode() {
			return a.LocationCode() < b.LocationCode()
		}
		return a.ID().Compare(b.ID()) < 0
	})

	remaining := line.QuantityOrdered()
	allocations := make([]Allocation, 0, len(sorted))
	for _, unit := range sorted {
		if remaining == 0 {
			break
		}
		take := min(unit.Available(), remaining)
		allocations = append(allocations, Allocation{
			Product:       line.Product(),
			StorageUnitID: unit.ID(),
			LocationCode:  unit.LocationCode(),
			Barcode:       Barcode(line.Product().SKU(), unit.LocationCode()),
			Quantity:      take,
		})
		remaining -= take
	}

	if remaining > 0 {
		return nil, errs.NewInsufficientStockError(
			line.Product().ID().String(), "",
			line.QuantityOrdered(), line.QuantityOrdered()-remaining,
		)
	}

	return allocations, nil
}
