package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// CatalogEntry is what the core copies from the catalog: the product snapshot
// and the current unit price.
type CatalogEntry struct {
	Product   kernel.Product
	UnitPrice kernel.Money
}

// ProductCatalog resolves product details once, when an order line or a
// storage unit is created. It returns an ObjectNotFoundError for unknown products.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id kernel.UUID) (CatalogEntry, error)
}
