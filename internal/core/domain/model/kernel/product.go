package kernel

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrProductIsNotConstructed is returned when a zero-value Product is used.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is the denormalized snapshot of a catalog product (identity, name, SKU)
// copied into order lines, storage units and picking items. It is copied once and
// never re-joined with the catalog afterwards.
type Product struct {
	id    UUID
	name  string
	sku   string
	guard guard.ConstructorGuard
}

// NewProduct validates and builds a product snapshot. Name and SKU are trimmed.
func NewProduct(id UUID, name string, sku string) (Product, error) {
	p := Product{guard: guard.NewConstructorGuard()}

	name = strings.TrimSpace(name)
	sku = strings.TrimSpace(sku)

	var nameErr, skuErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("product name")
	}
	if sku == "" {
		skuErr = errs.NewValueIsRequiredError("product sku")
	}

	if err := errors.Join(id.Validate(), nameErr, skuErr); err != nil {
		return Product{}, err
	}

	p.id, p.name, p.sku = id, name, sku
	return p, nil
}

func (p Product) ID() UUID {
	return p.id
}

func (p Product) Name() string {
	return p.name
}

func (p Product) SKU() string {
	return p.sku
}

// Validate fails for a Product not built by NewProduct.
func (p Product) Validate() error {
	return p.guard.Validate(ErrProductIsNotConstructed)
}
