// Package catalog adapts the product catalog read model kept in Redis.
//
// Each product is one hash:
//
//	HSET catalog:product:<uuid> name "Espresso beans" sku "ESP-1KG" unit_price 1999
//
// unit_price is in minor currency units. The catalog service owns the data; the
// fulfillment core only reads it, except for Put which exists to seed
// environments and tests.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "catalog:product:"

const (
	fieldName      = "name"
	fieldSKU       = "sku"
	fieldUnitPrice = "unit_price"
)

var _ ports.ProductCatalog = (*RedisProductCatalog)(nil)

type RedisProductCatalog struct {
	client redis.Cmdable
}

func NewRedisProductCatalog(client redis.Cmdable) (*RedisProductCatalog, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	return &RedisProductCatalog{client: client}, nil
}

func Key(productID kernel.UUID) string {
	return keyPrefix + productID.String()
}

// GetProduct returns an ObjectNotFoundError when no hash exists for the product.
func (c *RedisProductCatalog) GetProduct(ctx context.Context, id kernel.UUID) (ports.CatalogEntry, error) {
	if err := id.Validate(); err != nil {
		return ports.CatalogEntry{}, errs.NewValueIsRequiredError("productID")
	}

	fields, err := c.client.HGetAll(ctx, Key(id)).Result()
	if err != nil {
		return ports.CatalogEntry{}, fmt.Errorf("read catalog entry %s: %w", id, err)
	}
	if len(fields) == 0 {
		return ports.CatalogEntry{}, errs.NewObjectNotFoundError("product", id)
	}

	return decode(id, fields)
}

// Put writes or replaces a catalog entry.
func (c *RedisProductCatalog) Put(ctx context.Context, entry ports.CatalogEntry) error {
	if err := entry.Product.Validate(); err != nil {
		return err
	}
	if entry.UnitPrice < 0 {
		return errs.NewValueIsOutOfRangeError("unitPrice", int64(entry.UnitPrice), 0, "unbounded")
	}

	return c.client.HSet(ctx, Key(entry.Product.ID()),
		fieldName, entry.Product.Name(),
		fieldSKU, entry.Product.SKU(),
		fieldUnitPrice, strconv.FormatInt(int64(entry.UnitPrice), 10),
	).Err()
}

func decode(id kernel.UUID, fields map[string]string) (ports.CatalogEntry, error) {
	price, err := strconv.ParseInt(fields[fieldUnitPrice], 10, 64)
	if err != nil {
		return ports.CatalogEntry{}, errs.NewValueIsInvalidErrorWithCause(fieldUnitPrice, err)
	}
	if price < 0 {
		return ports.CatalogEntry{}, errs.NewValueIsOutOfRangeError(fieldUnitPrice, price, 0, "unbounded")
	}

	product, err := kernel.NewProduct(id, fields[fieldName], fields[fieldSKU])
	if err != nil {
		return ports.CatalogEntry{}, errors.Join(
			errs.NewValueIsInvalidError(fmt.Sprintf("catalog entry %s", id)), err)
	}

	return ports.CatalogEntry{Product: product, UnitPrice: kernel.Money(price)}, nil
}
