// Package kernel holds the value objects shared by every fulfillment aggregate:
//   - UUID: identifiers with validation and a total order
//   - Product: the denormalized name/SKU snapshot taken from the catalog
//   - Money: integral minor-unit amounts for line prices and derived totals
//   - DomainEvent, EventRecorder: transition notifications dispatched after commit
package kernel
