// Package order implements the Order aggregate of the fulfillment core.
//
// The package includes:
//   - Order: the aggregate root owning its lines, timestamps and cancellation reason
//   - OrderLine: a value record with the product snapshot, quantities and unit price
//   - Status: a closed enum plus a static transition table
//
// Key business rules:
//   - orders are created Received with at least one line and one line per product
//   - Received -> Picking -> Picked -> Completed; Cancelled only from Received or Picking
//   - picking completes only when every line is picked in full
//   - every transition records a kernel.DomainEvent, dispatched after commit
package order
