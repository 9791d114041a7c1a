// Package services provides domain services that work across aggregates of the
// fulfillment core.
//
// The package includes:
//   - AllocationPlanner: selects storage units and quantities that satisfy
//     every line of an order, or fails as a whole
//
// Domain services never persist anything; the application layer applies their
// results inside a unit of work.
package services
