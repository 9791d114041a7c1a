// Package inventory implements the inventory ledger of the warehouse.
//
// A StorageUnit holds the physical and reserved quantity of one product at one
// location. Stock is only ever moved through four operations:
//   - Reserve: a soft hold that lowers the available quantity
//   - ReleaseReservation: returns a hold to the available pool
//   - Pick: turns a hold into a physical deduction
//   - Restock: adds physical stock
//
// Every operation keeps 0 <= reserved <= quantity. Available, out-of-stock and
// low-stock are derived on read and never stored.
package inventory
