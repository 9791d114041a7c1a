// Package picking implements the picking task aggregate: the list of concrete
// (product, location, quantity) picks handed to one picker, with a life cycle
// Created -> InProgress -> Completed and Cancelled from either active state.
// Progress and outstanding reservations are derived from the items on read.
package picking
