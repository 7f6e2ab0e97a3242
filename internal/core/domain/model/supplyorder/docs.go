// Package supplyorder holds the SupplyOrder aggregate: a request for parts
// raised by a control order and served by the supply warehouse.
//
// Status only moves forward (PENDING, IN_PROGRESS, then FULFILLED or
// REJECTED); CANCELLED is reachable from every non-terminal status.
package supplyorder
