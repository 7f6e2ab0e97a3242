// Package warehouseorder holds the WarehouseOrder aggregate. A warehouse order
// asks a fulfilling workstation to ship the items of a customer order from
// stock; when stock runs short the remainder is cascaded into production.
//
// Invariants:
//   - fulfilled quantity never exceeds requested quantity on any item
//   - FULFILLED is reachable only when every item is fully fulfilled
package warehouseorder
