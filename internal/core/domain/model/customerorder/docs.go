// Package customerorder holds the CustomerOrder aggregate: the request a
// workstation places with the factory and the line items it asks for.
//
// A customer order starts PENDING, moves to PROCESSING when a warehouse order
// is raised for it and is closed (COMPLETED) by the warehouse once every line
// is fulfilled from stock. Status changes are validated by the statemachine
// package and recorded as kernel.StatusChanged events.
package customerorder
