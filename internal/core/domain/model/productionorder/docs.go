// Package productionorder holds the ProductionOrder aggregate: work the factory
// must manufacture because stock could not cover a warehouse order. Production
// orders are submitted to the external scheduler, follow its progress and
// eventually spawn production and assembly control orders.
package productionorder
