// Package kernel provides the value objects shared by every order aggregate of
// the manufacturing service.
//
// The package includes:
//   - UUID: identifiers of aggregates and line items
//   - Priority: LOW, MEDIUM, HIGH and URGENT, plus the age based priority rule
//   - WorkstationID: factory floor workstations and the well known ones
//   - DomainEvent, StatusChanged and EventLog: status change facts published after commit
package kernel
