// Package services holds domain services: business logic that spans more than
// one aggregate or value object.
//
// The package includes:
//   - ControlOrderSynthesizer: turns a scheduler timeline into production and
//     assembly control order drafts, one per workstation
package services
