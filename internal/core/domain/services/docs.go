// Package services provides domain services that span more than one
// aggregate of the shipment lifecycle.
//
// The package includes:
//   - IdentifierGenerator: tracking numbers, master tracking ids, transaction
//     ids and QR codes from an injected clock and random source
//   - StatusTransitioner: applies a status change and derives its status
//     record, tracking event and notifications
//   - AccessPolicy: role and binding checks evaluated before every action
//
// None of them perform I/O. Uniqueness checks are passed in by the caller so
// they run inside the caller's unit of work.
package services
