// Package kernel provides the primitives shared by every aggregate of the
// shipment engine.
//
// The package includes:
//   - UUID: identifier value object over github.com/google/uuid
//   - Location: free-text checkpoint label carried by ledger entries
//   - Money: non-negative fixed-point amount in minor units
//   - Clock and Random: injected capabilities for time and randomness, so
//     tests control timestamps and generated identifiers
//
// Value objects here are immutable and safe for concurrent use.
package kernel
