// Package tracking holds the append-only ledger of a shipment: tracking
// events (the public timeline) and status records (the internal history of
// transitions). Both types are immutable after construction; repositories
// only ever append them.
package tracking
