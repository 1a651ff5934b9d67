// Package shipment contains the Shipment aggregate, its status and payment
// status enums, and the Package entity that belongs to it.
//
// Status is the single source of truth for a shipment's position in the
// network. It only changes through Shipment.TransitionTo (or the pickup and
// delivery helpers built on it), which follow a fixed adjacency table.
// Packages get their sub-tracking ordinal from a counter on the shipment, so
// ordinals are allocated under the same lock as the shipment row.
package shipment
