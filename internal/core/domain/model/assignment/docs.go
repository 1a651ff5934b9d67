// Package assignment models the pickup and delivery tasks handed to drivers.
//
// An Assignment has its own state machine (see Status) that runs alongside
// the shipment's. Guards never panic: a call from the wrong status returns an
// error matching errs.ErrInvalidState and leaves the assignment as it was.
package assignment
