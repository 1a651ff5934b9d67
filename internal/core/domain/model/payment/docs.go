// Package payment models payments made against a shipment and their forward
// only state machine. How a payment affects the shipment's payment status is
// decided by the application layer (see PaymentCoupling in the commands
// package), not here.
package payment
