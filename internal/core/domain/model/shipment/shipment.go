package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment was declared
	// instead of built by NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
)

// BookingDetails carries everything known about a shipment at booking time.
// Identifiers are generated by the caller before the shipment is built.
type BookingDetails struct {
	ID                  kernel.UUID
	TrackingNumber      string
	MasterTrackingID    string
	SenderID            kernel.UUID
	ReceiverID          kernel.UUID
	AgentID             *kernel.UUID
	PickupAddress       string
	DeliveryAddress     string
	ShipmentFee         kernel.Money
	TotalAmount         kernel.Money
	PickupDate          *time.Time
	SpecialInstructions string
	IsBusinessCourier   bool
	CreatedAt           time.Time
}

// Snapshot is the flat state of a Shipment, used by persistence adapters to
// store and restore the aggregate.
type Snapshot struct {
	ID                  kernel.UUID
	TrackingNumber      string
	MasterTrackingID    string
	SenderID            kernel.UUID
	ReceiverID          kernel.UUID
	AgentID             *kernel.UUID
	DriverID            *kernel.UUID
	PickupAddress       string
	DeliveryAddress     string
	Status              Status
	PaymentStatus       PaymentStatus
	ShipmentFee         kernel.Money
	TotalAmount         kernel.Money
	PickupDate          *time.Time
	DeliveryDate        *time.Time
	DeliverySignature   string
	SpecialInstructions string
	IsBusinessCourier   bool
	PackageSequence     int
	CreatedAt           time.Time
}

// Shipment is the aggregate root of the lifecycle engine.
//
// Shipment follows these invariants:
//   - trackingNumber and masterTrackingID are set once and never change
//   - status only moves along the edges of the transition table, so it is
//     always reachable from Booked
//   - paymentStatus evolves independently of status
//   - packageSequence only grows, so package ordinals are never reused
//   - a shipment can be deleted only while it is Booked
type Shipment struct {
	id                  kernel.UUID
	trackingNumber      string
	masterTrackingID    string
	senderID            kernel.UUID
	receiverID          kernel.UUID
	agentID             *kernel.UUID
	driverID            *kernel.UUID
	pickupAddress       string
	deliveryAddress     string
	status              Status
	paymentStatus       PaymentStatus
	shipmentFee         kernel.Money
	totalAmount         kernel.Money
	pickupDate          *time.Time
	deliveryDate        *time.Time
	deliverySignature   string
	specialInstructions string
	isBusinessCourier   bool
	packageSequence     int
	createdAt           time.Time

	isConstructed bool
}

// NewShipment books a shipment: status Booked, payment status pending, no
// driver and an empty package sequence.
//
// Returns:
//   - *Shipment on success
//   - joined validation errors for every invalid field otherwise
//
// Example:
//
//	s, err := shipment.NewShipment(shipment.BookingDetails{
//	    ID:               kernel.NewUUID(),
//	    TrackingNumber:   "TRK2026ABCD1234",
//	    MasterTrackingID: "MT2026XY12Z9",
//	    SenderID:         senderID,
//	    ReceiverID:       receiverID,
//	    PickupAddress:    "12 Moi Avenue, Nairobi",
//	    DeliveryAddress:  "4 Nyerere Road, Mombasa",
//	    CreatedAt:        clock.Now(),
//	})
func NewShipment(d BookingDetails) (*Shipment, error) {
	s := &Shipment{
		status:              Booked,
		paymentStatus:       PaymentPending,
		shipmentFee:         d.ShipmentFee,
		totalAmount:         d.TotalAmount,
		pickupDate:          cloneTime(d.PickupDate),
		specialInstructions: strings.TrimSpace(d.SpecialInstructions),
		isBusinessCourier:   d.IsBusinessCourier,
		createdAt:           d.CreatedAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		s.setID(d.ID),
		s.setTrackingNumber(d.TrackingNumber),
		s.setMasterTrackingID(d.MasterTrackingID),
		s.setParties(d.SenderID, d.ReceiverID),
		s.setAgent(d.AgentID),
		s.setAddresses(d.PickupAddress, d.DeliveryAddress),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment rebuilds a persisted shipment. Unlike NewShipment it
// accepts any recognized status, driver binding and counter value.
func RestoreShipment(snap Snapshot) (*Shipment, error) {
	s := &Shipment{
		driverID:            cloneID(snap.DriverID),
		status:              snap.Status,
		paymentStatus:       snap.PaymentStatus,
		shipmentFee:         snap.ShipmentFee,
		totalAmount:         snap.TotalAmount,
		pickupDate:          cloneTime(snap.PickupDate),
		deliveryDate:        cloneTime(snap.DeliveryDate),
		deliverySignature:   snap.DeliverySignature,
		specialInstructions: snap.SpecialInstructions,
		isBusinessCourier:   snap.IsBusinessCourier,
		packageSequence:     snap.PackageSequence,
		createdAt:           snap.CreatedAt,
		isConstructed:       true,
	}

	var seqErr error
	if snap.PackageSequence < 0 {
		seqErr = errs.NewValueIsOutOfRangeError("package sequence", snap.PackageSequence, 0, "max")
	}

	if err := errors.Join(
		s.setID(snap.ID),
		s.setTrackingNumber(snap.TrackingNumber),
		s.setMasterTrackingID(snap.MasterTrackingID),
		s.setParties(snap.SenderID, snap.ReceiverID),
		s.setAgent(snap.AgentID),
		s.setAddresses(snap.PickupAddress, snap.DeliveryAddress),
		snap.Status.Validate(),
		snap.PaymentStatus.Validate(),
		seqErr,
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Snapshot exports the aggregate state. Pointer fields are copied.
func (s *Shipment) Snapshot() Snapshot {
	return Snapshot{
		ID:                  s.id,
		TrackingNumber:      s.trackingNumber,
		MasterTrackingID:    s.masterTrackingID,
		SenderID:            s.senderID,
		ReceiverID:          s.receiverID,
		AgentID:             cloneID(s.agentID),
		DriverID:            cloneID(s.driverID),
		PickupAddress:       s.pickupAddress,
		DeliveryAddress:     s.deliveryAddress,
		Status:              s.status,
		PaymentStatus:       s.paymentStatus,
		ShipmentFee:         s.shipmentFee,
		TotalAmount:         s.totalAmount,
		PickupDate:          cloneTime(s.pickupDate),
		DeliveryDate:        cloneTime(s.deliveryDate),
		DeliverySignature:   s.deliverySignature,
		SpecialInstructions: s.specialInstructions,
		IsBusinessCourier:   s.isBusinessCourier,
		PackageSequence:     s.packageSequence,
		CreatedAt:           s.createdAt,
	}
}

// Validate ensures the Shipment was built by one of its constructors.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() kernel.UUID {
	return s.id
}

func (s *Shipment) TrackingNumber() string {
	return s.trackingNumber
}

func (s *Shipment) MasterTrackingID() string {
	return s.masterTrackingID
}

func (s *Shipment) SenderID() kernel.UUID {
	return s.senderID
}

func (s *Shipment) ReceiverID() kernel.UUID {
	return s.receiverID
}

// AgentID returns the bound agent, or nil when none is assigned.
func (s *Shipment) AgentID() *kernel.UUID {
	return cloneID(s.agentID)
}

// DriverID returns the bound driver, or nil when none is assigned.
func (s *Shipment) DriverID() *kernel.UUID {
	return cloneID(s.driverID)
}

func (s *Shipment) PickupAddress() string {
	return s.pickupAddress
}

func (s *Shipment) DeliveryAddress() string {
	return s.deliveryAddress
}

func (s *Shipment) Status() Status {
	return s.status
}

func (s *Shipment) PaymentStatus() PaymentStatus {
	return s.paymentStatus
}

func (s *Shipment) ShipmentFee() kernel.Money {
	return s.shipmentFee
}

func (s *Shipment) TotalAmount() kernel.Money {
	return s.totalAmount
}

func (s *Shipment) PickupDate() *time.Time {
	return cloneTime(s.pickupDate)
}

func (s *Shipment) DeliveryDate() *time.Time {
	return cloneTime(s.deliveryDate)
}

func (s *Shipment) DeliverySignature() string {
	return s.deliverySignature
}

func (s *Shipment) SpecialInstructions() string {
	return s.specialInstructions
}

func (s *Shipment) IsBusinessCourier() bool {
	return s.isBusinessCourier
}

// PackageSequence is the number of package ordinals handed out so far.
func (s *Shipment) PackageSequence() int {
	return s.packageSequence
}

func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// Bindings returns the parties currently attached to the shipment.
func (s *Shipment) Bindings() access.Bindings {
	return access.Bindings{
		Sender:   s.senderID,
		Receiver: s.receiverID,
		Agent:    cloneID(s.agentID),
		Driver:   cloneID(s.driverID),
	}
}

// TransitionTo moves the shipment to target along the transition table.
// On failure the shipment is unchanged.
func (s *Shipment) TransitionTo(target Status) error {
	next, err := s.status.TransitionTo(target)
	if err != nil {
		return err
	}
	s.status = next
	return nil
}

// MarkPickedUp records the driver's collection from the sender.
//
// Returns:
//   - InvalidStateError when the status does not allow pickup
//     (only Booked and AwaitingPickup do)
func (s *Shipment) MarkPickedUp(at time.Time) error {
	if !s.status.CanBePickedUp() {
		return errs.NewInvalidStateErrorWithCause("shipment",
			fmt.Errorf("%s is not a status a shipment can be picked up from", s.status))
	}
	if err := s.TransitionTo(PickedUp); err != nil {
		return err
	}
	s.pickupDate = &at
	return nil
}

// MarkDelivered completes the shipment with kind Delivered (door delivery)
// or PickedUpByReceiver (station collection).
//
// Returns:
//   - ValueIsInvalidError when kind is neither completed status
//   - InvalidStateError when the status does not allow delivery
//     (only ArrivedAtDestination and OutForDelivery do)
func (s *Shipment) MarkDelivered(kind Status, signature string, at time.Time) error {
	if !kind.IsCompleted() {
		return errs.NewValueIsInvalidErrorWithCause("delivery kind",
			fmt.Errorf("%s is not a delivery outcome", kind))
	}
	if !s.status.CanBeDelivered() {
		return errs.NewInvalidStateErrorWithCause("shipment",
			fmt.Errorf("%s is not a status a shipment can be delivered from", s.status))
	}
	if err := s.TransitionTo(kind); err != nil {
		return err
	}
	s.deliveryDate = &at
	s.deliverySignature = strings.TrimSpace(signature)
	return nil
}

// AssignAgent binds (or re-binds) the handling agent.
func (s *Shipment) AssignAgent(agentID kernel.UUID) error {
	if err := s.validateReassignable("agent"); err != nil {
		return err
	}
	return s.setAgent(&agentID)
}

// AssignDriver binds (or re-binds) the driver for the next leg.
func (s *Shipment) AssignDriver(driverID kernel.UUID) error {
	if err := s.validateReassignable("driver"); err != nil {
		return err
	}
	if err := driverID.Validate(); err != nil {
		return err
	}
	s.driverID = &driverID
	return nil
}

// ChangePaymentStatus sets the shipment-level payment flag.
func (s *Shipment) ChangePaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.paymentStatus = status
	return nil
}

// AllocatePackageOrdinal hands out the next package ordinal (0 for the first
// package) and advances the counter. Ordinals are never reused, so deleting a
// package leaves a gap in the sub-tracking letters.
func (s *Shipment) AllocatePackageOrdinal() int {
	ordinal := s.packageSequence
	s.packageSequence++
	return ordinal
}

// ValidateDeletable fails with InvalidStateError unless the shipment is
// still Booked.
func (s *Shipment) ValidateDeletable() error {
	if s.status != Booked {
		return errs.NewInvalidStateErrorWithCause("shipment",
			fmt.Errorf("only booked shipments can be deleted, status is %s", s.status))
	}
	return nil
}

func (s *Shipment) validateReassignable(what string) error {
	if s.status.IsTerminal() {
		return errs.NewInvalidStateErrorWithCause("shipment",
			fmt.Errorf("cannot assign %s to a %s shipment", what, s.status))
	}
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setTrackingNumber(trackingNumber string) error {
	if strings.TrimSpace(trackingNumber) == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	s.trackingNumber = trackingNumber
	return nil
}

func (s *Shipment) setMasterTrackingID(masterTrackingID string) error {
	if strings.TrimSpace(masterTrackingID) == "" {
		return errs.NewValueIsRequiredError("master tracking id")
	}
	s.masterTrackingID = masterTrackingID
	return nil
}

func (s *Shipment) setParties(senderID, receiverID kernel.UUID) error {
	if err := errors.Join(senderID.Validate(), receiverID.Validate()); err != nil {
		return err
	}
	s.senderID = senderID
	s.receiverID = receiverID
	return nil
}

func (s *Shipment) setAgent(agentID *kernel.UUID) error {
	if agentID == nil {
		s.agentID = nil
		return nil
	}
	if err := agentID.Validate(); err != nil {
		return err
	}
	s.agentID = cloneID(agentID)
	return nil
}

func (s *Shipment) setAddresses(pickup, delivery string) error {
	pickup = strings.TrimSpace(pickup)
	delivery = strings.TrimSpace(delivery)

	var err error
	if pickup == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("pickup address"))
	}
	if delivery == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("delivery address"))
	}
	if err != nil {
		return err
	}

	s.pickupAddress = pickup
	s.deliveryAddress = delivery
	return nil
}

func cloneID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
