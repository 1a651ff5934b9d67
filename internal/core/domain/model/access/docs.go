// Package access models who is calling (Actor, Role) and how they relate to a
// shipment (Bindings, Relation). The grant table mapping each role to the
// actions it may perform, and the relation required for each, lives here;
// evaluation happens in services.AccessPolicy.
package access
