// Package notification builds the messages emitted by lifecycle changes.
//
// Messages are data only. They are written to an outbox in the same unit of
// work as the change and relayed to a sink afterwards, so a failing sink can
// neither block nor undo a transition.
package notification
