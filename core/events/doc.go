// Package events defines the assignment run events emitted on the event bus.
//
// Available event types:
//   - RunEvent: an assignment run completed
//   - UnderfillEvent: a student subject received fewer lessons than requested
//   - PublishEvent: outcome of publishing one tutor roster
package events
