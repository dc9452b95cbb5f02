package vestbook

import (
	"cosmossdk.io/math"
)

// EventType identifies a domain event emitted by the engine.
type EventType string

// Event types produced by the schedule engine.
const (
	EventScheduleStarted EventType = "schedule_started"
	EventTokensReleased  EventType = "tokens_released"
)

// Event attribute keys, for observers that flatten events into indexed
// attributes.
const (
	AttributeKeyAsset       = "asset"
	AttributeKeyBeneficiary = "beneficiary"
	AttributeKeyCreator     = "creator"
	AttributeKeyRecipient   = "recipient"
	AttributeKeyReleasor    = "releasor"
	AttributeKeyAmount      = "amount"
)

// Event is one emitted domain event. Creator is set on ScheduleStarted;
// Recipient and Releasor are set on TokensReleased.
type Event struct {
	Seq         uint64    `json:"seq"`
	Type        EventType `json:"type"`
	Marker      uint64    `json:"marker"`
	Asset       string    `json:"asset"`
	Beneficiary string    `json:"beneficiary"`
	Creator     string    `json:"creator,omitempty"`
	Recipient   string    `json:"recipient,omitempty"`
	Releasor    string    `json:"releasor,omitempty"`
	Amount      math.Int  `json:"amount"`
}

// EventLog is the append-only record of emitted domain events. External
// observers poll it with Since to reconstruct derived state; the engine
// holds no observer-facing state itself.
type EventLog struct {
	events []Event
}

// NewEventLog creates an empty event log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Len returns the number of recorded events.
func (l *EventLog) Len() int { return len(l.events) }

// Append records an event, assigning it the next sequence number.
func (l *EventLog) Append(ev Event) Event {
	ev.Seq = uint64(len(l.events))
	l.events = append(l.events, ev)
	return ev
}

// All returns a copy of every recorded event in order.
func (l *EventLog) All() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Since returns a copy of all events with sequence number >= seq, for
// pull-based observers resuming from a known position.
func (l *EventLog) Since(seq uint64) []Event {
	if seq >= uint64(len(l.events)) {
		return nil
	}
	out := make([]Event, uint64(len(l.events))-seq)
	copy(out, l.events[seq:])
	return out
}
