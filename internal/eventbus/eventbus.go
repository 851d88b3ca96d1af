package eventbus

// Event represents an arbitrary event passed on the bus. Producers publish
// the value types of core/events.
type Event interface{}

// EventBus implements a simple publish/subscribe event bus.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	Unsubscribe(<-chan Event)
	Close()
}

// Bus is the default EventBus implementation using fan-out channels.
type Bus = TypedBus[Event]

// New creates a new Bus with DefaultBuffer sized subscribers.
func New() *Bus { return NewTyped[Event](DefaultBuffer) }

var _ EventBus = (*Bus)(nil)
