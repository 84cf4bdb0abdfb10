package bus

import "time"

// EventBus is a synchronous in-process pub/sub bus.
//
// - Handlers subscribe by Event.Type(); AllEvents receives every type.
// - Publish calls handlers in the caller goroutine, in subscription order.
// - Handler errors are joined and returned from Publish.
// - All methods are safe for concurrent use.
type EventBus interface {
	// Publish delivers event to every active subscriber of its type.
	Publish(event Event) error
	// Subscribe registers handler for eventType and returns a handle to cancel it.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels sub. It is safe to call with nil.
	Unsubscribe(sub Subscription) error
	// Subscribers counts the active subscriptions for eventType.
	Subscribers(eventType string) int
}

// AllEvents subscribes a handler to every event type
const AllEvents = "*"

// Event is an immutable message transported by the bus
type Event interface {
	Type() string
	Timestamp() time.Time
	Data() any
}

// EventHandler is invoked for each delivered event.
type EventHandler func(event Event) error

// Subscription is a registered handler bound to an event type.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}
