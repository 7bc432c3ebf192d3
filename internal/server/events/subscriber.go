package events

// Subscriber receives broker events. Send must not block.
type Subscriber interface {
	Send(Event) error
	Close() error
}
