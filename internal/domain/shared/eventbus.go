package shared

import "context"

// EventPublisher publishes domain events to interested consumers.
// Publishing is best-effort from the caller's point of view: business
// operations must not fail because an event could not be delivered.
type EventPublisher interface {
	// Publish publishes one or more domain events
	Publish(ctx context.Context, events ...DomainEvent) error
}
