package notification

import (
	"context"

	"github.com/prexcol/backend/internal/domain/shared"
)

// NoOpEventPublisher discards all events. Used when the notifier is disabled.
type NoOpEventPublisher struct{}

// NewNoOpEventPublisher creates a NoOpEventPublisher
func NewNoOpEventPublisher() *NoOpEventPublisher {
	return &NoOpEventPublisher{}
}

// Publish discards the events
func (p *NoOpEventPublisher) Publish(_ context.Context, _ ...shared.DomainEvent) error {
	return nil
}

var _ shared.EventPublisher = (*NoOpEventPublisher)(nil)
