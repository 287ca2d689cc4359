package policies

import (
	"context"

	"stayable/internal/domain/shared/events"
)

// Notifier forwards recorded domain events to whoever persists or
// reacts to them; publication happens after the aggregate mutation, not
// from inside the domain.
type Notifier interface {
	Publish(ctx context.Context, evts []events.DomainEvent) error
}

// NopNotifier drops events; used when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) Publish(ctx context.Context, evts []events.DomainEvent) error { return nil }
