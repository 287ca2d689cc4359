package bus

import (
	"context"
	"errors"
	"fmt"
)

// Message is a routed application request: a write intent or a read.
// Key names the handler to invoke.
type Message interface {
	Key() string
}

// Handler processes one message type.
type Handler[M Message, R any] interface {
	Handle(ctx context.Context, msg M) (R, error)
}

// HandlerFunc adapts an ordinary function to a Handler.
type HandlerFunc[M Message, R any] func(ctx context.Context, msg M) (R, error)

func (f HandlerFunc[M, R]) Handle(ctx context.Context, msg M) (R, error) {
	return f(ctx, msg)
}

var (
	ErrHandlerNotFound = errors.New("bus: handler not found")
	ErrInvalidMessage  = errors.New("bus: message does not match registered handler")
	ErrResultType      = errors.New("bus: result type mismatch")
	ErrNilBus          = errors.New("bus: nil bus")
)

type rawHandler func(ctx context.Context, msg Message) (any, error)

// InMemory routes messages to handlers registered by key.
type InMemory struct {
	handlers map[string]rawHandler
}

func NewInMemory() *InMemory {
	return &InMemory{handlers: make(map[string]rawHandler)}
}

// Dispatch executes the handler registered for the message's key.
func (b *InMemory) Dispatch(ctx context.Context, msg Message) (any, error) {
	h, ok := b.handlers[msg.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHandlerNotFound, msg.Key())
	}
	return h(ctx, msg)
}

// Register attaches a typed handler to the in-memory bus under key.
func Register[M Message, R any](b *InMemory, key string, handler Handler[M, R]) {
	if b == nil {
		panic("bus: nil bus registration")
	}
	if key == "" {
		panic("bus: empty key registration")
	}
	b.handlers[key] = func(ctx context.Context, raw Message) (any, error) {
		msg, ok := any(raw).(M)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidMessage, key)
		}
		return handler.Handle(ctx, msg)
	}
}

// Bus dispatches messages; the HTTP layer depends on this interface
// rather than the concrete registry.
type Bus interface {
	Dispatch(ctx context.Context, msg Message) (any, error)
}

// Send performs a type-safe dispatch against a bus.
func Send[M Message, R any](ctx context.Context, b Bus, msg M) (R, error) {
	var zero R
	if b == nil {
		return zero, ErrNilBus
	}
	res, err := b.Dispatch(ctx, msg)
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}
	value, ok := res.(R)
	if !ok {
		return zero, ErrResultType
	}
	return value, nil
}
