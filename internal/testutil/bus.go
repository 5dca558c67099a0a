package testutil

import (
	"context"
	"sync"

	"github.com/HerbHall/pitstop/pkg/plugin"
)

// MockBus records published events and delivers them synchronously to
// subscribers, including those passed to PublishAsync.
type MockBus struct {
	mu       sync.Mutex
	events   []plugin.Event
	handlers map[string][]plugin.EventHandler
	all      []plugin.EventHandler
}

var _ plugin.EventBus = (*MockBus)(nil)

// NewMockBus creates an empty MockBus.
func NewMockBus() *MockBus {
	return &MockBus{handlers: make(map[string][]plugin.EventHandler)}
}

func (b *MockBus) Publish(ctx context.Context, event plugin.Event) error {
	b.mu.Lock()
	b.events = append(b.events, event)
	handlers := append(append([]plugin.EventHandler{}, b.handlers[event.Topic]...), b.all...)
	b.mu.Unlock()
	for _, h := range handlers {
		h(ctx, event)
	}
	return nil
}

func (b *MockBus) PublishAsync(ctx context.Context, event plugin.Event) {
	_ = b.Publish(ctx, event)
}

func (b *MockBus) Subscribe(topic string, handler plugin.EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
	return func() {}
}

func (b *MockBus) SubscribeAll(handler plugin.EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, handler)
	return func() {}
}

// Events returns the events published so far.
func (b *MockBus) Events() []plugin.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]plugin.Event(nil), b.events...)
}

// Topic returns the published events with the given topic.
func (b *MockBus) Topic(topic string) []plugin.Event {
	var out []plugin.Event
	for _, e := range b.Events() {
		if e.Topic == topic {
			out = append(out, e)
		}
	}
	return out
}
