package events

import (
	"reflect"
	"sync"
)

// MockEventBus provides an in-memory implementation of EventBus for testing.
// Delivery is synchronous so tests can assert immediately after publishing.
type MockEventBus struct {
	mutex           sync.RWMutex
	subscriptions   map[string][]interface{}
	publishedEvents map[string][]interface{}
	closed          bool
}

// NewMockEventBus creates a new MockEventBus instance
func NewMockEventBus() *MockEventBus {
	return &MockEventBus{
		subscriptions:   make(map[string][]interface{}),
		publishedEvents: make(map[string][]interface{}),
	}
}

// Subscribe implements the EventBus interface
func (m *MockEventBus) Subscribe(topic string, handler interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.subscriptions[topic] = append(m.subscriptions[topic], handler)
	return nil
}

// SubscribeAsync implements the EventBus interface; delivery stays synchronous
// in the mock so tests remain deterministic
func (m *MockEventBus) SubscribeAsync(topic string, handler interface{}) error {
	return m.Subscribe(topic, handler)
}

// Unsubscribe implements the EventBus interface
func (m *MockEventBus) Unsubscribe(topic string, handler interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	target := reflect.ValueOf(handler).Pointer()
	handlers := m.subscriptions[topic]
	for i := len(handlers) - 1; i >= 0; i-- {
		if reflect.ValueOf(handlers[i]).Pointer() == target {
			handlers = append(handlers[:i], handlers[i+1:]...)
		}
	}
	m.subscriptions[topic] = handlers
	return nil
}

// Publish implements the EventBus interface
func (m *MockEventBus) Publish(topic string, event interface{}) error {
	m.mutex.Lock()
	m.publishedEvents[topic] = append(m.publishedEvents[topic], event)
	handlers := append([]interface{}(nil), m.subscriptions[topic]...)
	m.mutex.Unlock()

	for _, handler := range handlers {
		switch h := handler.(type) {
		case func(PushRequested):
			if e, ok := event.(PushRequested); ok {
				h(e)
			}
		case func(interface{}):
			h(event)
		}
	}
	return nil
}

// Close implements the EventBus interface
func (m *MockEventBus) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.closed = true
	return nil
}

// PublishedEvents returns the events published to a topic
func (m *MockEventBus) PublishedEvents(topic string) []interface{} {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return append([]interface{}(nil), m.publishedEvents[topic]...)
}
