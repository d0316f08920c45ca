// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/bitgrid/internal/logger"
)

// Handler receives a dispatched event. Returning true consumes it and
// later subscribers are skipped.
type Handler func(e Event) bool

// Manager is a synchronous publish/subscribe bus keyed by event Type.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

func NewManager() *Manager {
	return &Manager{handlers: make(map[Type][]Handler)}
}

// Subscribe appends handler to the subscribers of eventType.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	m.handlers[eventType] = append(m.handlers[eventType], handler)
	m.mu.Unlock()
	logger.DebugTagf("event", "subscribed to %v", eventType)
}

// Dispatch runs the subscribers of eventType on the calling goroutine, in
// the order they subscribed. A handler may subscribe while it runs; the
// new subscriber sees the next dispatch.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	m.mu.RLock()
	subs := append([]Handler(nil), m.handlers[eventType]...)
	m.mu.RUnlock()
	if len(subs) == 0 {
		return
	}

	logger.DebugTagf("event", "dispatch %v to %d handler(s)", eventType, len(subs))
	e := Event{Type: eventType, Data: data}
	for _, h := range subs {
		if h(e) {
			return
		}
	}
}
