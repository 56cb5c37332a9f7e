package identity

import (
	"sync"

	"staybook/internal/domain"
)

type EventKind string

const (
	EventRegister EventKind = "register"
	EventLogin    EventKind = "login"
	EventLogout   EventKind = "logout"
)

type Event struct {
	Kind    EventKind
	Session domain.Session
}

// Events broadcasts session transitions to subscribers. It replaces ambient
// current-user state: components that care about login/logout register a
// callback instead of reading a global.
type Events struct {
	mu   sync.RWMutex
	subs []func(Event)
}

func NewEvents() *Events { return &Events{} }

// Subscribe registers fn for all future events. Callbacks run synchronously
// on the publishing goroutine and must not block.
func (e *Events) Subscribe(fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

func (e *Events) Publish(ev Event) {
	e.mu.RLock()
	subs := e.subs
	e.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}
