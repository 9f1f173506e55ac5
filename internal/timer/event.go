package timer

// ListenerID identifies a subscription on an Event. Zero is never issued.
type ListenerID uint64

type listener struct {
	id ListenerID
	fn func()
}

// Event is an ordered registry of no-argument listeners.
// The zero value is ready to use.
type Event struct {
	listeners []listener
	next      ListenerID
}

// Subscribe appends fn and returns a handle for Unsubscribe. A nil fn is ignored.
func (e *Event) Subscribe(fn func()) ListenerID {
	if fn == nil {
		return 0
	}
	e.next++
	e.listeners = append(e.listeners, listener{id: e.next, fn: fn})
	return e.next
}

// Unsubscribe removes the listener registered under id.
func (e *Event) Unsubscribe(id ListenerID) bool {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered listeners.
func (e *Event) Len() int { return len(e.listeners) }

// fire calls every listener in registration order. Changes made to the
// registry by a listener apply from the next fire onwards.
func (e *Event) fire() {
	if len(e.listeners) == 0 {
		return
	}
	snapshot := e.listeners
	for _, l := range snapshot {
		l.fn()
	}
}
