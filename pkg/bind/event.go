package bind

// Target is the named-property bag carried by a change notification.
// It mirrors the event-target contract of the host event system: an input
// exposes its state under properties such as "value" or "checked".
type Target map[string]any

// Get returns the named target property, or nil if absent.
func (t Target) Get(name string) any {
	return t[name]
}

// Event is an input-change notification delivered to a Binding's OnChange
// handler.
type Event struct {
	Target Target
}

// NewEvent creates an event with the given target properties.
func NewEvent(target Target) Event {
	return Event{Target: target}
}

// ValueEvent creates an event whose target carries v under "value".
// This is the shape text inputs produce.
func ValueEvent(v any) Event {
	return Event{Target: Target{"value": v}}
}

// CheckedEvent creates an event whose target carries checked under
// "checked". This is the shape toggle controls produce.
func CheckedEvent(checked bool) Event {
	return Event{Target: Target{"checked": checked}}
}
