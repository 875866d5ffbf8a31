package states

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/statekit-dev/statekit/pkg/bind"
	"github.com/statekit-dev/statekit/pkg/statekit"
)

// Slot is one field's raw (current value, setter) pair, equivalent to what
// the reactive primitive itself hands out. Code expecting that shape can
// consume it directly.
type Slot struct {
	Value any
	Set   func(any)
}

// slot is the internal backing state for one field.
type slot struct {
	// sig is the signal created at construction. Kept for dependency
	// tracking on reads; SetSlot may replace the live pair without
	// touching it.
	sig *statekit.Signal[any]

	// cache is the last value written through Set or SetSlot. Reads
	// return it so a write is observable synchronously.
	cache any

	// set is the current setter. Initially the signal's own Set.
	set func(any)
}

// States maps fixed field names to independent reactive state slots.
// The field set never changes after UseStates returns.
type States struct {
	mu    sync.RWMutex
	slots map[string]*slot
}

// UseStates creates a container with one state slot per key of initial,
// seeded with the given values.
func UseStates(initial map[string]any) *States {
	s := &States{slots: make(map[string]*slot, len(initial))}
	for name, v := range initial {
		sig := statekit.NewSignal(v)
		s.slots[name] = &slot{sig: sig, cache: v, set: sig.Set}
	}
	return s
}

// slotFor returns the backing slot for field.
// An undeclared field is a caller bug and faults; it is not translated.
func (s *States) slotFor(field string) *slot {
	s.mu.RLock()
	sl, ok := s.slots[field]
	s.mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("states: unknown field %q", field))
	}
	return sl
}

// Get returns the current cached value of field and subscribes the current
// listener to the slot's signal.
func (s *States) Get(field string) any {
	sl := s.slotFor(field)

	s.mu.RLock()
	defer s.mu.RUnlock()
	_ = sl.sig.Get()
	return sl.cache
}

// Set writes v to field: the cache is updated first so subsequent
// synchronous reads observe v, then the slot's setter runs.
func (s *States) Set(field string, v any) {
	sl := s.slotFor(field)

	s.mu.Lock()
	sl.cache = v
	set := sl.set
	s.mu.Unlock()

	set(v)
}

// Slot returns the raw (current value, setter) pair for field. The setter
// is the slot's live one and writes through it bypass the cache.
func (s *States) Slot(field string) Slot {
	sl := s.slotFor(field)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return Slot{Value: sl.cache, Set: sl.set}
}

// SetSlot replaces field's entire backing pair. pair must be a Slot, a
// statekit.Pair, or an array-like value whose first two elements are the
// new value and setter; anything else is rejected by returning false with
// the slot unchanged. Length and shape are the only things checked — a
// second element that is not a setter faults when first invoked.
func (s *States) SetSlot(field string, pair any) bool {
	sl := s.slotFor(field)

	value, set, ok := splitPair(pair)
	if !ok {
		return false
	}

	s.mu.Lock()
	sl.cache = value
	sl.set = set
	s.mu.Unlock()
	return true
}

// Bind returns a binding for field under the default "value" key, wired to
// Set so the cache stays consistent.
func (s *States) Bind(field string) bind.Binding[any] {
	return bind.Value[any](s.Get(field), func(v any) {
		s.Set(field, v)
	})
}

// BindField is Bind with an explicit target property, e.g. "checked".
func (s *States) BindField(field, prop string) bind.Binding[any] {
	return bind.Field[any](prop, s.Get(field), func(v any) {
		s.Set(field, v)
	})
}

// Fields returns the declared field names in sorted order.
func (s *States) Fields() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.slots))
	for name := range s.slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether field was declared at construction.
func (s *States) Has(field string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.slots[field]
	return ok
}

// IsStates reports that this value is a live state container.
// Always true; kept for callers that feature-detect the container.
func (s *States) IsStates() bool {
	return true
}

// splitPair extracts (value, setter) from the accepted pair shapes.
func splitPair(pair any) (any, func(any), bool) {
	switch p := pair.(type) {
	case Slot:
		return p.Value, p.Set, true
	case statekit.Pair:
		return p.Value, p.Set, true
	}

	rv := reflect.ValueOf(pair)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, nil, false
	}
	if rv.Len() < 2 {
		return nil, nil, false
	}

	value := rv.Index(0).Interface()
	// Not validated further; a non-setter faults at first call.
	set, _ := rv.Index(1).Interface().(func(any))
	return value, set, true
}
