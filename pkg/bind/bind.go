package bind

import "github.com/statekit-dev/statekit/pkg/statekit"

// DefaultField is the data key used when no field name is given.
const DefaultField = "value"

// Binding describes one bound input property: the current value under a
// single data key, and the change handler that keeps it in sync.
//
// OnChange reads the target property named Field from the event and
// forwards it to the setter. It performs no validation or coercion; a
// mismatched property type or a failing setter propagates to the caller.
type Binding[T any] struct {
	// Field is the data key and the target property OnChange reads.
	Field string

	// Value is the current value of the bound property.
	Value T

	// OnChange applies a change notification to the underlying state.
	OnChange func(Event)
}

// Props returns the binding as a property map: exactly one data key holding
// the value, plus "onChange" holding the handler. This is the shape element
// constructors consume.
func (b Binding[T]) Props() map[string]any {
	field := b.Field
	if field == "" {
		field = DefaultField
	}
	return map[string]any{
		field:      b.Value,
		"onChange": b.OnChange,
	}
}

// Value binds a (value, setter) pair under the default "value" key.
func Value[T any](value T, set func(T)) Binding[T] {
	return Field(DefaultField, value, set)
}

// Field binds a (value, setter) pair under the named key. The handler reads
// the target property of the same name, which supports non-text inputs such
// as binding a toggle to "checked".
func Field[T any](name string, value T, set func(T)) Binding[T] {
	return Binding[T]{
		Field: name,
		Value: value,
		OnChange: func(ev Event) {
			set(ev.Target.Get(name).(T))
		},
	}
}

// Signal binds a signal under the default "value" key. The signal is the
// (value, setter) pair handed out by the reactive primitive.
func Signal[T any](sig *statekit.Signal[T]) Binding[T] {
	return SignalField(DefaultField, sig)
}

// SignalField binds a signal under the named key.
func SignalField[T any](name string, sig *statekit.Signal[T]) Binding[T] {
	return Field(name, sig.Peek(), sig.Set)
}

// ValueFunc is Value plus a callback invoked with the new value after the
// setter, in the same handler invocation.
func ValueFunc[T any](value T, set func(T), then func(T)) Binding[T] {
	return FieldFunc(DefaultField, value, set, then)
}

// FieldFunc is Field plus a callback invoked with the new value after the
// setter, in the same handler invocation.
func FieldFunc[T any](name string, value T, set func(T), then func(T)) Binding[T] {
	return Binding[T]{
		Field: name,
		Value: value,
		OnChange: func(ev Event) {
			v := ev.Target.Get(name).(T)
			set(v)
			then(v)
		},
	}
}

// SignalFunc is Signal plus a post-set callback.
func SignalFunc[T any](sig *statekit.Signal[T], then func(T)) Binding[T] {
	return FieldFunc(DefaultField, sig.Peek(), sig.Set, then)
}

// SignalFieldFunc is SignalField plus a post-set callback.
func SignalFieldFunc[T any](name string, sig *statekit.Signal[T], then func(T)) Binding[T] {
	return FieldFunc(name, sig.Peek(), sig.Set, then)
}
