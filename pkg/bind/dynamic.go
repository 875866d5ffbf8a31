package bind

import "github.com/statekit-dev/statekit/pkg/statekit"

// BindState normalizes the untyped binder call shapes into a Binding.
// Recognized shapes, in priority order:
//
//	BindState(value, setter)
//	BindState(value, setter, fieldName)
//	BindState(pair)
//	BindState(pair, fieldName)
//
// where setter is a func(any) and pair is a statekit.Pair or a []any whose
// first two elements are value and setter. Unrecognized shapes yield a zero
// Binding (nil Value, nil OnChange) rather than panicking; prefer the typed
// entry points, which make malformed calls unrepresentable.
func BindState(args ...any) Binding[any] {
	switch len(args) {
	case 1:
		if value, set, ok := asPair(args[0]); ok {
			return dynamic(DefaultField, value, set)
		}
	case 2:
		if set, ok := args[1].(func(any)); ok {
			return dynamic(DefaultField, args[0], set)
		}
		if name, ok := args[1].(string); ok {
			if value, set, ok := asPair(args[0]); ok {
				return dynamic(name, value, set)
			}
		}
	case 3:
		set, setOK := args[1].(func(any))
		name, nameOK := args[2].(string)
		if setOK && nameOK {
			return dynamic(name, args[0], set)
		}
	}
	return Binding[any]{}
}

// BindStateEffect is BindState with a trailing callback that receives the
// newly extracted value after the setter, in the same handler invocation.
// Recognized shapes, in priority order:
//
//	BindStateEffect(value, setter, callback)
//	BindStateEffect(value, setter, fieldName, callback)
//	BindStateEffect(pair, callback)
//	BindStateEffect(pair, fieldName, callback)
//
// Unrecognized shapes yield a zero Binding rather than panicking. Callers
// relying on a malformed call silently receive a non-functional descriptor;
// this matches the historical behavior of the untyped surface.
func BindStateEffect(args ...any) Binding[any] {
	switch len(args) {
	case 2:
		then, thenOK := args[1].(func(any))
		if thenOK {
			if value, set, ok := asPair(args[0]); ok {
				return dynamicFunc(DefaultField, value, set, then)
			}
		}
	case 3:
		if set, ok := args[1].(func(any)); ok {
			if then, ok := args[2].(func(any)); ok {
				return dynamicFunc(DefaultField, args[0], set, then)
			}
		}
		name, nameOK := args[1].(string)
		then, thenOK := args[2].(func(any))
		if nameOK && thenOK {
			if value, set, ok := asPair(args[0]); ok {
				return dynamicFunc(name, value, set, then)
			}
		}
	case 4:
		set, setOK := args[1].(func(any))
		name, nameOK := args[2].(string)
		then, thenOK := args[3].(func(any))
		if setOK && nameOK && thenOK {
			return dynamicFunc(name, args[0], set, then)
		}
	}
	return Binding[any]{}
}

// dynamic builds the untyped binding for one field.
func dynamic(name string, value any, set func(any)) Binding[any] {
	return Binding[any]{
		Field: name,
		Value: value,
		OnChange: func(ev Event) {
			set(ev.Target.Get(name))
		},
	}
}

// dynamicFunc builds the untyped effectful binding: setter first, then the
// callback, both with the extracted value.
func dynamicFunc(name string, value any, set func(any), then func(any)) Binding[any] {
	return Binding[any]{
		Field: name,
		Value: value,
		OnChange: func(ev Event) {
			v := ev.Target.Get(name)
			set(v)
			then(v)
		},
	}
}

// asPair extracts a (value, setter) pair from a statekit.Pair or a []any
// whose first two elements are value and func(any).
func asPair(v any) (any, func(any), bool) {
	switch p := v.(type) {
	case statekit.Pair:
		return p.Value, p.Set, true
	case []any:
		if len(p) < 2 {
			return nil, nil, false
		}
		set, ok := p[1].(func(any))
		if !ok {
			return nil, nil, false
		}
		return p[0], set, true
	}
	return nil, nil, false
}
