package statekit

// UseState creates a signal and returns its current value together with a
// setter. This is the raw (value, setter) pair shape the bind package
// consumes.
//
//	name, setName := statekit.UseState("")
//	b := bind.Value(name, setName)
func UseState[T any](initial T) (T, func(T)) {
	sig := NewSignal(initial)
	return sig.Get(), sig.Set
}

// Pair is an untyped (current value, setter) pair. It is the dynamic
// counterpart of what UseState returns, used where field values of mixed
// types travel together (the states container and the compatibility
// binders).
type Pair struct {
	Value any
	Set   func(any)
}

// PairOf wraps a value and setter into a Pair.
func PairOf(value any, set func(any)) Pair {
	return Pair{Value: value, Set: set}
}

// PairFromSignal returns the signal's current value and setter as a Pair.
// The value is read with Peek; handing out the pair does not subscribe.
func PairFromSignal(sig *Signal[any]) Pair {
	return Pair{Value: sig.Peek(), Set: sig.Set}
}
