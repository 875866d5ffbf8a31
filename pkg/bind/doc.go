// Package bind reduces the boilerplate of wiring reactive state to form
// input elements.
//
// A Binding pairs one input property with a setter: it carries the current
// value under a single data key (default "value") and an OnChange handler
// that reads that same property from the change event's target and forwards
// it to the setter.
//
//	name, setName := statekit.UseState("")
//	b := bind.Value(name, setName)
//	// b.Value == "", b.OnChange(ev) calls setName with ev.Target.Get("value")
//
// Non-text inputs bind to a different target property:
//
//	agreed, setAgreed := statekit.UseState(false)
//	b := bind.Field("checked", agreed, setAgreed)
//
// The *Func variants additionally invoke a callback with the new value,
// strictly after the setter and in the same handler invocation:
//
//	b := bind.ValueFunc(query, setQuery, func(q string) { search(q) })
//
// BindState and BindStateEffect are the dynamic compatibility surface for
// callers migrating from untyped (value, setter) pairs; the typed entry
// points above are preferred.
package bind
