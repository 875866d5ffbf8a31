// Package states provides a container that addresses many independent state
// slots by field name.
//
// UseStates builds one reactive slot per key of the initial map. Fields are
// fixed at construction:
//
//	form := states.UseStates(map[string]any{
//	    "name":  "",
//	    "agree": false,
//	})
//
//	form.Get("name")        // current value
//	form.Set("name", "Ada") // write; synchronous reads observe it immediately
//	form.Slot("name")       // the raw (value, setter) pair for interop
//
// Each slot keeps a last-known-value cache alongside its setter, so a read
// right after a write sees the new value even before the surrounding
// reactive system has completed its update cycle. The setter returned by
// Slot is the reactive primitive's own and bypasses that cache; only Set
// maintains it.
package states
