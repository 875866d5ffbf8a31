// Package statekit provides the reactive state primitive the binding helpers
// are built on.
//
// Signal[T] is a reactive value container:
//
//	count := statekit.NewSignal(0)
//	value := count.Get()  // Read (subscribes current listener)
//	count.Set(5)          // Write (notifies subscribers)
//	count.Update(func(n int) int { return n + 1 })
//
// Reading a signal inside a tracked context (WithListener) subscribes the
// current listener, which is notified via MarkDirty when the value changes.
// The host render loop decides what MarkDirty means; this package only
// schedules the notifications.
//
// # Batching
//
// Multiple signal updates can be batched to trigger a single notification:
//
//	statekit.Batch(func() {
//	    first.Set("John")
//	    last.Set("Doe")
//	})  // Single notification after all updates
//
// UseState returns the raw (value, setter) pair shape consumed by the bind
// and states packages:
//
//	name, setName := statekit.UseState("")
package statekit
