package statekit

// Listener is anything that can be notified when a signal it read changes.
// Host frameworks implement this for components, effects, or render roots.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during subscription and batch processing.
	ID() uint64
}

// Cleanup is a function that releases resources held by a subscription.
type Cleanup func()
