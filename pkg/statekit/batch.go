package statekit

// Batch groups multiple signal updates into a single notification phase.
// All updates within fn are collected, deduplicated by listener ID, and the
// affected listeners are notified once when the batch completes.
//
// Batches can be nested. Notifications only fire when the outermost batch
// completes.
//
//	statekit.Batch(func() {
//	    firstName.Set("John")
//	    lastName.Set("Doe")
//	})
//	// Listeners notified once with both changes applied
func Batch(fn func()) {
	incrementBatchDepth()

	defer func() {
		if decrementBatchDepth() {
			processPendingUpdates()
		}
	}()

	fn()
}

// Tx runs fn as a transaction, grouping all signal updates.
// Alias for Batch that reads better at call sites that update several
// related slots.
func Tx(fn func()) {
	Batch(fn)
}

// processPendingUpdates deduplicates and notifies all pending listeners.
func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	for _, listener := range updates {
		id := listener.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		listener.MarkDirty()
	}
}
