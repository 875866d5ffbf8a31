package statekit

import (
	"sync"
	"testing"
)

// testListener counts MarkDirty notifications.
type testListener struct {
	id    uint64
	mu    sync.Mutex
	dirty int
}

func newTestListener() *testListener {
	return &testListener{id: nextID()}
}

func (l *testListener) MarkDirty() {
	l.mu.Lock()
	l.dirty++
	l.mu.Unlock()
}

func (l *testListener) ID() uint64 { return l.id }

func (l *testListener) getDirtyCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirty
}

func TestSignalBasic(t *testing.T) {
	count := NewSignal(0)

	if count.Get() != 0 {
		t.Errorf("expected initial value 0, got %d", count.Get())
	}

	count.Set(5)
	if count.Get() != 5 {
		t.Errorf("expected value 5, got %d", count.Get())
	}

	count.Update(func(n int) int { return n * 2 })
	if count.Get() != 10 {
		t.Errorf("expected value 10, got %d", count.Get())
	}
}

func TestSignalPeekDoesNotSubscribe(t *testing.T) {
	count := NewSignal(42)
	listener := newTestListener()

	WithListener(listener, func() {
		if count.Peek() != 42 {
			t.Errorf("expected 42, got %d", count.Peek())
		}
	})

	count.Set(100)
	if listener.getDirtyCount() != 0 {
		t.Errorf("Peek should not subscribe, got %d notifications", listener.getDirtyCount())
	}
}

func TestSignalSubscription(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = count.Get()
	})

	count.Set(1)
	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", listener.getDirtyCount())
	}

	// Same value should not notify.
	count.Set(1)
	if listener.getDirtyCount() != 1 {
		t.Errorf("same value should not notify, got %d", listener.getDirtyCount())
	}

	count.Set(2)
	if listener.getDirtyCount() != 2 {
		t.Errorf("expected 2 notifications, got %d", listener.getDirtyCount())
	}
}

func TestSignalNoTrackingOutsideContext(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	_ = count.Get()

	WithListener(listener, func() {
		// No read here.
	})

	count.Set(1)
	if listener.getDirtyCount() != 0 {
		t.Errorf("expected 0 notifications when not tracking, got %d", listener.getDirtyCount())
	}
}

func TestSignalDeduplicateSubscription(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = count.Get()
		_ = count.Get()
		_ = count.Get()
	})

	count.Set(1)
	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification (deduplicated), got %d", listener.getDirtyCount())
	}
}

func TestSignalUnsubscribe(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = count.Get()
	})

	count.Unsubscribe(listener)
	count.Set(1)
	if listener.getDirtyCount() != 0 {
		t.Errorf("expected 0 notifications after unsubscribe, got %d", listener.getDirtyCount())
	}
}

func TestSignalCustomEquals(t *testing.T) {
	type user struct {
		ID   int
		Name string
	}

	// Only compare IDs.
	userSignal := NewSignal(user{ID: 1, Name: "Alice"}).WithEquals(func(a, b user) bool {
		return a.ID == b.ID
	})
	listener := newTestListener()

	WithListener(listener, func() {
		_ = userSignal.Get()
	})

	// Same ID, different name: no notification.
	userSignal.Set(user{ID: 1, Name: "Bob"})
	if listener.getDirtyCount() != 0 {
		t.Errorf("expected 0 notifications for equal IDs, got %d", listener.getDirtyCount())
	}

	userSignal.Set(user{ID: 2, Name: "Bob"})
	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification for new ID, got %d", listener.getDirtyCount())
	}
}

func TestUntracked(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		Untracked(func() {
			_ = count.Get()
		})
	})

	count.Set(1)
	if listener.getDirtyCount() != 0 {
		t.Errorf("Untracked read should not subscribe, got %d notifications", listener.getDirtyCount())
	}
}
