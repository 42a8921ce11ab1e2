package reactive

// Listener is anything that can be notified when a dependency changes.
// Component instances, memos, and effects implement it.
type Listener interface {
	// MarkDirty notifies the listener that a dependency changed.
	MarkDirty()

	// ID identifies the listener for subscription and batch deduplication.
	ID() uint64
}

// Cleanup is returned by effects and runs before the next run or on dispose.
type Cleanup func()
