package reactive

// Batch defers change notifications until fn returns. Listeners notified
// more than once inside the batch are marked dirty once. Batches nest;
// only the outermost one flushes.
//
//	Batch(func() {
//	    first.Set("Ada")
//	    last.Set("Lovelace")
//	})
func Batch(fn func()) {
	st := enter()
	st.batchDepth++
	defer func() {
		st.batchDepth--
		if st.batchDepth == 0 {
			flushPending(st)
		}
		leave(st)
	}()
	fn()
}

func flushPending(st *trackingState) {
	// Marking a listener dirty can queue more work if it batches itself,
	// so drain until empty.
	for len(st.pending) > 0 {
		pending := st.pending
		st.pending = nil

		seen := make(map[uint64]struct{}, len(pending))
		for _, l := range pending {
			id := l.ID()
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			l.MarkDirty()
		}
	}
}

// Untracked runs fn without subscribing the current listener to anything
// fn reads.
func Untracked(fn func()) {
	WithListener(nil, fn)
}
