package statectx

// Setter commits new state to the provider that built it.
type Setter[S any] interface {
	// Set replaces the state.
	Set(next S)

	// Update replaces the state with fn applied to the state current at
	// commit time.
	Update(fn func(S) S)
}

// Schema describes a state container.
type Schema[S, A any] struct {
	// Name labels logs and metrics. It plays no part in identity.
	Name string

	// Initial seeds each provider on its first render.
	Initial S

	// Actions derives the action set from a state and the setter that
	// commits to the same provider. It is called once per commit and must
	// not have side effects of its own.
	Actions func(state S, set Setter[S]) A

	// Equal, when set, skips commits whose next state equals the current
	// one. When nil every commit counts as a change.
	Equal func(a, b S) bool
}

// Snapshot is the value published by a provider.
type Snapshot[S, A any] struct {
	State   S
	Actions A

	// Revision is 0 for the initial state and increases by one per
	// applied commit.
	Revision uint64
}

// noopSetter backs the default snapshot.
type noopSetter[S any] struct{}

func (noopSetter[S]) Set(S)             {}
func (noopSetter[S]) Update(func(S) S) {}
