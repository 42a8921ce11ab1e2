// Package statectx builds state containers shared through the component
// tree.
//
// A Schema pairs an initial state with an action factory. Create turns it
// into a Context, which offers a Provider component that owns the live
// state and an accessor, Use, that descendants call to read the state and
// the actions derived from it:
//
//	var Counter = statectx.Create(statectx.Schema[int, CounterActions]{
//	    Name:    "counter",
//	    Initial: 0,
//	    Actions: func(n int, set statectx.Setter[int]) CounterActions {
//	        return CounterActions{
//	            Increment: func() { set.Set(n + 1) },
//	        }
//	    },
//	})
//
//	func App() *vdom.VNode {
//	    return Counter.Provider(statectx.Static(vdom.Func(Display)))
//	}
//
//	func Display() *vdom.VNode {
//	    snap := Counter.Use()
//	    return vdom.Button(vdom.Textf("%d", snap.State))
//	}
//
// # Snapshots
//
// Every commit produces a new *Snapshot whose Actions were computed from
// exactly that State. Between commits Use returns the same pointer, so
// comparing snapshots by identity is a valid change check. Revision offers
// the same check as a number.
//
// # Writes
//
// Setters commit through the host's Dispatch when the provider was
// rendered by a host, and synchronously otherwise. Writes to a provider
// that has been unmounted are dropped and reported to the Observer.
//
// # Without a provider
//
// Use returns Default, a snapshot of the initial state whose actions were
// built with a setter that ignores every write.
package statectx
