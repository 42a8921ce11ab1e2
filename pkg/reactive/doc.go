// Package reactive provides the reactive core that statectx contexts run on.
//
// Reading a Signal or Memo while a listener is active subscribes that
// listener. Writing a Signal marks every subscriber dirty. Components,
// memos, and effects are all listeners.
//
// # Ownership
//
// Every mounted component gets an Owner. Owners form a tree that mirrors
// the component tree and carry three things:
//
//   - hook slots, so primitives created during render keep their identity
//     across re-renders
//   - context values, resolved by walking up the tree
//   - cleanups and effects, run or disposed when the owner is disposed
//
// # Contexts
//
//	var Theme = reactive.CreateContext("light")
//
//	// inside a provider render
//	Theme.Provide("dark")
//
//	// inside any descendant render
//	theme := Theme.Use()
//
// # Thread Safety
//
// Primitives are safe for concurrent use. The tracking context (current
// owner, listener, batch depth) is per goroutine, so work started on a new
// goroutine must re-enter through WithOwner or, better, through Ctx.Dispatch.
package reactive
