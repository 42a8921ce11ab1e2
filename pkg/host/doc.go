// Package host mounts a component tree and drives its update loop.
//
// A Root owns one tree of ComponentInstances. Each instance pairs a
// component with a reactive Owner and listens to whatever its render
// reads; a change marks it dirty. Work submitted with Dispatch, from any
// goroutine, is applied by Flush, which then re-renders dirty instances
// parents first and runs the effects the renders scheduled.
//
//	root, err := host.Mount(vdom.Func(App), nil)
//	if err != nil {
//	    return err
//	}
//	defer root.Close()
//	go root.Run(ctx)
//
// The host keeps the resolved tree for HTML rendering. It does not diff
// and speaks no client protocol.
package host
