package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/statectx/internal/errors"
	"github.com/vango-dev/statectx/pkg/host"
	"github.com/vango-dev/statectx/pkg/statectx"
	"github.com/vango-dev/statectx/pkg/vdom"
)

type counterState struct {
	Count int
}

type counterActions struct {
	Increment func()
}

var counterContext = statectx.Create(statectx.Schema[counterState, counterActions]{
	Name:    "counter",
	Initial: counterState{},
	Actions: func(s counterState, set statectx.Setter[counterState]) counterActions {
		return counterActions{
			Increment: func() { set.Set(counterState{Count: s.Count + 1}) },
		}
	},
})

func counterCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Render a counter tree and print each commit",
		Long: `Mount a provider with a counter display and a button, press the
button the given number of times, and print the rendered HTML after each
commit.

Examples:
  statectx counter
  statectx counter --steps=5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCounter(cmd.OutOrStdout(), steps)
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 3, "Number of increments")

	return cmd
}

func runCounter(w io.Writer, steps int) error {
	if steps < 0 {
		return errors.New(errors.CodeCommandFailed).WithDetail("steps must not be negative, got %d", steps)
	}

	// The button component keeps the latest actions for the driver below.
	var press func()
	button := func() *vdom.VNode {
		snap := counterContext.Use()
		press = snap.Actions.Increment
		return vdom.Button(vdom.Type("button"), "+")
	}

	root, err := host.Mount(vdom.Func(func() *vdom.VNode {
		return counterContext.Provider(statectx.Render(func(s counterState) *vdom.VNode {
			return vdom.Div(vdom.Class("counter"),
				vdom.Span(vdom.Textf("Count: %d", s.Count)),
				vdom.Func(button),
			)
		}))
	}), nil)
	if err != nil {
		return err
	}
	defer root.Close()

	unsubscribe := root.Subscribe(func(f host.Frame) {
		fmt.Fprintf(w, "commit %d: %s\n", f.Seq, f.HTML)
	})
	defer unsubscribe()

	fmt.Fprintf(w, "initial: %s\n", root.HTML())
	for i := 0; i < steps; i++ {
		press()
		if err := root.Flush(); err != nil {
			return err
		}
	}
	return nil
}
