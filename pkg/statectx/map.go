package statectx

import (
	"sort"
	"strings"

	"github.com/vango-dev/statectx/internal/errors"
)

// State is an open-ended map state. Treat it as immutable: updaters build
// a new map rather than writing to the one they are given.
type State map[string]any

// Actions is a named action set.
type Actions map[string]func()

// Invoke runs the named action.
func (a Actions) Invoke(name string) error {
	fn, ok := a[name]
	if !ok || fn == nil {
		return errors.New(errors.CodeUnknownAction).
			WithDetail("no action named %q", name).
			WithSuggestion("Known actions: " + joinNames(a.Names()))
	}
	fn()
	return nil
}

// Names returns the action names in sorted order.
func (a Actions) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}

// Merge returns an updater producing a copy of the prior state with patch
// applied on top.
func Merge(patch State) func(State) State {
	return func(prev State) State {
		next := make(State, len(prev)+len(patch))
		for k, v := range prev {
			next[k] = v
		}
		for k, v := range patch {
			next[k] = v
		}
		return next
	}
}

// Value returns s[key] as T, or the zero T when the key is missing or
// holds another type.
func Value[T any](s State, key string) T {
	v, _ := s[key].(T)
	return v
}
