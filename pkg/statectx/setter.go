package statectx

import (
	"sync/atomic"

	"github.com/vango-dev/statectx/pkg/reactive"
)

// setter commits to one provider. With a host it queues each write on the
// host loop; without one it commits in place.
type setter[S, A any] struct {
	st     *providerState[S, A]
	host   reactive.Ctx
	closed atomic.Bool
}

var _ Setter[int] = (*setter[int, struct{}])(nil)

func (s *setter[S, A]) Set(next S) {
	s.Update(func(S) S { return next })
}

func (s *setter[S, A]) Update(fn func(S) S) {
	if s.closed.Load() {
		s.st.dropped()
		return
	}
	if s.host != nil {
		s.host.Dispatch(func() { s.st.commit(fn) })
		return
	}
	s.st.commit(fn)
}
