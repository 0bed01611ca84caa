package configsync

import (
	"sync"

	"go.uber.org/atomic"
)

// Readiness signals that a config's sync attempt has concluded, success or
// failure. It is set at most once per process run and never reset.
type Readiness struct {
	ready atomic.Bool
	once  sync.Once
	done  chan struct{}
}

func NewReadiness() *Readiness {
	return &Readiness{done: make(chan struct{})}
}

func (r *Readiness) Set() {
	r.once.Do(func() {
		r.ready.Store(true)
		close(r.done)
	})
}

func (r *Readiness) Ready() bool {
	return r.ready.Load()
}

// Done returns a channel closed when readiness is set.
func (r *Readiness) Done() <-chan struct{} {
	return r.done
}
