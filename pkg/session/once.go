package session

import (
	"errors"
	"sync"
)

// ErrOncePanicked is what callers of Do see after the routine panicked.
var ErrOncePanicked = errors.New("session: initialization panicked")

type OnceState int

const (
	OnceUnknown OnceState = iota
	OnceRunning
	OnceDone
)

func (s OnceState) String() string {
	switch s {
	case OnceRunning:
		return "running"
	case OnceDone:
		return "done"
	default:
		return "unknown"
	}
}

// Once runs a routine at most once. Unlike sync.Once it exposes where the
// routine is and hands every caller the routine's error.
type Once struct {
	mu    sync.Mutex
	state OnceState
	done  chan struct{}
	err   error
}

// Do runs fn on the first call. Calls made while fn runs wait for it; later
// calls return immediately. All of them get fn's error, or ErrOncePanicked.
func (o *Once) Do(fn func() error) error {
	o.mu.Lock()
	switch o.state {
	case OnceDone:
		err := o.err
		o.mu.Unlock()
		return err
	case OnceRunning:
		done := o.done
		o.mu.Unlock()
		<-done
		o.mu.Lock()
		defer o.mu.Unlock()
		return o.err
	}
	o.state = OnceRunning
	o.done = make(chan struct{})
	o.mu.Unlock()

	// Waiters are released even if fn panics; the panic still propagates.
	err := ErrOncePanicked
	defer func() {
		o.mu.Lock()
		o.err = err
		o.state = OnceDone
		close(o.done)
		o.mu.Unlock()
	}()
	err = fn()
	return err
}

func (o *Once) State() OnceState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}
