package dashboard

import "sync"

// FetchState tracks an asynchronous load for one piece of dashboard data.
// Every Begin invalidates prior in-flight requests via a generation token, so
// a stale response can never overwrite a newer one regardless of arrival
// order. Error and data are mutually exclusive outcomes of a completion.
type FetchState[T any] struct {
	mu         sync.Mutex
	generation uint64
	loading    bool
	data       T
	hasData    bool
	err        error
}

// FetchSnapshot is a point-in-time copy of the state for rendering.
type FetchSnapshot[T any] struct {
	Loading bool
	Data    T
	HasData bool
	Err     error
}

// NewFetchState returns an idle state.
func NewFetchState[T any]() *FetchState[T] {
	return &FetchState[T]{}
}

// Begin marks the state loading and returns the token the eventual completion
// must present. Any outstanding token from an earlier Begin is invalidated.
func (s *FetchState[T]) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.loading = true
	return s.generation
}

// Complete records a successful load. Stale tokens are discarded and the
// return value reports whether the result was accepted.
func (s *FetchState[T]) Complete(token uint64, data T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.generation {
		return false
	}
	s.loading = false
	s.data = data
	s.hasData = true
	s.err = nil
	return true
}

// Fail records a failed load. Stale tokens are discarded. Previously loaded
// data is kept so the UI can show it alongside the error.
func (s *FetchState[T]) Fail(token uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.generation {
		return false
	}
	s.loading = false
	s.err = err
	return true
}

// Snapshot returns a copy of the current state.
func (s *FetchState[T]) Snapshot() FetchSnapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FetchSnapshot[T]{
		Loading: s.loading,
		Data:    s.data,
		HasData: s.hasData,
		Err:     s.err,
	}
}

// Reset returns the state to idle and invalidates outstanding tokens.
func (s *FetchState[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.loading = false
	var zero T
	s.data = zero
	s.hasData = false
	s.err = nil
}
