package internal

import "sync"

// StateKind identifies which of the four view conditions is active
type StateKind int

const (
	StateIdle StateKind = iota
	StateLoading
	StateErrored
	StateResolved
)

func (k StateKind) String() string {
	switch k {
	case StateLoading:
		return "loading"
	case StateErrored:
		return "errored"
	case StateResolved:
		return "resolved"
	default:
		return "idle"
	}
}

// ViewState is a snapshot of a Store. Message is only meaningful when Kind
// is StateErrored, Value only when Kind is StateResolved.
type ViewState[T any] struct {
	Kind    StateKind
	Message string
	Value   T
}

// Store holds the view state of a single controller. Updates are synchronous:
// observers run before the mutator returns.
type Store[T any] struct {
	mu        sync.Mutex
	state     ViewState[T]
	observers map[int]func(ViewState[T])
	nextID    int
}

// NewStore creates an idle store
func NewStore[T any]() *Store[T] {
	return &Store[T]{observers: make(map[int]func(ViewState[T]))}
}

// State returns the current snapshot
func (s *Store[T]) State() ViewState[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin enters Loading and drops any previous error or result
func (s *Store[T]) Begin() {
	s.set(ViewState[T]{Kind: StateLoading})
}

// TryBegin enters Loading unless the store is already Loading. It reports
// whether the transition happened.
func (s *Store[T]) TryBegin() bool {
	return s.transition(ViewState[T]{Kind: StateLoading}, func(cur ViewState[T]) bool {
		return cur.Kind != StateLoading
	})
}

// Succeed enters Resolved(value)
func (s *Store[T]) Succeed(value T) {
	s.set(ViewState[T]{Kind: StateResolved, Value: value})
}

// Fail enters Errored(message)
func (s *Store[T]) Fail(message string) {
	s.set(ViewState[T]{Kind: StateErrored, Message: message})
}

// Reset returns to Idle
func (s *Store[T]) Reset() {
	s.set(ViewState[T]{})
}

// Subscribe registers fn for every future state change and returns a func
// that removes it
func (s *Store[T]) Subscribe(fn func(ViewState[T])) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.observers == nil {
		s.observers = make(map[int]func(ViewState[T]))
	}
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

func (s *Store[T]) set(next ViewState[T]) {
	s.transition(next, nil)
}

// transition applies next when allow (if any) accepts the current state,
// then notifies observers outside the lock so they may read State().
func (s *Store[T]) transition(next ViewState[T], allow func(ViewState[T]) bool) bool {
	s.mu.Lock()
	if allow != nil && !allow(s.state) {
		s.mu.Unlock()
		return false
	}
	s.state = next
	observers := make([]func(ViewState[T]), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(next)
	}
	return true
}
