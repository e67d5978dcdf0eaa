package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/batyok32/shipyuusell-sub001/internal/logging"
)

// ErrSuperseded is returned by a thunk whose result was dropped because a
// newer request for the same operation had started.
var ErrSuperseded = errors.New("superseded by a newer request")

// Store is the process-wide state container. Create one at startup and pass
// it to whoever needs it. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	state   State
	gens    map[Op]uint64
	cancels map[Op]context.CancelFunc

	subMu  sync.Mutex
	subs   map[int]func(State)
	nextID int

	log logging.Logger
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(initial State, opts ...Option) *Store {
	s := &Store{
		state:   initial.clone(),
		gens:    map[Op]uint64{},
		cancels: map[Op]context.CancelFunc{},
		subs:    map[int]func(State){},
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Dispatch applies a. Lifecycle actions carrying a stale Seq are ignored.
func (s *Store) Dispatch(a Action) {
	s.apply(a)
}

// Subscribe registers fn to be called with a snapshot after every applied
// action. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) apply(a Action) bool {
	s.mu.Lock()
	if op, seq, ok := lifecycle(a); ok && seq != 0 && s.gens[op] != seq {
		s.mu.Unlock()
		s.log.Debug(context.Background(), "dropping stale settlement",
			"op", string(op), "seq", seq, "current", s.gens[op], "action", fmt.Sprintf("%T", a))
		return false
	}
	changed := reduce(&s.state, a)
	var snapshot State
	if changed {
		snapshot = s.state.clone()
	}
	s.mu.Unlock()

	if changed {
		s.notify(snapshot)
	}
	return changed
}

func (s *Store) notify(st State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

func lifecycle(a Action) (Op, uint64, bool) {
	switch a := a.(type) {
	case Pending:
		return a.Op, a.Seq, true
	case Fulfilled:
		return a.Op, a.Seq, true
	case Rejected:
		return a.Op, a.Seq, true
	}
	return "", 0, false
}

// begin starts a new generation of op. The previous in-flight request for
// op, if any, is canceled. The returned context is canceled by done.
func (s *Store) begin(ctx context.Context, op Op) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.gens[op]++
	seq := s.gens[op]
	prev := s.cancels[op]
	s.cancels[op] = cancel
	s.mu.Unlock()

	if prev != nil {
		s.log.Debug(ctx, "canceling superseded request", "op", string(op), "seq", seq-1)
		prev()
	}

	done := func() {
		s.mu.Lock()
		if s.gens[op] == seq {
			delete(s.cancels, op)
		}
		s.mu.Unlock()
		cancel()
	}
	return ctx, seq, done
}

// current reports whether seq is still the latest generation of op.
func (s *Store) current(op Op, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[op] == seq
}
