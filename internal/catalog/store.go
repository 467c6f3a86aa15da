// Package catalog owns the fetch lifecycle for the appetizer catalog and
// exposes it as observable state.
package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/xenking/appetizers/internal/domain/appetizer"
)

// Phase is the position in the fetch lifecycle. Exactly one phase holds at
// any time.
type Phase uint8

const (
	// Idle means no fetch has been requested yet.
	Idle Phase = iota
	// Loading means a fetch is in flight.
	Loading
	// Loaded means the last fetch succeeded and State.Items holds the catalog.
	Loaded
	// Failed means the last fetch failed and State.Err holds the cause.
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// State is a snapshot of the store. Items is set only in Loaded, Err only in
// Failed. Snapshots are value-replaced atomically, never edited in place;
// the Items slice must not be mutated by consumers.
type State struct {
	Phase Phase
	Items []appetizer.Appetizer
	Err   error
}

// Fetcher retrieves the catalog from the backend.
type Fetcher interface {
	FetchCatalog(ctx context.Context) ([]appetizer.Appetizer, error)
}

// subscriberBuffer bounds each subscription channel. When a subscriber lags
// past the buffer, the oldest pending state is dropped so the latest state
// stays deliverable and publishers never block.
const subscriberBuffer = 16

// Subscription delivers every state change to one observer.
type Subscription struct {
	ch    chan State
	store *Store
}

// States returns the channel state changes are delivered on. The channel is
// closed by Close.
func (s *Subscription) States() <-chan State {
	return s.ch
}

// Close detaches the subscription and closes its channel.
func (s *Subscription) Close() {
	s.store.unsubscribe(s)
}

// Store is the catalog fetch state machine. A fetch in flight suppresses
// further RequestFetch calls, so at most one network call runs at a time and
// the resulting state is deterministic.
type Store struct {
	fetcher Fetcher
	lg      *zap.Logger

	mu       sync.Mutex
	state    State
	subs     map[*Subscription]struct{}
	selected *appetizer.Appetizer
	detail   bool
}

// NewStore creates a Store in the Idle phase.
func NewStore(fetcher Fetcher, lg *zap.Logger) *Store {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Store{
		fetcher: fetcher,
		lg:      lg,
		state:   State{Phase: Idle},
		subs:    make(map[*Subscription]struct{}),
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers an observer that receives every subsequent state
// change. The caller must Close the subscription when done.
func (s *Store) Subscribe() *Subscription {
	sub := &Subscription{
		ch:    make(chan State, subscriberBuffer),
		store: s,
	}
	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()
	return sub
}

func (s *Store) unsubscribe(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[sub]; !ok {
		return
	}
	delete(s.subs, sub)
	close(sub.ch)
}

// setState replaces the snapshot and notifies subscribers. Callers must hold
// s.mu.
func (s *Store) setState(st State) {
	s.state = st
	for sub := range s.subs {
		select {
		case sub.ch <- st:
		default:
			// Full buffer: drop the oldest pending state, then deliver.
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- st:
			default:
			}
		}
	}
}

// RequestFetch transitions to Loading and fetches the catalog on a separate
// goroutine, publishing Loaded or Failed when it resolves. A call made while
// a fetch is already in flight is a no-op. On failure any previously loaded
// catalog is discarded.
func (s *Store) RequestFetch(ctx context.Context) {
	s.mu.Lock()
	if s.state.Phase == Loading {
		s.mu.Unlock()
		s.lg.Debug("fetch already in flight, ignoring request")
		return
	}
	s.setState(State{Phase: Loading})
	s.mu.Unlock()

	go func() {
		items, err := s.fetcher.FetchCatalog(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.lg.Warn("catalog fetch failed", zap.Error(err))
			s.setState(State{Phase: Failed, Err: err})
			return
		}
		s.lg.Info("catalog loaded", zap.Int("items", len(items)))
		s.setState(State{Phase: Loaded, Items: items})
	}()
}

// SelectItem marks an item for the detail view.
func (s *Store) SelectItem(a appetizer.Appetizer) {
	s.mu.Lock()
	s.selected = &a
	s.detail = true
	s.mu.Unlock()
}

// ClearSelection dismisses the detail view and drops the selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.selected = nil
	s.detail = false
	s.mu.Unlock()
}

// Selected returns the currently selected item, if any.
func (s *Store) Selected() (appetizer.Appetizer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return appetizer.Appetizer{}, false
	}
	return *s.selected, true
}

// ShowingDetail reports whether the detail view is active.
func (s *Store) ShowingDetail() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detail
}
