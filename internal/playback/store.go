package playback

import (
	"sync"

	"github.com/tessro/spotbar/internal/core"
)

// Store holds the shared "now playing" slots. The controller writes them;
// the bar and any other view read them or subscribe to changes.
type Store struct {
	mu    sync.RWMutex
	state core.PlaybackState

	subsMu sync.Mutex
	subs   map[int]func(core.PlaybackState)
	nextID int
}

// NewStore returns a store seeded with initial. The volume is clamped.
func NewStore(initial core.PlaybackState) *Store {
	initial.Volume = core.ClampVolume(initial.Volume)
	return &Store{
		state: initial,
		subs:  make(map[int]func(core.PlaybackState)),
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() core.PlaybackState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetTrackID sets the current track. An empty id means no track.
func (s *Store) SetTrackID(id string) bool {
	return s.update(func(st *core.PlaybackState) { st.TrackID = id })
}

// SetPlaying sets the playing flag.
func (s *Store) SetPlaying(playing bool) bool {
	return s.update(func(st *core.PlaybackState) { st.IsPlaying = playing })
}

// SetVolume stores v clamped to [0,100] and returns the stored value and
// whether it differed from the previous one.
func (s *Store) SetVolume(v int) (int, bool) {
	v = core.ClampVolume(v)
	return v, s.update(func(st *core.PlaybackState) { st.Volume = v })
}

// Subscribe registers fn to be called with the new state after every change.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(core.PlaybackState)) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *Store) update(mutate func(*core.PlaybackState)) bool {
	s.mu.Lock()
	before := s.state
	mutate(&s.state)
	after := s.state
	s.mu.Unlock()

	if before == after {
		return false
	}

	s.subsMu.Lock()
	fns := make([]func(core.PlaybackState), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(after)
	}
	return true
}
