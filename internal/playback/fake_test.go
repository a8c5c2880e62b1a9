package playback

import (
	"context"
	"sync"

	"github.com/tessro/spotbar/internal/core"
)

type fakeTokens bool

func (f fakeTokens) HasToken() bool { return bool(f) }

type fakeRemote struct {
	mu sync.Mutex

	track      *core.TrackInfo
	trackErr   error
	state      core.RemoteState
	stateErr   error
	commandErr error

	currentTrackCalls int
	stateCalls        int
	plays             int
	pauses            int
	volumes           []int
	volumeSent        chan int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{volumeSent: make(chan int, 16)}
}

func (f *fakeRemote) CurrentTrack(ctx context.Context) (*core.TrackInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.currentTrackCalls++
	if f.trackErr != nil {
		return nil, f.trackErr
	}
	return f.track, nil
}

func (f *fakeRemote) PlaybackState(ctx context.Context) (*core.RemoteState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stateCalls++
	if f.stateErr != nil {
		return nil, f.stateErr
	}
	st := f.state
	return &st, nil
}

func (f *fakeRemote) Track(ctx context.Context, id string) (*core.TrackInfo, error) {
	return &core.TrackInfo{ID: id}, nil
}

func (f *fakeRemote) Play(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	return f.commandErr
}

func (f *fakeRemote) Pause(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
	return f.commandErr
}

func (f *fakeRemote) SetVolume(ctx context.Context, percent int) error {
	f.mu.Lock()
	f.volumes = append(f.volumes, percent)
	err := f.commandErr
	f.mu.Unlock()
	f.volumeSent <- percent
	return err
}

func (f *fakeRemote) sentVolumes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.volumes...)
}
