package playback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tessro/spotbar/internal/core"
)

func newTestController(remote *fakeRemote, tokens bool, store *Store) *Controller {
	return NewController(remote, fakeTokens(tokens), store, Options{
		VolumeDebounce: 30 * time.Millisecond,
	})
}

func TestSyncFetchesOnceWithoutTrack(t *testing.T) {
	remote := newFakeRemote()
	remote.track = &core.TrackInfo{ID: "t1", Name: "Song"}
	remote.state = core.RemoteState{IsPlaying: true}
	c := newTestController(remote, true, nil)

	if !c.Sync(context.Background()) {
		t.Fatal("Sync() = false, want fetch attempted")
	}
	if remote.currentTrackCalls != 1 {
		t.Errorf("current track calls = %d, want 1", remote.currentTrackCalls)
	}

	st := c.Store().State()
	if st.TrackID != "t1" || !st.IsPlaying {
		t.Errorf("state = %+v, want t1 playing", st)
	}

	// A second sync sees the known track and does nothing
	if c.Sync(context.Background()) {
		t.Error("second Sync() fetched again")
	}
	if remote.currentTrackCalls != 1 {
		t.Errorf("current track calls = %d after second sync, want 1", remote.currentTrackCalls)
	}
}

func TestSyncSkipsWithExistingTrack(t *testing.T) {
	remote := newFakeRemote()
	store := NewStore(core.PlaybackState{TrackID: "already", Volume: 50})
	c := newTestController(remote, true, store)

	if c.Sync(context.Background()) {
		t.Error("Sync() = true with a known track")
	}
	if remote.currentTrackCalls != 0 || remote.stateCalls != 0 {
		t.Errorf("calls = %d/%d, want 0/0", remote.currentTrackCalls, remote.stateCalls)
	}
}

func TestSyncSkipsWithoutToken(t *testing.T) {
	remote := newFakeRemote()
	c := newTestController(remote, false, nil)

	if c.Sync(context.Background()) {
		t.Error("Sync() = true without a token")
	}
	if remote.currentTrackCalls != 0 {
		t.Errorf("current track calls = %d, want 0", remote.currentTrackCalls)
	}
}

func TestSyncResetsVolume(t *testing.T) {
	remote := newFakeRemote()
	store := NewStore(core.PlaybackState{Volume: 80})
	c := NewController(remote, fakeTokens(true), store, Options{VolumeDebounce: time.Hour})
	defer c.Close()

	c.Sync(context.Background())
	if got := store.State().Volume; got != DefaultInitialVolume {
		t.Errorf("Volume = %d, want %d", got, DefaultInitialVolume)
	}
	if !c.VolumePending() {
		t.Fatal("sync did not schedule the initial volume")
	}

	c.Flush()
	if sent := remote.sentVolumes(); len(sent) != 1 || sent[0] != DefaultInitialVolume {
		t.Errorf("sent = %v, want [%d]", sent, DefaultInitialVolume)
	}
}

func TestSyncSendsInitialVolumeWhenUnchanged(t *testing.T) {
	remote := newFakeRemote()
	c := NewController(remote, fakeTokens(true), nil, Options{VolumeDebounce: time.Hour})
	defer c.Close()

	// the store already holds the initial volume
	c.Sync(context.Background())
	c.Flush()
	if sent := remote.sentVolumes(); len(sent) != 1 || sent[0] != DefaultInitialVolume {
		t.Errorf("sent = %v, want [%d]", sent, DefaultInitialVolume)
	}
}

func TestSyncInitialVolumeAtBoundaryNotSent(t *testing.T) {
	remote := newFakeRemote()
	c := NewController(remote, fakeTokens(true), nil, Options{InitialVolume: 100, VolumeDebounce: time.Hour})
	defer c.Close()

	c.Sync(context.Background())
	if c.VolumePending() {
		t.Error("initial volume 100 scheduled for the player")
	}
}

func TestTrySyncReturnsError(t *testing.T) {
	remote := newFakeRemote()
	remote.trackErr = errors.New("offline")
	c := NewController(remote, fakeTokens(true), nil, Options{VolumeDebounce: time.Hour})
	defer c.Close()

	fetched, err := c.TrySync(context.Background())
	if !fetched || !errors.Is(err, remote.trackErr) {
		t.Errorf("TrySync() = %v, %v; want true, offline", fetched, err)
	}
}

func TestSyncFailureIsSilent(t *testing.T) {
	remote := newFakeRemote()
	remote.trackErr = errors.New("boom")
	c := newTestController(remote, true, nil)

	c.Sync(context.Background())
	if remote.stateCalls != 0 {
		t.Errorf("state calls = %d, want 0 after track failure", remote.stateCalls)
	}
	if st := c.Store().State(); st.HasTrack() || st.IsPlaying {
		t.Errorf("state = %+v, want untouched", st)
	}
}

func TestSyncNothingPlaying(t *testing.T) {
	remote := newFakeRemote()
	c := newTestController(remote, true, nil)

	c.Sync(context.Background())
	if c.Store().State().HasTrack() {
		t.Error("HasTrack() = true with nothing playing")
	}
	if remote.stateCalls != 1 {
		t.Errorf("state calls = %d, want 1", remote.stateCalls)
	}
}

func TestResync(t *testing.T) {
	remote := newFakeRemote()
	remote.track = &core.TrackInfo{ID: "new"}
	store := NewStore(core.PlaybackState{TrackID: "old"})
	c := newTestController(remote, true, store)

	if !c.Resync(context.Background()) {
		t.Fatal("Resync() = false")
	}
	if got := store.State().TrackID; got != "new" {
		t.Errorf("TrackID = %q, want new", got)
	}
}

func TestTogglePausesWhenPlaying(t *testing.T) {
	remote := newFakeRemote()
	remote.state = core.RemoteState{IsPlaying: true}
	store := NewStore(core.PlaybackState{IsPlaying: true})
	c := newTestController(remote, true, store)

	if c.TogglePlayback(context.Background()) {
		t.Error("TogglePlayback() = true, want false")
	}
	if remote.pauses != 1 || remote.plays != 0 {
		t.Errorf("pauses/plays = %d/%d, want 1/0", remote.pauses, remote.plays)
	}
	if store.State().IsPlaying {
		t.Error("local IsPlaying = true after pause")
	}
}

func TestTogglePlaysWhenPaused(t *testing.T) {
	remote := newFakeRemote()
	c := newTestController(remote, true, nil)

	if !c.TogglePlayback(context.Background()) {
		t.Error("TogglePlayback() = false, want true")
	}
	if remote.plays != 1 || remote.pauses != 0 {
		t.Errorf("plays/pauses = %d/%d, want 1/0", remote.plays, remote.pauses)
	}
	if !c.Store().State().IsPlaying {
		t.Error("local IsPlaying = false after play")
	}
}

func TestToggleKeepsIntentOnCommandFailure(t *testing.T) {
	remote := newFakeRemote()
	remote.commandErr = errors.New("no active device")
	c := newTestController(remote, true, nil)

	if !c.TogglePlayback(context.Background()) {
		t.Error("TogglePlayback() = false, want intent true despite failure")
	}
}

func TestTryToggleReturnsErrors(t *testing.T) {
	remote := newFakeRemote()
	remote.commandErr = errors.New("premium required")
	c := newTestController(remote, true, nil)

	playing, err := c.TryToggle(context.Background())
	if !errors.Is(err, remote.commandErr) {
		t.Errorf("TryToggle() error = %v, want command error", err)
	}
	if !playing || !c.Store().State().IsPlaying {
		t.Error("intent not kept after failed play")
	}

	remote.commandErr = nil
	remote.stateErr = errors.New("offline")
	playing, err = c.TryToggle(context.Background())
	if !errors.Is(err, remote.stateErr) {
		t.Errorf("TryToggle() error = %v, want state error", err)
	}
	if !playing {
		t.Error("local flag changed after failed read")
	}
}

func TestToggleNoopWhenStateUnavailable(t *testing.T) {
	remote := newFakeRemote()
	remote.stateErr = errors.New("offline")
	store := NewStore(core.PlaybackState{IsPlaying: true})
	c := newTestController(remote, true, store)

	if !c.TogglePlayback(context.Background()) {
		t.Error("TogglePlayback() changed local state after failed read")
	}
	if remote.plays+remote.pauses != 0 {
		t.Error("command issued after failed read")
	}
}

func TestVolumeBounds(t *testing.T) {
	remote := newFakeRemote()
	c := newTestController(remote, true, NewStore(core.PlaybackState{Volume: 95}))
	defer c.Close()

	for i := 0; i < 5; i++ {
		if v := c.VolumeUp(); v > core.MaxVolume {
			t.Fatalf("VolumeUp() = %d, above max", v)
		}
	}
	if got := c.Store().State().Volume; got != 100 {
		t.Errorf("Volume = %d, want 100", got)
	}

	c.Store().SetVolume(5)
	for i := 0; i < 5; i++ {
		if v := c.VolumeDown(); v < core.MinVolume {
			t.Fatalf("VolumeDown() = %d, below min", v)
		}
	}
	if got := c.Store().State().Volume; got != 0 {
		t.Errorf("Volume = %d, want 0", got)
	}
}

func TestVolumeDebounced(t *testing.T) {
	remote := newFakeRemote()
	c := newTestController(remote, true, nil)
	defer c.Close()

	for v := 51; v <= 60; v++ {
		c.SetVolume(v)
	}

	select {
	case got := <-remote.volumeSent:
		if got != 60 {
			t.Errorf("sent volume = %d, want 60", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no volume update sent")
	}

	time.Sleep(100 * time.Millisecond)
	if sent := remote.sentVolumes(); len(sent) != 1 {
		t.Errorf("sent = %v, want exactly one update", sent)
	}
}

func TestVolumeBoundaryNotSent(t *testing.T) {
	tests := []struct {
		name  string
		start int
		set   int
	}{
		{"zero", 50, 0},
		{"hundred", 50, 100},
		{"below range", 50, -30},
		{"above range", 50, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := newFakeRemote()
			c := newTestController(remote, true, NewStore(core.PlaybackState{Volume: tt.start}))
			defer c.Close()

			c.SetVolume(tt.set)
			if c.VolumePending() {
				t.Errorf("SetVolume(%d) scheduled a remote update", tt.set)
			}
		})
	}
}

func TestVolumeUnchangedNotSent(t *testing.T) {
	remote := newFakeRemote()
	c := newTestController(remote, true, NewStore(core.PlaybackState{Volume: 40}))
	defer c.Close()

	c.SetVolume(40)
	if c.VolumePending() {
		t.Error("unchanged volume scheduled an update")
	}
}

func TestFlushSendsPendingVolume(t *testing.T) {
	remote := newFakeRemote()
	c := NewController(remote, fakeTokens(true), nil, Options{VolumeDebounce: time.Hour})
	defer c.Close()

	c.VolumeDown()
	c.Flush()

	if sent := remote.sentVolumes(); len(sent) != 1 || sent[0] != 40 {
		t.Errorf("sent = %v, want [40]", sent)
	}
}

func TestVolumeFailureIsSilent(t *testing.T) {
	remote := newFakeRemote()
	remote.commandErr = errors.New("restricted device")
	c := NewController(remote, fakeTokens(true), nil, Options{VolumeDebounce: time.Hour})
	defer c.Close()

	c.SetVolume(30)
	c.Flush()

	if got := c.Store().State().Volume; got != 30 {
		t.Errorf("Volume = %d, want local value kept", got)
	}
}
