// Package playback keeps the bar's local playback state in step with the
// remote player.
package playback

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tessro/spotbar/internal/core"
	"github.com/tessro/spotbar/internal/debounce"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultInitialVolume  = 50
	DefaultVolumeStep     = 10
	DefaultVolumeDebounce = 500 * time.Millisecond
	DefaultRemoteTimeout  = 5 * time.Second
)

// Options tunes a Controller.
type Options struct {
	InitialVolume  int
	VolumeStep     int
	VolumeDebounce time.Duration
	// RemoteTimeout bounds volume updates, which run off the caller's
	// goroutine and so have no caller context.
	RemoteTimeout time.Duration
	Logger        zerolog.Logger
}

func (o *Options) applyDefaults() {
	if o.InitialVolume == 0 {
		o.InitialVolume = DefaultInitialVolume
	}
	o.InitialVolume = core.ClampVolume(o.InitialVolume)
	if o.VolumeStep <= 0 {
		o.VolumeStep = DefaultVolumeStep
	}
	if o.VolumeDebounce <= 0 {
		o.VolumeDebounce = DefaultVolumeDebounce
	}
	if o.RemoteTimeout <= 0 {
		o.RemoteTimeout = DefaultRemoteTimeout
	}
}

// Controller drives the remote player from bar events and mirrors remote
// state into a Store. Sync, TogglePlayback and volume updates log remote
// failures instead of returning them; TrySync and TryToggle return them.
type Controller struct {
	remote core.Remote
	tokens core.TokenProvider
	store  *Store
	opts   Options
	log    zerolog.Logger

	volume *debounce.Debouncer[int]
}

// NewController wires a controller. If store is nil a new one is created
// with the initial volume.
func NewController(remote core.Remote, tokens core.TokenProvider, store *Store, opts Options) *Controller {
	opts.applyDefaults()
	if store == nil {
		store = NewStore(core.PlaybackState{Volume: opts.InitialVolume})
	}

	c := &Controller{
		remote: remote,
		tokens: tokens,
		store:  store,
		opts:   opts,
		log:    opts.Logger.With().Str("component", "playback").Logger(),
	}
	c.volume = debounce.New(opts.VolumeDebounce, c.pushVolume)
	return c
}

// Store returns the state store the controller writes to.
func (c *Controller) Store() *Store {
	return c.store
}

// Sync fetches the current track and playing flag once, but only when a
// token is present and no track is known yet. It reports whether a fetch
// was attempted. Failures are logged and leave the store as far as the sync
// got.
func (c *Controller) Sync(ctx context.Context) bool {
	fetched, err := c.TrySync(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("sync failed")
	}
	return fetched
}

// TrySync is Sync for callers that want the first remote failure.
func (c *Controller) TrySync(ctx context.Context) (bool, error) {
	if c.tokens == nil || !c.tokens.HasToken() {
		c.log.Debug().Msg("sync skipped: no token")
		return false, nil
	}
	if c.store.State().HasTrack() {
		return false, nil
	}

	c.resetVolume()

	track, err := c.remote.CurrentTrack(ctx)
	if err != nil {
		return true, fmt.Errorf("fetch current track: %w", err)
	}

	id := ""
	if track != nil {
		id = track.ID
		c.log.Debug().Str("track_id", track.ID).Str("name", track.Name).Str("artist", track.Artist).Msg("now playing")
	} else {
		c.log.Debug().Msg("now playing: nothing")
	}
	c.store.SetTrackID(id)

	state, err := c.remote.PlaybackState(ctx)
	if err != nil {
		return true, fmt.Errorf("fetch playback state: %w", err)
	}
	c.store.SetPlaying(state.IsPlaying)
	return true, nil
}

// resetVolume puts the session back at the initial volume and schedules it
// for the player even when the stored value did not change.
func (c *Controller) resetVolume() {
	v, _ := c.store.SetVolume(c.opts.InitialVolume)
	c.schedule(v)
}

// Resync forgets the current track and runs Sync again.
func (c *Controller) Resync(ctx context.Context) bool {
	c.store.SetTrackID("")
	return c.Sync(ctx)
}

// TogglePlayback reads the remote playing flag and issues the opposite
// command. The local flag follows the issued command without a second
// read. It returns the local flag afterwards; failures are logged.
func (c *Controller) TogglePlayback(ctx context.Context) bool {
	playing, err := c.TryToggle(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("toggle failed")
	}
	return playing
}

// TryToggle is TogglePlayback for callers that want the remote failure. If
// the state read fails nothing changes; if the command fails the local flag
// still follows the intent.
func (c *Controller) TryToggle(ctx context.Context) (bool, error) {
	state, err := c.remote.PlaybackState(ctx)
	if err != nil {
		return c.store.State().IsPlaying, fmt.Errorf("fetch playback state: %w", err)
	}

	if state.IsPlaying {
		err = c.remote.Pause(ctx)
		c.store.SetPlaying(false)
		if err != nil {
			return false, fmt.Errorf("pause: %w", err)
		}
		return false, nil
	}

	err = c.remote.Play(ctx)
	c.store.SetPlaying(true)
	if err != nil {
		return true, fmt.Errorf("play: %w", err)
	}
	return true, nil
}

// SetVolume stores v (clamped) and schedules a remote update after the
// debounce delay. Values at either end of the range are stored but never
// sent.
func (c *Controller) SetVolume(v int) int {
	v, changed := c.store.SetVolume(v)
	if changed {
		c.schedule(v)
	}
	return v
}

// schedule queues v for the player. The ends of the range are never sent.
func (c *Controller) schedule(v int) {
	if v > core.MinVolume && v < core.MaxVolume {
		c.volume.Trigger(v)
	}
}

// VolumeUp raises the volume by one step unless it is already at the top.
func (c *Controller) VolumeUp() int {
	cur := c.store.State().Volume
	if cur >= core.MaxVolume {
		return cur
	}
	return c.SetVolume(cur + c.opts.VolumeStep)
}

// VolumeDown lowers the volume by one step unless it is already at the bottom.
func (c *Controller) VolumeDown() int {
	cur := c.store.State().Volume
	if cur <= core.MinVolume {
		return cur
	}
	return c.SetVolume(cur - c.opts.VolumeStep)
}

// VolumePending reports whether a volume update is waiting to be sent.
func (c *Controller) VolumePending() bool {
	return c.volume.Pending()
}

// VolumeDelay is the quiet period before a volume change is sent.
func (c *Controller) VolumeDelay() time.Duration {
	return c.opts.VolumeDebounce
}

// Flush sends a pending volume update now.
func (c *Controller) Flush() {
	c.volume.Flush()
}

// Close drops any pending volume update.
func (c *Controller) Close() {
	c.volume.Stop()
}

func (c *Controller) pushVolume(v int) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opts.RemoteTimeout)
	defer cancel()

	if err := c.remote.SetVolume(ctx, v); err != nil {
		c.log.Warn().Err(err).Int("volume", v).Msg("set volume failed")
		return
	}
	c.log.Debug().Int("volume", v).Msg("volume sent")
}
