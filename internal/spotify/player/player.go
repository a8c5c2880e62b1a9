package player

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tessro/spotbar/internal/core"
	sberrors "github.com/tessro/spotbar/internal/errors"
	"github.com/tessro/spotbar/internal/spotify/client"
)

// Player implements core.Remote for Spotify.
type Player struct {
	client   *client.Client
	deviceID string // Optional: target device ID
}

// New creates a new Spotify player.
func New(c *client.Client) *Player {
	return &Player{client: c}
}

// SetDevice sets the target device for playback commands.
func (p *Player) SetDevice(deviceID string) {
	p.deviceID = deviceID
}

// HasToken reports whether the underlying client holds credentials.
func (p *Player) HasToken() bool {
	return p.client.HasToken()
}

// CurrentTrack returns the track on the active device, or nil.
func (p *Player) CurrentTrack(ctx context.Context) (*core.TrackInfo, error) {
	cp, err := p.client.GetCurrentlyPlaying(ctx)
	if err != nil {
		return nil, client.Classify(err)
	}
	return convertTrack(cp.Item), nil
}

// PlaybackState returns the remote playing flag and device volume.
func (p *Player) PlaybackState(ctx context.Context) (*core.RemoteState, error) {
	state, err := p.client.GetPlaybackState(ctx)
	if err != nil {
		return nil, client.Classify(err)
	}
	return convertState(state), nil
}

// Track looks up a track by ID.
func (p *Player) Track(ctx context.Context, id string) (*core.TrackInfo, error) {
	t, err := p.client.GetTrack(ctx, id)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorInfo.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s: %w", sberrors.ErrTrackNotFound, id, err)
		}
		return nil, client.Classify(err)
	}
	return convertTrack(t), nil
}

// Play starts or resumes playback.
func (p *Player) Play(ctx context.Context) error {
	return client.Classify(p.client.Play(ctx, p.deviceID))
}

// Pause pauses playback.
func (p *Player) Pause(ctx context.Context) error {
	return client.Classify(p.client.Pause(ctx, p.deviceID))
}

// SetVolume sets the playback volume (0-100).
func (p *Player) SetVolume(ctx context.Context, percent int) error {
	return client.Classify(p.client.SetVolume(ctx, percent, p.deviceID))
}

func convertState(s *client.PlaybackState) *core.RemoteState {
	if s == nil {
		return &core.RemoteState{}
	}

	rs := &core.RemoteState{
		IsPlaying: s.IsPlaying,
		Device:    s.Device.Name,
	}
	if s.Device.VolumePercent != nil {
		rs.Volume = core.ClampVolume(*s.Device.VolumePercent)
		rs.HasVolume = true
	}
	return rs
}

// convertTrack converts a Spotify track to a core track.
func convertTrack(t *client.Track) *core.TrackInfo {
	if t == nil {
		return nil
	}

	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = a.Name
	}

	artist := ""
	if len(artists) > 0 {
		artist = artists[0]
	}

	// Spotify lists album images widest first
	art := ""
	if len(t.Album.Images) > 0 {
		art = t.Album.Images[0].URL
	}

	return &core.TrackInfo{
		ID:          t.ID,
		URI:         t.URI,
		Name:        t.Name,
		Artist:      artist,
		Artists:     artists,
		Album:       t.Album.Name,
		AlbumArtURL: art,
		Duration:    time.Duration(t.DurationMS) * time.Millisecond,
	}
}

var (
	_ core.Remote        = (*Player)(nil)
	_ core.TokenProvider = (*Player)(nil)
)
