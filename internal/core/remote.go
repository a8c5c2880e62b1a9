package core

import "context"

// Remote is the streaming service the bar controls.
type Remote interface {
	// CurrentTrack returns the track currently loaded on the active device,
	// or nil if nothing is playing.
	CurrentTrack(ctx context.Context) (*TrackInfo, error)
	PlaybackState(ctx context.Context) (*RemoteState, error)
	Track(ctx context.Context, id string) (*TrackInfo, error)

	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	SetVolume(ctx context.Context, percent int) error
}

// TokenProvider reports whether credentials for the remote are available.
type TokenProvider interface {
	HasToken() bool
}
