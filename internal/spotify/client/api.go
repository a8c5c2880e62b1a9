package client

import (
	"context"
	"fmt"
	"net/url"
)

// GetCurrentUser returns the current user's profile.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.Get(ctx, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetPlaybackState returns the current playback state.
// When nothing is playing Spotify answers 204 and a zero state is returned.
func (c *Client) GetPlaybackState(ctx context.Context) (*PlaybackState, error) {
	var state PlaybackState
	if err := c.Get(ctx, "/me/player", &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// GetCurrentlyPlaying returns the track loaded on the active device.
// Item is nil when nothing is playing.
func (c *Client) GetCurrentlyPlaying(ctx context.Context) (*CurrentlyPlaying, error) {
	var cp CurrentlyPlaying
	if err := c.Get(ctx, "/me/player/currently-playing", &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// GetTrack returns catalog information for a single track.
func (c *Client) GetTrack(ctx context.Context, id string) (*Track, error) {
	if id == "" {
		return nil, fmt.Errorf("track id cannot be empty")
	}

	var track Track
	if err := c.Get(ctx, "/tracks/"+url.PathEscape(id), &track); err != nil {
		return nil, err
	}
	return &track, nil
}
