package core

// Volume bounds accepted by the remote player.
const (
	MinVolume = 0
	MaxVolume = 100
)

// PlaybackState is the local view of what the bar is showing.
type PlaybackState struct {
	TrackID   string `json:"track_id,omitempty"`
	IsPlaying bool   `json:"is_playing"`
	Volume    int    `json:"volume"`
}

// HasTrack returns true if a current track is known.
func (s PlaybackState) HasTrack() bool {
	return s.TrackID != ""
}

// RemoteState is the playback status reported by the streaming service.
type RemoteState struct {
	IsPlaying bool   `json:"is_playing"`
	Volume    int    `json:"volume"`
	HasVolume bool   `json:"has_volume"`
	Device    string `json:"device,omitempty"`
}

// ClampVolume limits v to the [MinVolume, MaxVolume] range.
func ClampVolume(v int) int {
	switch {
	case v < MinVolume:
		return MinVolume
	case v > MaxVolume:
		return MaxVolume
	default:
		return v
	}
}
