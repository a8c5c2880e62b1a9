package core

import "time"

// TrackInfo is a read-only description of a track, keyed by its ID.
type TrackInfo struct {
	ID          string        `json:"id"`
	URI         string        `json:"uri"`
	Name        string        `json:"name"`
	Artist      string        `json:"artist"`
	Artists     []string      `json:"artists"`
	Album       string        `json:"album"`
	AlbumArtURL string        `json:"album_art_url,omitempty"`
	Duration    time.Duration `json:"duration"`
}
