package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/spotbar/internal/core"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is playing",
	Long: `Reads the current track, whether it is playing and the device volume
from Spotify once. The device volume is left alone.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusResult struct {
	Playing bool            `json:"playing"`
	Volume  *int            `json:"volume,omitempty"` // nil when the device does not report one
	Device  string          `json:"device,omitempty"`
	Track   *core.TrackInfo `json:"track,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.requireToken(); err != nil {
		return err
	}

	result, err := readStatus(ctx, s.player)
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return outputStatusJSON(out, result)
	}
	outputStatusText(out, result)
	return nil
}

// readStatus reads the remote state once without touching the device.
func readStatus(ctx context.Context, remote core.Remote) (statusResult, error) {
	var result statusResult

	track, err := remote.CurrentTrack(ctx)
	if err != nil {
		return result, fmt.Errorf("fetch current track: %w", err)
	}
	if track != nil && track.ID != "" {
		result.Track = track
	}

	state, err := remote.PlaybackState(ctx)
	if err != nil {
		return result, fmt.Errorf("fetch playback state: %w", err)
	}
	result.Playing = state.IsPlaying
	result.Device = state.Device
	if state.HasVolume {
		v := state.Volume
		result.Volume = &v
	}
	return result, nil
}

func outputStatusJSON(w io.Writer, r statusResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func outputStatusText(w io.Writer, r statusResult) {
	if r.Track == nil {
		fmt.Fprintln(w, "No active playback")
		return
	}

	t := r.Track
	name := t.Name
	if name == "" {
		name = t.ID
	}
	fmt.Fprintf(w, "%s %s\n", PlayIcon(r.Playing), name)
	if len(t.Artists) > 0 {
		fmt.Fprintf(w, "  Artist: %s\n", strings.Join(t.Artists, ", "))
	} else if t.Artist != "" {
		fmt.Fprintf(w, "  Artist: %s\n", t.Artist)
	}
	if t.Album != "" {
		fmt.Fprintf(w, "  Album:  %s\n", t.Album)
	}
	if t.Duration > 0 {
		fmt.Fprintf(w, "  Length: %s\n", FormatDuration(int(t.Duration.Seconds())))
	}
	if r.Device != "" {
		fmt.Fprintf(w, "  Device: %s\n", r.Device)
	}
	if r.Volume != nil {
		fmt.Fprintf(w, "  Volume: %d%%\n", *r.Volume)
	}
}
