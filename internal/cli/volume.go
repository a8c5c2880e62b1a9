package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/spotbar/internal/core"
	"github.com/tessro/spotbar/internal/playback"
)

var (
	volumeUp   bool
	volumeDown bool
)

var volumeCmd = &cobra.Command{
	Use:   "volume [level]",
	Short: "Set or adjust volume",
	Long: `Set the playback volume (0-100) or adjust it up/down by the configured step.

Like the bar, spotbar never sends 0 or 100 to Spotify; those levels are
only accepted locally.

Examples:
  spotbar volume 50      # Set volume to 50%
  spotbar volume --up    # Increase volume by one step
  spotbar volume --down  # Decrease volume by one step`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVolume,
}

func init() {
	volumeCmd.Flags().BoolVar(&volumeUp, "up", false, "Increase volume by one step")
	volumeCmd.Flags().BoolVar(&volumeDown, "down", false, "Decrease volume by one step")
	volumeCmd.MarkFlagsMutuallyExclusive("up", "down")
	rootCmd.AddCommand(volumeCmd)
}

type volumeResult struct {
	Volume int  `json:"volume"`
	Sent   bool `json:"sent"`
}

func runVolume(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var level int
	switch {
	case len(args) == 1:
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid volume level %q: must be 0-100", args[0])
		}
		level = v
	case volumeUp, volumeDown:
	default:
		return fmt.Errorf("specify a level or use --up/--down")
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.requireToken(); err != nil {
		return err
	}

	// Start from the player's volume so steps are relative to it.
	if remote, err := s.player.PlaybackState(ctx); err == nil && remote.HasVolume {
		s.controller.Store().SetVolume(remote.Volume)
	} else if err != nil {
		logger.Warn().Err(err).Msg("fetch playback state failed")
	}

	res := applyVolume(s.controller, level, len(args) == 1, volumeUp)

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(res)
	}
	fmt.Printf("Volume: %d%%\n", res.Volume)
	if !res.Sent && Verbose() {
		fmt.Fprintln(os.Stderr, "(unchanged or at the end of the range, not sent)")
	}
	return nil
}

// applyVolume runs one volume change through the controller and sends it
// straight away.
func applyVolume(c *playback.Controller, level int, absolute, up bool) volumeResult {
	var v int
	switch {
	case absolute:
		v = c.SetVolume(core.ClampVolume(level))
	case up:
		v = c.VolumeUp()
	default:
		v = c.VolumeDown()
	}

	sent := c.VolumePending()
	c.Flush()
	return volumeResult{Volume: v, Sent: sent}
}
