package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle",
	Aliases: []string{"pp"},
	Short:   "Toggle play/pause",
	Long:    `Pause if Spotify is playing, otherwise resume.`,
	RunE:    runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.requireToken(); err != nil {
		return err
	}

	playing, err := s.controller.TryToggle(ctx)
	if err != nil {
		return fmt.Errorf("toggle failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return json.NewEncoder(out).Encode(map[string]bool{"playing": playing})
	}
	if playing {
		fmt.Fprintln(out, "Playing")
	} else {
		fmt.Fprintln(out, "Paused")
	}
	return nil
}
