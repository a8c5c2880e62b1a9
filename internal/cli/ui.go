package cli

import (
	"os"

	"github.com/spf13/cobra"
	sberrors "github.com/tessro/spotbar/internal/errors"
	"github.com/tessro/spotbar/internal/tui"
	"golang.org/x/term"
)

var uiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui", "bar"},
	Short:   "Launch the control bar",
	Long: `Launch the terminal control bar.

The bar shows the current track, a play/pause button and a volume slider.
Volume changes are sent to Spotify once you stop adjusting.

Keyboard shortcuts:
  Space        Play/Pause
  +/-          Volume up/down
  ←/→          Volume -1/+1
  r            Resync now playing
  ?            Help
  q, Ctrl+C    Quit`,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return sberrors.ErrNotTerminal
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	app := tui.NewApp(s.controller, s.player, s.player, cfg.TUI.Theme, logger)
	return tui.Run(app)
}
