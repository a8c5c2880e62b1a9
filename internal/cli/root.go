package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tessro/spotbar/internal/config"
	sberrors "github.com/tessro/spotbar/internal/errors"
	"github.com/tessro/spotbar/internal/logging"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg      *config.Config
	logger   = zerolog.Nop()
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "spotbar",
	Short: "A Spotify control bar for the terminal",
	Long: `Spotbar shows what Spotify is playing and lets you play, pause and
change the volume from a terminal bar or one-shot commands.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config init may be pointed at a file it is about to create.
		// The bar owns the screen, so it never logs to stderr.
		return initConfig(cmd == configInitCmd, cmd == uiCmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	bindGlobalFlags(rootCmd.PersistentFlags())
}

func bindGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.spotbarrc)")
	fs.BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	fs.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig(allowMissing, screen bool) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			cfg, err = config.Default(), nil
		}
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", sberrors.ErrInvalidConfig, err)
	}

	setup := logging.Setup
	if screen {
		setup = logging.SetupScreen
	}
	l, closer, err := setup(cfg.Log, verbose)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	logger, closeLog = l, closer

	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, sberrors.Format(err))
		_ = closeLog()
		os.Exit(1)
	}
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
