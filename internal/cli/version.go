package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tessro/spotbar/internal/spotify/client"
)

var (
	// Set via ldflags at build time
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printVersion(cmd.OutOrStdout(), currentVersion(), JSONOutput(), Verbose())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	API       string `json:"api"`
}

func currentVersion() versionInfo {
	return versionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		API:       client.BaseURL,
	}
}

// printVersion writes one line, the full build details when verbose, or
// the details as JSON.
func printVersion(w io.Writer, v versionInfo, asJSON, verbose bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	fmt.Fprintf(w, "spotbar %s\n", v.Version)
	if verbose {
		fmt.Fprintf(w, "  commit:   %s\n", v.Commit)
		fmt.Fprintf(w, "  built:    %s\n", v.BuildDate)
		fmt.Fprintf(w, "  go:       %s\n", v.GoVersion)
		fmt.Fprintf(w, "  platform: %s\n", v.Platform)
		fmt.Fprintf(w, "  api:      %s\n", v.API)
	}
	return nil
}
