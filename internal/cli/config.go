package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/tessro/spotbar/internal/config"
	"github.com/tessro/spotbar/internal/core"
)

var configInitDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and creating the spotbar configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration, including defaults and SPOTBAR_* overrides.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a new configuration file. Prompts for the common settings unless
--defaults is given.`,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitDefaults, "defaults", false, "write defaults without prompting")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	encoder := toml.NewEncoder(os.Stdout)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, exists := getConfigPath()
	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"path":   path,
			"exists": exists,
		})
	}
	if exists {
		fmt.Println(path)
	} else {
		fmt.Printf("%s (not created yet)\n", path)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath, exists := getConfigPath()
	if exists {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	newCfg := config.Default()
	if !configInitDefaults {
		if err := promptConfig(newCfg); err != nil {
			return fmt.Errorf("config init cancelled: %w", err)
		}
	}
	if err := newCfg.Validate(); err != nil {
		return err
	}

	if err := newCfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	}
	fmt.Printf("Created config file: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Put a Spotify token at the token file path or set SPOTBAR_ACCESS_TOKEN")
	fmt.Println("  2. Run 'spotbar ui'")
	return nil
}

func promptConfig(c *config.Config) error {
	volume := strconv.Itoa(c.Player.InitialVolume)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Spotify client ID").
				Description("Needed to refresh expired tokens. Leave empty to skip.").
				Value(&c.Spotify.ClientID),
			huh.NewInput().
				Title("Token file").
				Description("Leave empty for the default location.").
				Value(&c.Spotify.TokenFile),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Initial volume").
				Description("Volume the bar starts from (0-100).").
				Value(&volume).
				Validate(validateVolume),
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Auto", "auto"),
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).
				Value(&c.TUI.Theme),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	v, _ := strconv.Atoi(volume)
	c.Player.InitialVolume = v
	return nil
}

func validateVolume(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	// 0 in the file means "use the default", so it cannot be chosen here
	if v <= core.MinVolume || v != core.ClampVolume(v) {
		return fmt.Errorf("volume must be between %d and %d", core.MinVolume+1, core.MaxVolume)
	}
	return nil
}

// getConfigPath returns the file config commands act on and whether it
// exists yet.
func getConfigPath() (string, bool) {
	path := cfgFile
	if path == "" {
		path = config.FindConfigFile()
	}
	if path == "" {
		path = config.DefaultPath()
	}
	_, err := os.Stat(path)
	return path, err == nil
}
