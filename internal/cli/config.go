package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/raveheart1/relver/internal/config"
	"github.com/raveheart1/relver/internal/errors"
)

var configInitForceFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after merging defaults, the user
config file, the project config file, and RELVER_* environment variables.

Examples:
  relver config         # Show effective configuration
  relver config init    # Write a commented project config file`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented project config file",
	Long: `Write a commented project config file to .relver/config.yml in the
current directory. The file documents every setting with its default value.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd)
	},
}

func init() {
	configCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVar(&configInitForceFlag, "force", false, "Overwrite an existing config file")
}

func runConfigShow(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling configuration: %w", err)
	}

	userPath, _ := config.UserConfigPath()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# Effective configuration\n")
	fmt.Fprintf(out, "# User config:    %s\n", describeConfigFile(userPath))
	fmt.Fprintf(out, "# Project config: %s\n", describeConfigFile(resolveProjectConfigPath()))
	fmt.Fprintf(out, "# Environment:    RELVER_*\n\n")
	_, err = out.Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command) error {
	path := config.ProjectConfigPath()
	if configPathFlag != "" {
		path = configPathFlag
	}

	if _, err := os.Stat(path); err == nil && !configInitForceFlag {
		return errors.NewConfigError(
			fmt.Sprintf("config file already exists: %s", path),
			"Use --force to overwrite it",
		)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(config.DefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// resolveProjectConfigPath reports which project config file would be used,
// honoring the --config flag.
func resolveProjectConfigPath() string {
	if configPathFlag != "" {
		return configPathFlag
	}
	return config.ProjectConfigPath()
}

func describeConfigFile(path string) string {
	if path == "" {
		return "(unavailable)"
	}
	if _, err := os.Stat(path); err != nil {
		return path + " (not present)"
	}
	return path
}
