// Package cli implements the relver command tree.
package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relver/internal/errors"
	"github.com/raveheart1/relver/internal/git"
)

// Command group IDs for help output.
const (
	GroupRelease       = "release"
	GroupInspection    = "inspection"
	GroupConfiguration = "configuration"
)

var (
	configPathFlag string
	repoPathFlag   string
	debugFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "relver",
	Short: "Commit-message-driven release automation",
	Long: `relver inspects your git history, classifies commit messages into
semantic-versioning impact levels, computes the next version, tags it,
and keeps a changelog grouped by release.

Typical flow:
  relver next       # see what the next version would be
  relver release    # tag it and update the changelog`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			git.SetDebugLogger(log.Printf)
		}
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupInspection, Title: "Inspection Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)

	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to project config file (default .relver/config.yml)")
	rootCmd.PersistentFlags().StringVarP(&repoPathFlag, "repo", "C", "", "Path to the git repository (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging for git operations")
}

// Execute runs the root command. Errors are formatted before returning so
// main only has to map them to an exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
	} else if _, ok := err.(*ExitError); !ok {
		errors.PrintError(errors.Wrap(err, errors.Runtime))
	}
	return err
}
