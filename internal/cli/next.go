package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relver/internal/output"
)

var (
	nextStrictFlag  bool
	nextPlainFlag   bool
	nextVerboseFlag bool
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Compute the next version from commits since the last release",
	Long: `Compute the next version by classifying every commit made since the
latest version tag and aggregating the results.

A commit mentioning "breaking" bumps the major version, feature commits
bump the minor version, and everything else ships as a patch. When no
commit matches a known pattern the release is still a patch.

Examples:
  relver next             # human-readable: 1.2.0 → 1.3.0 (minor)
  relver next --plain     # just "1.3.0", for scripts
  relver next --verbose   # per-commit classification breakdown
  relver next --strict    # fail on a partial latest tag like v1.2`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNext(cmd)
	},
}

func init() {
	nextCmd.GroupID = GroupInspection
	rootCmd.AddCommand(nextCmd)

	nextCmd.Flags().BoolVar(&nextStrictFlag, "strict", false, "Reject a latest tag that is not a full X.Y.Z triple")
	nextCmd.Flags().BoolVar(&nextPlainFlag, "plain", false, "Print only the version number")
	nextCmd.Flags().BoolVarP(&nextVerboseFlag, "verbose", "v", false, "Show the classification of each commit")
}

func runNext(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if nextStrictFlag {
		cfg.StrictVersions = true
	}

	repo, err := openRepo(cfg)
	if err != nil {
		return err
	}

	plan, err := newPlanner(repo, cfg).Plan(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if nextPlainFlag {
		fmt.Fprintln(out, plan.Next)
		return nil
	}

	if nextVerboseFlag {
		for _, commit := range plan.Commits {
			fmt.Fprintf(out, "  %-6s %s\n", commit.Impact, commit.Subject)
		}
		if len(plan.Commits) > 0 {
			fmt.Fprintln(out)
		}
	}

	previous := plan.Previous.String()
	if plan.FirstRelease() {
		previous = "(no release)"
	}
	output.PrintVersionBump(out, previous, plan.Next.String(), plan.Increment.String())
	return nil
}
