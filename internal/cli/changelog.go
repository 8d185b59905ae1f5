package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relver/internal/changelog"
)

var (
	changelogLastFlag     int
	changelogPlainFlag    bool
	changelogMarkdownFlag bool
)

var changelogCmd = &cobra.Command{
	Use:   "changelog [version]",
	Short: "View the changelog",
	Long: `View changelog entries from the configured changelog file.

By default, shows the 5 most recent entries. Use a version argument to
see all entries for a specific version, or --markdown to render the
whole changelog as a Markdown document.

Examples:
  relver changelog              # Show 5 most recent entries
  relver changelog v0.6.0       # Show all entries for version 0.6.0
  relver changelog 0.6.0        # Same (v prefix optional)
  relver changelog --last 10    # Show 10 most recent entries
  relver changelog --markdown   # Render the full changelog as Markdown
  relver changelog --plain      # Plain output (no colors/icons)`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChangelogView(cmd, args)
	},
}

func init() {
	changelogCmd.GroupID = GroupInspection
	rootCmd.AddCommand(changelogCmd)

	changelogCmd.Flags().IntVar(&changelogLastFlag, "last", 5, "Number of entries to show")
	changelogCmd.Flags().BoolVar(&changelogPlainFlag, "plain", false, "Plain text output (no colors/icons)")
	changelogCmd.Flags().BoolVar(&changelogMarkdownFlag, "markdown", false, "Render the full changelog as Markdown")
}

func runChangelogView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	repo, err := openRepo(cfg)
	if err != nil {
		return err
	}

	path, err := changelogPath(repo, cfg)
	if err != nil {
		return err
	}

	log, err := changelog.Load(path)
	if err != nil {
		return fmt.Errorf("loading changelog: %w", err)
	}

	if changelogMarkdownFlag {
		return changelog.RenderMarkdown(log, cmd.OutOrStdout())
	}

	opts := changelog.FormatOptions{Plain: changelogPlainFlag}

	if len(args) == 1 {
		return showVersion(log, args[0], cmd, opts)
	}
	return showLastEntries(log, changelogLastFlag, cmd, opts)
}

func showVersion(log *changelog.Changelog, version string, cmd *cobra.Command, opts changelog.FormatOptions) error {
	v, err := log.GetVersion(version)
	if err != nil {
		var notFound *changelog.VersionNotFoundError
		if stderrors.As(err, &notFound) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found.\n\n", version)
			fmt.Fprintf(cmd.ErrOrStderr(), "Available versions:\n")
			for _, ver := range log.ListVersions() {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", ver)
			}
			return NewExitError(ExitInvalidArguments)
		}
		return fmt.Errorf("getting version: %w", err)
	}

	return changelog.FormatVersion(v, cmd.OutOrStdout(), opts)
}

func showLastEntries(log *changelog.Changelog, n int, cmd *cobra.Command, opts changelog.FormatOptions) error {
	entries := log.GetLastN(n)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog entries found.")
		return nil
	}

	if err := changelog.FormatTerminal(entries, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	total := log.GetEntryCount()
	if total > len(entries) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d entries shown. Use --last %d to see all)\n",
			len(entries), total, total)
	}

	return nil
}
