package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/raveheart1/relver/internal/changelog"
	"github.com/raveheart1/relver/internal/config"
	"github.com/raveheart1/relver/internal/errors"
	"github.com/raveheart1/relver/internal/git"
	"github.com/raveheart1/relver/internal/history"
	"github.com/raveheart1/relver/internal/output"
	"github.com/raveheart1/relver/internal/release"
)

var (
	releaseDryRunFlag  bool
	releasePushFlag    bool
	releaseNoPushFlag  bool
	releaseMessageFlag string
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Tag the next version and update the changelog",
	Long: `Run the full release pipeline: compute the next version from the
commits since the last release, prepend a section to the changelog,
create an annotated version tag at HEAD, and optionally push the tag
and current branch to the configured remote.

Examples:
  relver release               # tag and update changelog
  relver release --dry-run     # show what would happen
  relver release --push        # also push tag and branch
  relver release -m "hotfix"   # custom tag message`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelease(cmd)
	},
}

func init() {
	releaseCmd.GroupID = GroupRelease
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().BoolVar(&releaseDryRunFlag, "dry-run", false, "Show the release plan without writing anything")
	releaseCmd.Flags().BoolVar(&releasePushFlag, "push", false, "Push the tag and branch after tagging")
	releaseCmd.Flags().BoolVar(&releaseNoPushFlag, "no-push", false, "Never push, overriding configuration")
	releaseCmd.Flags().StringVarP(&releaseMessageFlag, "message", "m", "", "Tag message (default: \"Release <tag>\")")
}

func runRelease(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
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

	previous := plan.Previous.String()
	if plan.FirstRelease() {
		previous = "(no release)"
	}
	output.PrintVersionBump(out, previous, plan.Next.String(), plan.Increment.String())

	if releaseDryRunFlag {
		fmt.Fprintf(out, "\nDry run: would tag %s and update %s (%d commits)\n",
			plan.Next.TagName(cfg.TagPrefix), cfg.ChangelogPath, len(plan.Commits))
		return nil
	}

	if err := writeChangelog(repo, cfg, plan); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "updating changelog")
	}
	output.PrintSuccess(out, fmt.Sprintf("Updated %s", cfg.ChangelogPath))

	tagName, err := repo.CreateVersionTag(plan.Next, releaseMessageFlag)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "creating tag",
			"the tag may already exist; run 'relver next' to see the computed version")
	}
	output.PrintSuccess(out, fmt.Sprintf("Created tag %s", tagName))

	if shouldPush(cfg) {
		if err := pushRelease(cmd.Context(), repo, cfg); err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "pushing release",
				"the tag was created locally; push manually once the remote is reachable")
		}
		output.PrintSuccess(out, fmt.Sprintf("Pushed to %s", cfg.Remote))
	}

	recordRelease(cfg, plan, tagName)
	return nil
}

// shouldPush combines config and flags; --no-push always wins.
func shouldPush(cfg *config.Configuration) bool {
	if releaseNoPushFlag {
		return false
	}
	return releasePushFlag || cfg.Push
}

// writeChangelog synthesizes the new version section and saves the file.
func writeChangelog(repo *git.Repo, cfg *config.Configuration, plan *release.Plan) error {
	path, err := changelogPath(repo, cfg)
	if err != nil {
		return err
	}

	log, err := changelog.LoadOrEmpty(path, projectName(repo))
	if err != nil {
		return err
	}

	date := time.Now().Format("2006-01-02")
	if err := changelog.Synthesize(log, plan, date); err != nil {
		return err
	}

	return changelog.Save(log, path)
}

// pushRelease pushes the tag set and the current branch concurrently, with
// a spinner when attached to a terminal.
func pushRelease(ctx context.Context, repo *git.Repo, cfg *config.Configuration) error {
	ctx, cancel := context.WithTimeout(ctx, git.DefaultPushTimeout)
	defer cancel()

	var spin *spinner.Spinner
	if output.IsTerminal() {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond,
			spinner.WithSuffix(fmt.Sprintf(" pushing to %s...", cfg.Remote)))
		spin.Start()
		defer spin.Stop()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return repo.PushTags(ctx, cfg.Remote) })
	g.Go(func() error { return repo.PushBranch(ctx, cfg.Remote) })
	return g.Wait()
}

// recordRelease logs the release to the state dir. Failures are warnings.
func recordRelease(cfg *config.Configuration, plan *release.Plan, tagName string) {
	previous := ""
	if !plan.FirstRelease() {
		previous = plan.Previous.String()
	}

	writer := history.NewWriter(cfg.StateDir, cfg.MaxHistoryEntries)
	writer.LogEntry(history.Entry{
		Version:     plan.Next.String(),
		Previous:    previous,
		Increment:   plan.Increment.String(),
		CommitCount: len(plan.Commits),
		Tag:         tagName,
		Timestamp:   time.Now(),
	})
}
