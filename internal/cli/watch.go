package cli

import (
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relver/internal/release"
	"github.com/raveheart1/relver/internal/watcher"
)

var watchDebounceFlag time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompute the next version whenever the repository changes",
	Long: `Watch the repository's git directory and reprint the next version
whenever commits or tags change. Useful in a side terminal while writing
commits: the projected version updates as you work.

Press Ctrl+C to stop.

Examples:
  relver watch
  relver watch --debounce 500ms`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

func init() {
	watchCmd.GroupID = GroupInspection
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounceFlag, "debounce", watcher.DefaultDebounce,
		"Quiet period before recomputing after a change")
}

func runWatch(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	repo, err := openRepo(cfg)
	if err != nil {
		return err
	}

	planner := newPlanner(repo, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()

	// Serialize plan recomputation: fsnotify callbacks can overlap a slow
	// plan on large repositories.
	var mu sync.Mutex
	report := func() {
		mu.Lock()
		defer mu.Unlock()

		plan, err := planner.Plan(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] plan failed: %v\n", time.Now().Format("15:04:05"), err)
			return
		}
		printWatchPlan(out, plan)
	}

	report()

	gitDir, err := repo.GitDir()
	if err != nil {
		return err
	}

	w := watcher.New(gitDir, watchDebounceFlag, report)
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	fmt.Fprintln(out, "\nStopped watching.")
	return nil
}

func printWatchPlan(out io.Writer, plan *release.Plan) {
	prev := "(no release)"
	if !plan.FirstRelease() {
		prev = plan.Previous.String()
	}
	fmt.Fprintf(out, "[%s] %s -> %s  (%s, %d commits)\n",
		time.Now().Format("15:04:05"), prev, plan.Next, plan.Increment, len(plan.Commits))
}
