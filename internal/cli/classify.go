package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relver/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [message...]",
	Short: "Classify commit messages into release impact levels",
	Long: `Classify one or more commit messages and show the aggregate version
increment they would produce. Messages are read from the arguments, or
from stdin (one per line) when no arguments are given.

Examples:
  relver classify "feat: add watch mode"
  relver classify "fix: typo" "breaking: drop flag"
  git log --format=%s v1.2.0.. | relver classify`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClassify(cmd, args)
	},
}

func init() {
	classifyCmd.GroupID = GroupInspection
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	messages := args
	if len(messages) == 0 {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			messages = append(messages, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading messages from stdin: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	for _, m := range messages {
		fmt.Fprintf(out, "%-6s %s\n", classify.Classify(m), m)
	}

	fmt.Fprintf(out, "\naggregate: %s\n", classify.Aggregate(messages))
	return nil
}
