// clean.go implements the "freeflow clean" command for pruning old dives.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/freeflow-dev/freeflow/internal/cleanup"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove old dives",
	Long: `Remove old dives from the history database and the journal.

By default, removes dives older than the configured max_age_days.
Use --keep to keep only the N most recent dives as well.
Use --dry-run to preview what would be removed.`,
	RunE: runClean,
}

var (
	daysFlag   int
	keepFlag   int
	dryRunFlag bool
)

func init() {
	cleanCmd.Flags().IntVar(&daysFlag, "days", 0, "Remove dives older than N days (default history.max_age_days)")
	cleanCmd.Flags().IntVar(&keepFlag, "keep", 0, "Keep only the last N dives (0 = age-based only)")
	cleanCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Preview what would be removed without deleting")
}

func runClean(cmd *cobra.Command, args []string) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	store, err := e.requireStore()
	if err != nil {
		return err
	}

	policy := cleanup.Policy{MaxAgeDays: e.Cfg.History.MaxAgeDays, Keep: keepFlag}
	if cmd.Flags().Changed("days") {
		policy.MaxAgeDays = daysFlag
	}

	rep, err := cleanup.Prune(store, e.Journal.Path(), policy, dryRunFlag)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	if len(rep.Dives) == 0 {
		fmt.Println("No dives to clean up.")
		return nil
	}

	verb := "Removed"
	if dryRunFlag {
		verb = "Would remove"
	}
	for _, id := range rep.Dives {
		fmt.Printf("  %s %s\n", verb, id)
	}
	fmt.Printf("%s %d dive(s) and %d journal line(s).\n", verb, len(rep.Dives), rep.JournalLines)
	return nil
}
