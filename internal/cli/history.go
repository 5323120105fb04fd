// history.go implements the "freeflow history" command.
package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent dives",
	RunE:  runHistory,
}

var limitFlag int

func init() {
	historyCmd.Flags().IntVar(&limitFlag, "limit", 20, "Number of dives to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	store, err := e.requireStore()
	if err != nil {
		return err
	}
	dives, err := store.ListDives(limitFlag)
	if err != nil {
		return fmt.Errorf("listing dives: %w", err)
	}
	if len(dives) == 0 {
		fmt.Println("No dives yet. Start one with: freeflow")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENDED\tVARIANT\tSCORE\tTIER\tTAPS\tID")
	for _, d := range dives {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%d\t%s\n",
			d.EndedAt.Local().Format("2006-01-02 15:04"), d.Variant, d.Score, d.Tier, d.Taps, shortID(d.ID))
	}
	return w.Flush()
}

// shortID trims a UUID for table output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
