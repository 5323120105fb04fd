// report.go implements the "freeflow report" command for dive summaries.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/freeflow-dev/freeflow/internal/history"
	"github.com/freeflow-dev/freeflow/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [id]",
	Short: "Show a dive report",
	Long: `Display a detailed report of a finished dive: score, tier, taps,
time to first tap and the longest stretch without one. Defaults to the
most recent dive.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

var saveFlag bool

func init() {
	reportCmd.Flags().BoolVar(&saveFlag, "save", false, "Also write the report to <home>/reports/<id>.md")
}

func runReport(cmd *cobra.Command, args []string) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	store, err := e.requireStore()
	if err != nil {
		return err
	}

	var d *history.Dive
	if len(args) == 1 {
		d, err = store.GetDive(args[0])
	} else {
		d, err = store.Latest()
	}
	if errors.Is(err, history.ErrNotFound) {
		if len(args) == 1 {
			return fmt.Errorf("no dive with id %s", args[0])
		}
		return errors.New("no finished dives found. Start one with: freeflow")
	}
	if err != nil {
		return err
	}

	events, err := e.Journal.ReadDive(d.ID)
	if err != nil {
		e.Log.WithError(err).Warn("reading journal")
	}
	best, err := store.Best()
	if err != nil && !errors.Is(err, history.ErrNotFound) {
		return err
	}

	r := report.GenerateReport(*d, events, best)
	fmt.Print(report.FormatReport(r))

	if saveFlag {
		path, err := report.WriteReport(e.Home, r)
		if err != nil {
			return err
		}
		fmt.Printf("\nSaved to %s\n", path)
	}
	return nil
}
