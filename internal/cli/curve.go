// curve.go implements the "freeflow curve" command, which prints how a
// variant spaces out its notifications.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/freeflow-dev/freeflow/internal/config"
	"github.com/freeflow-dev/freeflow/internal/dive"
	"github.com/freeflow-dev/freeflow/internal/spawn"
	"github.com/freeflow-dev/freeflow/internal/ui"
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Show the spawn interval over a dive",
	Long: `Print the spawn interval against elapsed time for a variant.
Decay variants are sampled every --step; fixed and burst variants print
one row per scheduler wake-up.`,
	RunE: runCurve,
}

var (
	curveVariantFlag string
	curveStepFlag    time.Duration
)

// maxCurveRows bounds the table for open-ended and very dense variants.
const maxCurveRows = 60

func init() {
	curveCmd.Flags().StringVar(&curveVariantFlag, "variant", "", "Variant to chart (default from config)")
	curveCmd.Flags().DurationVar(&curveStepFlag, "step", 0, "Sample spacing for decay variants (default duration/12)")
}

func runCurve(cmd *cobra.Command, args []string) error {
	home, err := resolveHome()
	if err != nil {
		return err
	}
	cfg, err := config.Load(home)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	name := curveVariantFlag
	if name == "" {
		name = cfg.Variant
	}
	v, err := cfg.Preset(name)
	if err != nil {
		return err
	}

	fmt.Printf("Variant %s (%s)\n\n", name, v.Spawn.Mode)
	return writeCurve(os.Stdout, v, curveStepFlag)
}

// writeCurve renders the interval table for v.
func writeCurve(w io.Writer, v config.Variant, step time.Duration) error {
	p := dive.PatternFor(v)
	if d, ok := p.(spawn.Decay); ok {
		return writeDecayCurve(w, d, step)
	}
	return writeSteps(w, p, v.Duration())
}

func writeDecayCurve(w io.Writer, d spawn.Decay, step time.Duration) error {
	total := d.Duration
	if total <= 0 {
		total = time.Hour
	}
	if step <= 0 {
		step = total / 12
	}
	if step < time.Second {
		step = time.Second
	}

	fmt.Fprintf(w, "%10s  %10s\n", "ELAPSED", "INTERVAL")
	rows := 0
	for at := time.Duration(0); at <= total && rows < maxCurveRows; at += step {
		if _, err := fmt.Fprintf(w, "%10s  %9.2fs\n", ui.FormatClock(at), d.IntervalSeconds(at.Seconds())); err != nil {
			return err
		}
		rows++
	}
	return nil
}

func writeSteps(w io.Writer, p spawn.Pattern, total time.Duration) error {
	p.Reset()
	fmt.Fprintf(w, "%10s  %10s  %s\n", "ELAPSED", "WAIT", "SPAWN")
	var at time.Duration
	for rows := 0; rows < maxCurveRows; rows++ {
		if total > 0 && at >= total {
			break
		}
		s := p.Next(at)
		mark := "-"
		if s.Spawn {
			mark = "yes"
		}
		if _, err := fmt.Fprintf(w, "%10s  %9.2fs  %s\n", ui.FormatClock(at), s.Delay.Seconds(), mark); err != nil {
			return err
		}
		if s.Delay <= 0 {
			break
		}
		at += s.Delay
	}
	return nil
}
