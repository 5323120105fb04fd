// dive.go implements the "freeflow dive" command: a dive without the
// lock screen, printing events as they happen.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/freeflow-dev/freeflow/internal/clock"
	"github.com/freeflow-dev/freeflow/internal/dive"
	"github.com/freeflow-dev/freeflow/internal/history"
	"github.com/freeflow-dev/freeflow/internal/log"
	"github.com/freeflow-dev/freeflow/internal/ui"
)

var diveCmd = &cobra.Command{
	Use:   "dive",
	Short: "Run a dive without the lock screen",
	Long: `Run a dive in the current terminal, printing every notification,
dismissal and the final tier. Press Enter to tap the newest notification
and Ctrl+C to surface early.`,
	RunE: runDive,
}

var (
	variantFlag  string
	durationFlag time.Duration
	plainFlag    bool
)

func init() {
	diveCmd.Flags().StringVar(&variantFlag, "variant", "", "Variant to dive (default from config)")
	diveCmd.Flags().DurationVar(&durationFlag, "duration", 0, "Override the variant duration (e.g. 10m)")
	diveCmd.Flags().BoolVar(&plainFlag, "plain", false, "Plain output without a status line")
}

func runDive(cmd *cobra.Command, args []string) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	name := variantFlag
	if name == "" {
		name = e.Cfg.Variant
	}
	preset, err := e.Cfg.Preset(name)
	if err != nil {
		return err
	}
	if durationFlag > 0 {
		preset.DurationSeconds = durationFlag.Seconds()
	}

	printer := ui.NewPrinter()
	if plainFlag {
		printer = ui.NewPlainPrinter(os.Stdout)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg := dive.ConfigFor(name, preset)
	cfg.Logger = e.Log
	h := &headless{
		loop:    clock.NewLoop(256),
		printer: printer,
		journal: e.Journal,
		log:     e.Log,
		tick:    e.Cfg.Tick(),
	}
	h.session = dive.New(cfg, h.loop)

	go readTaps(ctx, h.loop, h.session)

	r, err := h.run(ctx)
	if err != nil {
		return err
	}

	if e.Store != nil {
		if _, err := e.Store.RecordDive(r); err != nil {
			return fmt.Errorf("recording dive: %w", err)
		}
		if best, err := e.Store.Best(); err == nil && best.ID == r.ID {
			fmt.Println("  New personal best.")
		} else if err != nil && !errors.Is(err, history.ErrNotFound) {
			e.Log.WithError(err).Warn("loading best dive")
		}
	}
	return nil
}

// headless drives one session on a clock loop.
type headless struct {
	session *dive.Session
	loop    *clock.Loop
	printer *ui.Printer
	journal *log.Logger
	log     logrus.FieldLogger
	tick    time.Duration
}

// run starts the session and serves the loop until the dive completes or
// ctx is cancelled, which surfaces the diver.
func (h *headless) run(ctx context.Context) (dive.Result, error) {
	if err := h.session.Start(); err != nil {
		return dive.Result{}, fmt.Errorf("start dive: %w", err)
	}
	h.record(log.DiveStarted(h.session))
	h.printer.Start(h.session.Snapshot())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ticker.C:
				h.loop.Post(func() {
					h.session.Tick()
					h.printer.Status(h.session.Snapshot())
				})
			case <-ctx.Done():
				h.loop.Post(h.session.Stop)
				return
			}
		}
	}()

	err := h.loop.Serve(context.Background(), h.flush)
	if err != nil {
		return dive.Result{}, err
	}

	r := h.session.Result()
	h.printer.Finish(r)
	return r, nil
}

// flush prints and journals queued events, closing the loop once the dive
// is over. It runs on the loop goroutine.
func (h *headless) flush() {
	events := h.session.Drain()
	snap := h.session.Snapshot()
	for _, e := range events {
		h.printer.Event(e, snap)
	}
	h.record(log.DiveEvents(h.session, events)...)
	if h.session.Status() == dive.StatusComplete {
		h.loop.Close()
	}
}

func (h *headless) record(entries ...log.LogEvent) {
	if h.journal == nil || len(entries) == 0 {
		return
	}
	if err := h.journal.AppendAll(entries); err != nil {
		h.log.WithError(err).Warn("journal append failed")
	}
}

// readTaps turns each line on stdin into a tap on the newest notification.
func readTaps(ctx context.Context, loop *clock.Loop, s *dive.Session) {
	buf := make([]byte, 64)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || ctx.Err() != nil {
			return
		}
		for _, b := range buf[:n] {
			if b == '\n' {
				loop.Post(func() { s.TapNewest() })
			}
		}
	}
}
