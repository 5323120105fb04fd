// Package cli defines Cobra command definitions for the freeflow CLI.
// This file contains the root command, global flags, and help output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/freeflow-dev/freeflow/internal/tui"
	"github.com/freeflow-dev/freeflow/internal/tui/app"
)

var (
	homeFlag string
	debug    bool
	version  = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "freeflow",
	Short: "A dopamine-detox dive for your terminal",
	Long: `FreeFlow turns your terminal into a simulated lock screen.
Notifications keep arriving on a schedule that slowly thins out.
Let them pass and you sink deeper; tap them and you drift back up.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch TUI if TTY, show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}

		env, err := openEnv(true)
		if err != nil {
			return err
		}
		defer env.Close()

		tuiApp := app.New(env.Cfg, env.Home, env.Store, env.Journal, env.Log)
		return tui.Run(tuiApp)
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "Data directory (default ~/.freeflow, or $FREEFLOW_HOME)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug diagnostics")

	rootCmd.AddCommand(diveCmd)
	rootCmd.AddCommand(curveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(cleanCmd)
}
