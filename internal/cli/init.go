// init.go implements the "freeflow init" command.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/freeflow-dev/freeflow/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Long: `Create the data directory and write config.yaml with the built-in
variants (week1, lockscreen, spam, depth, budget). Edit the file to tune
spawn cadence, depth and tap budget.`,
	RunE: runInit,
}

var forceFlag bool

func init() {
	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config.yaml without asking")
}

func runInit(cmd *cobra.Command, args []string) error {
	home, err := resolveHome()
	if err != nil {
		return err
	}

	path := config.Path(home)
	if _, statErr := os.Stat(path); statErr == nil && !forceFlag {
		fmt.Printf("Warning: %s already exists.\n", path)
		fmt.Print("Overwrite? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if err := config.WriteConfig(home, cfg); err != nil {
		return err
	}

	fmt.Println("FreeFlow initialized")
	fmt.Printf("  Config:   %s\n", path)
	fmt.Printf("  Variant:  %s\n", cfg.Variant)
	fmt.Printf("  Variants: %s\n", strings.Join(cfg.VariantNames(), ", "))
	fmt.Println()
	fmt.Println("Start a dive with: freeflow")
	return nil
}
