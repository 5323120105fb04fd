// Command freeflow runs dopamine-detox dives in the terminal.
package main

import "github.com/freeflow-dev/freeflow/internal/cli"

func main() {
	cli.Execute()
}
