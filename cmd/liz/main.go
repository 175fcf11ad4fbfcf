// Command liz stores keyboard shortcuts and replays them as keystrokes.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/liz/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
