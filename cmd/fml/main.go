package main

import (
	"os"

	"github.com/roach88/fml/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
