// apiserver runs the TalentMatch-AI HTTP API without the CLI wrapper, for
// container images where a single fixed entry point is preferred.
package main

import (
	"fmt"
	"os"

	"github.com/turtacn/TalentMatch-AI/internal/interfaces/cli"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate

	root := cli.NewRootCommand()
	root.SetArgs(append([]string{"serve"}, os.Args[1:]...))
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
