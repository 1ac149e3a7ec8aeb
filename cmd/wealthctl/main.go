// Command wealthctl computes progress reports and chart series offline, from a
// JSON snapshot of assets, transactions and one objective.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&progressCmd{}, "reports")
	commander.Register(&chartCmd{}, "reports")
	commander.Register(&holdingsCmd{}, "reports")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
