/*
Package main provides the command line tool to plot the GitHub contributions
per day of week. Usage:

	contribviolin <username>

The figure is saved to contributions.png, the summary is printed to stdout in YAML.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
