// Package main is the entry point of the dtsstyle command.
package main

import (
	"context"
	"os"

	"github.com/leapstack-labs/dtsstyle/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
