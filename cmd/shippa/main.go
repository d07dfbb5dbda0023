package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/shippa-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "shippa: %v\n", err)
		os.Exit(1)
	}
}
