package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	configPath := flag.String("config", "", "path to a cadctl.toml (built-in defaults when empty)")
	output := flag.String("output", "", "override the configured output directory")
	strict := flag.Bool("strict", false, "exit non-zero when any mate pair fails")
	flipped := flag.Bool("flipped", false, "request the flipped alignment first to demonstrate interference rollback")
	flag.Parse()

	if err := run(*configPath, *output, *strict, *flipped); err != nil {
		fmt.Fprintf(os.Stderr, "cadctl: %v\n", err)
		os.Exit(1)
	}
}
