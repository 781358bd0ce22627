package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nigelhorne/schema-validator/pkg/cli"
)

func main() {
	rootCmd := cli.NewRootCommand(os.Stdout, os.Stderr)

	err := rootCmd.Execute(os.Args[1:])

	// Findings already went to stdout; only report real failures
	var exitErr *cli.ExitError
	if err != nil && (!errors.As(err, &exitErr) || exitErr.Err != nil) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	os.Exit(cli.ExitCode(err))
}
