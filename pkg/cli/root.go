package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nigelhorne/schema-validator/pkg/report"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=v1.2.3"
var Version = "dev"

// Command represents a CLI command
type Command struct {
	Name        string
	Description string
	Run         func(args []string) error
	Subcommands map[string]*Command
	Flags       *flag.FlagSet

	stdout io.Writer
}

// ExitError carries a process exit status out of a command
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an Execute error to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return report.ExitFailure
}

// NewRootCommand creates the root command. Running it with flags and no
// subcommand name is the same as "validate".
func NewRootCommand(stdout, stderr io.Writer) *Command {
	root := &Command{
		Name:        "schema-validator",
		Description: "Validate schema.org JSON-LD structured data",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("schema-validator", flag.ContinueOnError),
		stdout:      stdout,
	}

	// Add subcommands
	root.Subcommands["validate"] = newValidateCommand(stdout, stderr)
	root.Subcommands["rules"] = newRulesCommand(stdout)
	root.Subcommands["version"] = newVersionCommand(stdout)

	return root
}

// Execute runs the command with args (without the program name)
func (c *Command) Execute(args []string) error {
	if len(args) == 0 {
		c.usage()
		return &ExitError{Code: report.ExitFailure, Err: errors.New("--file is required")}
	}

	// Check for help flag
	if args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		c.usage()
		return nil
	}

	// Check for subcommand
	if subcmd, ok := c.Subcommands[args[0]]; ok {
		return subcmd.Run(args[1:])
	}

	if strings.HasPrefix(args[0], "-") {
		return c.Subcommands["validate"].Run(args)
	}

	return &ExitError{Code: report.ExitFailure, Err: fmt.Errorf("unknown command: %s", args[0])}
}

// usage prints the command usage
func (c *Command) usage() {
	fmt.Fprintf(c.stdout, "Usage: %s [command] --file <path-or-url> [flags]\n\n", c.Name)
	fmt.Fprintf(c.stdout, "Commands:\n")

	names := make([]string, 0, len(c.Subcommands))
	for name := range c.Subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(c.stdout, "  %-15s %s\n", name, c.Subcommands[name].Description)
	}
}

func newRulesCommand(stdout io.Writer) *Command {
	return &Command{
		Name:        "rules",
		Description: "List rule ids and their exit codes",
		Run: func(args []string) error {
			return writeRules(stdout)
		},
	}
}

func newVersionCommand(stdout io.Writer) *Command {
	return &Command{
		Name:        "version",
		Description: "Print the version",
		Run: func(args []string) error {
			_, err := fmt.Fprintf(stdout, "schema-validator %s\n", Version)
			return err
		},
	}
}

func writeRules(w io.Writer) error {
	rules := report.Catalogue()
	fmt.Fprintf(w, "Available rules (%d):\n\n", len(rules))
	for _, r := range rules {
		if _, err := fmt.Fprintf(w, "  %-14s exit %-3d %-24s %s\n", r.ID, r.ExitCode, r.Name, r.Description); err != nil {
			return err
		}
	}
	return nil
}
