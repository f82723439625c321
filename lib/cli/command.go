// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework shared by the vending
// binaries: a [Command] tree with pflag parsing and generated help, the
// process logger, and JSON output.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is a CLI command or subcommand.
type Command struct {
	// Name is the command name as typed by the user.
	Name string

	// Summary is a one-line description shown in the parent's listing.
	Summary string

	// Description is shown in the command's own help output.
	Description string

	// Usage overrides the synthesized usage line.
	Usage string

	// Examples are shown after the description.
	Examples []Example

	// Flags returns a configured flag set. Called once per parse. Nil
	// means the command takes no flags.
	Flags func() *pflag.FlagSet

	// Subcommands are dispatched by the first positional argument.
	Subcommands []*Command

	// Run executes the command with the positional arguments left
	// after flag parsing.
	Run func(args []string) error

	// Output receives help text. Default: inherited from the parent,
	// or io.Discard at the root.
	Output io.Writer

	parent *Command
}

// Example is a usage example shown in help output.
type Example struct {
	Description string
	Command     string
}

// UsageError reports a command line that could not be understood.
type UsageError struct {
	Message string
}

func (err *UsageError) Error() string { return err.Message }

// ExitCode lets main exit with status 2 for usage errors.
func (err *UsageError) ExitCode() int { return 2 }

// Usagef returns a UsageError.
func Usagef(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// Execute parses args and dispatches to the matching subcommand or Run.
func (command *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		command.PrintHelp(command.output())
		return nil
	}

	if len(command.Subcommands) > 0 && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name := args[0]
		for _, sub := range command.Subcommands {
			if sub.Name == name {
				sub.parent = command
				return sub.Execute(args[1:])
			}
		}
		return Usagef("unknown command %q\n\nRun '%s --help' for usage.", name, command.fullName())
	}

	if len(command.Subcommands) > 0 && command.Run == nil {
		command.PrintHelp(command.output())
		return Usagef("subcommand required")
	}

	if command.Flags != nil {
		flagSet := command.Flags()
		flagSet.SetOutput(io.Discard)
		if err := flagSet.Parse(args); err != nil {
			if err == pflag.ErrHelp {
				command.PrintHelp(command.output())
				return nil
			}
			return Usagef("%s\n\nRun '%s --help' for usage.", err, command.fullName())
		}
		args = flagSet.Args()
	}

	if command.Run == nil {
		command.PrintHelp(command.output())
		return fmt.Errorf("no action defined for %q", command.fullName())
	}
	return command.Run(args)
}

// PrintHelp writes the command's help to w.
func (command *Command) PrintHelp(w io.Writer) {
	name := command.fullName()

	if command.Description != "" {
		fmt.Fprintf(w, "%s\n\n", command.Description)
	} else if command.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", command.Summary)
	}

	switch {
	case command.Usage != "":
		fmt.Fprintf(w, "Usage:\n  %s\n", command.Usage)
	case len(command.Subcommands) > 0:
		fmt.Fprintf(w, "Usage:\n  %s <command> [flags]\n", name)
	default:
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", name)
	}

	if len(command.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range command.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		tw.Flush()
	}

	if command.Flags != nil {
		var flagHelp strings.Builder
		flagSet := command.Flags()
		flagSet.SetOutput(&flagHelp)
		flagSet.PrintDefaults()
		if flagHelp.Len() > 0 {
			fmt.Fprintf(w, "\nFlags:\n%s", flagHelp.String())
		}
	}

	if len(command.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range command.Examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
		}
	}

	if len(command.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

func (command *Command) output() io.Writer {
	for current := command; current != nil; current = current.parent {
		if current.Output != nil {
			return current.Output
		}
	}
	return io.Discard
}

func (command *Command) fullName() string {
	if command.parent == nil {
		return command.Name
	}
	return command.parent.fullName() + " " + command.Name
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
