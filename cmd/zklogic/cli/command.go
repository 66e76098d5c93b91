// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is one node of the zklogic command tree. A group sets
// Subcommands; a leaf sets Run and, if it takes flags, Flags.
type Command struct {
	Name string

	// Summary is the one-line description listed in the parent's help.
	Summary string

	// Description opens the command's own help. Summary is used when
	// it is empty.
	Description string

	// Usage is synthesized from the command path when empty.
	Usage string

	Examples []Example

	// Flags builds a flag set bound to the command's params. It is
	// called once to parse and again whenever help is rendered.
	Flags func() *pflag.FlagSet

	Subcommands []*Command

	// Run receives the positional arguments left after flag parsing.
	Run func(args []string) error

	// HelpOutput receives help text. Nil inherits from the parent, and
	// the root falls back to os.Stderr.
	HelpOutput io.Writer

	parent *Command
}

// Example is a usage example shown in help output.
type Example struct {
	Description string
	Command     string
}

// Execute routes args down the tree and runs the selected leaf.
// Command-line mistakes are returned as *UsageError.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.helpOutput())
		return nil
	}
	if len(c.Subcommands) > 0 {
		return c.dispatch(args)
	}
	if c.Run == nil {
		return fmt.Errorf("command %q has neither Run nor Subcommands", c.fullName())
	}

	positional, err := c.parseFlags(args)
	if errors.Is(err, pflag.ErrHelp) {
		c.PrintHelp(c.helpOutput())
		return nil
	}
	if err != nil {
		return err
	}
	return c.Run(positional)
}

// dispatch hands args[1:] to the subcommand named by args[0].
func (c *Command) dispatch(args []string) error {
	if len(args) == 0 {
		c.PrintHelp(c.helpOutput())
		return Usagef("subcommand required")
	}
	if strings.HasPrefix(args[0], "-") {
		c.PrintHelp(c.helpOutput())
		return Usagef("subcommand required (got flag %q)", args[0])
	}

	name := args[0]
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			sub.parent = c
			return sub.Execute(args[1:])
		}
	}

	names := make([]string, len(c.Subcommands))
	for i, sub := range c.Subcommands {
		names[i] = sub.Name
	}
	if suggestion := closest(name, names); suggestion != "" {
		return c.usageError("unknown command %q (did you mean %q?)", name, suggestion)
	}
	return c.usageError("unknown command %q", name)
}

// parseFlags parses args and returns the positional remainder. A leaf
// without Flags still parses against an empty set, so stray flags and a
// trailing --help are recognized rather than passed to Run.
func (c *Command) parseFlags(args []string) ([]string, error) {
	flagSet := c.flagSet()
	flagSet.SetOutput(io.Discard)

	err := flagSet.Parse(args)
	if err == nil {
		return flagSet.Args(), nil
	}
	if errors.Is(err, pflag.ErrHelp) {
		return nil, err
	}

	// pflag reports "unknown flag: --x" and "unknown shorthand flag: 'x' in -x".
	message := err.Error()
	if strings.HasPrefix(message, "unknown") {
		// The failed parse may have half-populated the first set.
		if suggestion := suggestFlag(args, c.flagSet()); suggestion != "" {
			return nil, c.usageError("%s (did you mean %s?)", message, suggestion)
		}
	}
	return nil, c.usageError("%s", message)
}

func (c *Command) flagSet() *pflag.FlagSet {
	if c.Flags == nil {
		return pflag.NewFlagSet(c.Name, pflag.ContinueOnError)
	}
	return c.Flags()
}

func (c *Command) usageError(format string, args ...any) error {
	message := fmt.Sprintf(format, args...)
	return Usagef("%s\n\nRun '%s --help' for usage.", message, c.fullName())
}

// PrintHelp writes the command's help to w: description, usage,
// subcommands, flags, and examples.
func (c *Command) PrintHelp(w io.Writer) {
	description := c.Description
	if description == "" {
		description = c.Summary
	}
	if description != "" {
		fmt.Fprintf(w, "%s\n\n", description)
	}

	fmt.Fprintf(w, "Usage:\n  %s\n", c.usageLine())
	c.writeSubcommands(w)
	c.writeFlags(w)
	c.writeExamples(w)

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", c.fullName())
	}
}

func (c *Command) usageLine() string {
	switch {
	case c.Usage != "":
		return c.Usage
	case len(c.Subcommands) > 0:
		return c.fullName() + " <command> [flags]"
	default:
		return c.fullName() + " [flags]"
	}
}

func (c *Command) writeSubcommands(w io.Writer) {
	if len(c.Subcommands) == 0 {
		return
	}
	fmt.Fprintf(w, "\nCommands:\n")
	table := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	for _, sub := range c.Subcommands {
		fmt.Fprintf(table, "  %s\t%s\n", sub.Name, sub.Summary)
	}
	table.Flush()
}

func (c *Command) writeFlags(w io.Writer) {
	if c.Flags == nil {
		return
	}
	var defaults strings.Builder
	flagSet := c.Flags()
	flagSet.SetOutput(&defaults)
	flagSet.PrintDefaults()
	if defaults.Len() > 0 {
		fmt.Fprintf(w, "\nFlags:\n%s", defaults.String())
	}
}

func (c *Command) writeExamples(w io.Writer) {
	if len(c.Examples) == 0 {
		return
	}
	fmt.Fprintf(w, "\nExamples:\n")
	for _, example := range c.Examples {
		if example.Description == "" {
			fmt.Fprintf(w, "  %s\n", example.Command)
			continue
		}
		fmt.Fprintf(w, "  # %s\n  %s\n\n", example.Description, example.Command)
	}
}

// helpOutput walks up to the nearest command with HelpOutput set.
func (c *Command) helpOutput() io.Writer {
	for command := c; command != nil; command = command.parent {
		if command.HelpOutput != nil {
			return command.HelpOutput
		}
	}
	return os.Stderr
}

// fullName returns the command path, e.g. "zklogic merkle proof".
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
