package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golangcan/godbc"
)

func (c *cli) parseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse files and print a summary of each",
		Long: `Parse DBC files and print a one-line summary of each.

Exits 1 when any file has a syntax error and 2 when any file parsed only
partially. For partial parses the position of the unparsed remainder and the
furthest failure are printed.`,
		Example: `  godbc parse network.dbc
  godbc parse -v a.dbc b.dbc`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			code := exitOK
			for _, path := range args {
				code = max(code, c.parseOne(path))
			}
			if code != exitOK {
				return exitCode(code)
			}
			return nil
		},
	}
}

func (c *cli) parseOne(path string) int {
	doc, err := godbc.ParseFile(path, c.options()...)
	if doc == nil {
		c.printError("%v", err)
		return exitError
	}
	fmt.Fprintf(c.stdout, "%s: %s\n", path, summary(doc))

	var ierr *godbc.IncompleteError
	if errors.As(err, &ierr) {
		fmt.Fprintf(c.stdout, "  incomplete at line %d, col %d\n", ierr.Line, ierr.Column)
		if ierr.Cause != nil {
			fmt.Fprintf(c.stdout, "  cause: %s (%s)\n", ierr.Cause, ierr.Cause.Kind)
		}
		return exitWarning
	}
	return exitOK
}

func summary(doc *godbc.Document) string {
	signals := 0
	for _, m := range doc.Messages() {
		signals += m.SignalCount()
	}
	return fmt.Sprintf("version %q, %d nodes, %d messages, %d signals, %d comments, %d attributes",
		doc.Version(),
		len(doc.NodeNames()),
		len(doc.Messages()),
		signals,
		len(doc.Comments()),
		len(doc.AttributeValues()))
}
