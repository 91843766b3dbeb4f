package main

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

func (c *cli) diffCommand() *cobra.Command {
	var exitOnDiff bool
	cmd := &cobra.Command{
		Use:   "diff A B",
		Short: "Show a line diff of the JSON dumps of two files",
		Example: `  godbc diff old.dbc new.dbc
  godbc diff --exit-code old.dbc new.dbc`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := c.dumpText(args[0])
			if err != nil {
				return err
			}
			b, err := c.dumpText(args[1])
			if err != nil {
				return err
			}
			changed := c.printDiff(args[0], args[1], a, b)
			if !changed {
				fmt.Fprintln(c.stdout, "documents are identical")
				return nil
			}
			if exitOnDiff {
				return exitCode(exitError)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&exitOnDiff, "exit-code", false, "exit with 1 when the documents differ")
	return cmd
}

func (c *cli) dumpText(path string) (string, error) {
	doc, err := c.load(path)
	if err != nil {
		return "", err
	}
	b, err := encodeDump(buildDumpOutput(doc), formatJSON, false)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// printDiff writes removed and added lines and reports whether there
// were any.
func (c *cli) printDiff(nameA, nameB, a, b string) bool {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	changed := false
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		if !changed {
			fmt.Fprintf(c.stdout, "--- %s\n+++ %s\n", nameA, nameB)
			changed = true
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprint(c.stdout, prefix+line)
			if !strings.HasSuffix(line, "\n") {
				fmt.Fprintln(c.stdout)
			}
		}
	}
	return changed
}
