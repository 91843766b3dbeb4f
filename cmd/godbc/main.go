// Command godbc parses, inspects and exports CAN database (DBC) files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/golangcan/godbc"
)

// Exit codes.
const (
	exitOK      = 0 // success
	exitError   = 1 // user error, syntax error, or error diagnostic
	exitWarning = 2 // incomplete parse, or any finding in strict lint mode
)

// exitCode carries a non-zero exit status out of a command without
// printing anything further.
type exitCode int

func (c exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(c))
}

type cli struct {
	stdout            io.Writer
	stderr            io.Writer
	verbose           int
	integerAttributes bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	var code exitCode
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &code):
		return int(code)
	default:
		c.printError("%v", err)
		return exitError
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "godbc",
		Short: "CAN database (DBC) parser and query tool",
		Long: `godbc parses CAN database (DBC) files.

Every flag can also be set from the environment: GODBC_<FLAG> for global
flags and GODBC_<COMMAND>_<FLAG> for command flags, with dashes written as
underscores (e.g. GODBC_LINT_STRICT=true).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return checkEnvironmentVariables(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.CountVarP(&c.verbose, "verbose", "v", "enable debug logging (-vv for trace logging)")
	flags.BoolVar(&c.integerAttributes, "integer-attributes", false, "parse integral attribute values as integers")

	root.AddCommand(
		c.parseCommand(),
		c.dumpCommand(),
		c.messagesCommand(),
		c.signalsCommand(),
		c.lintCommand(),
		c.diffCommand(),
		c.exportCommand(),
		c.watchCommand(),
		c.versionCommand(),
	)
	return root
}

func (c *cli) setupLogger() *slog.Logger {
	if c.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.verbose >= 2 {
		level = godbc.LevelTrace
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func (c *cli) options() []godbc.Option {
	var opts []godbc.Option
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, godbc.WithLogger(logger))
	}
	if c.integerAttributes {
		opts = append(opts, godbc.WithIntegerAttributeValues())
	}
	return opts
}

// load parses path for commands that work on a document. An incomplete
// parse is reported as a warning and the partial document is used.
func (c *cli) load(path string) (*godbc.Document, error) {
	doc, err := godbc.ParseFile(path, c.options()...)
	if err != nil {
		if !errors.Is(err, godbc.ErrIncomplete) {
			return nil, err
		}
		c.printWarning("%v", err)
	}
	return doc, nil
}

func (c *cli) printError(format string, args ...any) {
	fmt.Fprintf(c.stderr, "error: "+format+"\n", args...)
}

func (c *cli) printWarning(format string, args ...any) {
	fmt.Fprintf(c.stderr, "warning: "+format+"\n", args...)
}

// documentName derives the name a document is stored under from its path.
func documentName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
