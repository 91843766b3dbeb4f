package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/golangcan/godbc"
)

func (c *cli) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE...",
		Short: "Re-parse files whenever they change",
		Long: `Parse each file, then parse it again every time it is written, printing a
summary per parse. Runs until interrupted.`,
		Example: `  godbc watch network.dbc`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := godbc.NewWatcher(args, c.printResult, c.options()...)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return w.Run(ctx)
		},
	}
}

func (c *cli) printResult(r godbc.Result) {
	switch {
	case r.Document == nil:
		c.printError("%s: %v", r.Path, r.Err)
	case errors.Is(r.Err, godbc.ErrIncomplete):
		fmt.Fprintf(c.stdout, "%s: %s (%s)\n", r.Path, summary(r.Document), r.Duration)
		c.printWarning("%s: %v", r.Path, r.Err)
	default:
		fmt.Fprintf(c.stdout, "%s: %s (%s)\n", r.Path, summary(r.Document), r.Duration)
	}
}
