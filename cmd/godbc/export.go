package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golangcan/godbc/export/sqlexport"
)

func (c *cli) exportCommand() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "export FILE...",
		Short: "Write documents into a SQLite database",
		Long: `Write each file into the SQLite database given by --db, creating the tables
if needed. Each file becomes one row of the documents table, named after the
file without its extension.`,
		Example: `  godbc export --db networks.db powertrain.dbc body.dbc
  sqlite3 networks.db 'SELECT name, size FROM messages'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				return errors.New("no database specified (use --db)")
			}
			var opts []sqlexport.Option
			if logger := c.setupLogger(); logger != nil {
				opts = append(opts, sqlexport.WithLogger(logger))
			}
			e, err := sqlexport.Open(cmd.Context(), dbPath, opts...)
			if err != nil {
				return err
			}
			defer e.Close()

			for _, path := range args {
				doc, err := c.load(path)
				if err != nil {
					return err
				}
				name := documentName(path)
				id, err := e.Export(cmd.Context(), name, doc)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.stdout, "exported %s as document %d\n", name, id)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "path of the SQLite database")
	return cmd
}
