package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func (c *cli) dumpCommand() *cobra.Command {
	var (
		format  string
		compact bool
	)
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Output the full document as JSON or YAML",
		Example: `  godbc dump network.dbc
  godbc dump --compact network.dbc | jq '.messages[].name'
  godbc dump --format yaml network.dbc`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if format != formatJSON && format != formatYAML {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatYAML)
			}
			doc, err := c.load(args[0])
			if err != nil {
				return err
			}
			out, err := encodeDump(buildDumpOutput(doc), format, compact)
			if err != nil {
				return err
			}
			_, err = c.stdout.Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or yaml")
	cmd.Flags().BoolVar(&compact, "compact", false, "minified JSON (no indentation)")
	return cmd
}

func encodeDump(out *DumpOutput, format string, compact bool) ([]byte, error) {
	if format == formatYAML {
		b, err := yaml.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return b, nil
	}
	b, err := marshalJSON(out, !compact)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(b, '\n'), nil
}
