package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/golangcan/godbc"
	"github.com/golangcan/godbc/dbc"
)

type lintConfig struct {
	strict  bool
	ignore  []string
	format  string
	summary bool
}

type lintResult struct {
	Diagnostics []lintDiagnostic `json:"diagnostics,omitempty"`
	Summary     lintSummary      `json:"summary"`
}

type lintDiagnostic struct {
	File       string `json:"file"`
	Severity   string `json:"severity"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type lintSummary struct {
	Total      int            `json:"total"`
	BySeverity map[string]int `json:"by_severity"`
	Files      int            `json:"files"`
}

func (c *cli) lintCommand() *cobra.Command {
	cfg := lintConfig{format: "text"}
	cmd := &cobra.Command{
		Use:   "lint FILE...",
		Short: "Check that annotations reference declared objects",
		Long: `Check DBC files for references that do not resolve: comments, attributes,
value descriptions and signal groups naming unknown messages, signals, nodes or
environment variables, and signals that do not fit their message.

Exits 1 when any error is reported. With --strict, informational notices are
included and any finding exits 2.`,
		Example: `  godbc lint network.dbc
  godbc lint --strict network.dbc
  godbc lint --ignore 'unknown-*' network.dbc
  godbc lint --format json network.dbc`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if cfg.format != "text" && cfg.format != "json" {
				return fmt.Errorf("unknown format %q (want text or json)", cfg.format)
			}
			result, err := c.lint(args, cfg)
			if err != nil {
				return err
			}
			if err := c.printLint(result, cfg); err != nil {
				return err
			}
			if code := lintExitCode(result, cfg); code != exitOK {
				return exitCode(code)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&cfg.strict, "strict", false, "report informational notices and fail on any finding")
	cmd.Flags().StringSliceVar(&cfg.ignore, "ignore", nil, "ignore diagnostic codes (repeatable, supports globs like \"unknown-*\")")
	cmd.Flags().StringVar(&cfg.format, "format", cfg.format, "output format: text or json")
	cmd.Flags().BoolVar(&cfg.summary, "summary", false, "show summary only")
	return cmd
}

func (c *cli) lint(paths []string, cfg lintConfig) (*lintResult, error) {
	vcfg := dbc.DefaultValidateConfig()
	if cfg.strict {
		vcfg = dbc.StrictValidateConfig()
	}
	vcfg.Ignore = cfg.ignore

	result := &lintResult{
		Summary: lintSummary{BySeverity: make(map[string]int), Files: len(paths)},
	}
	for _, path := range paths {
		doc, err := c.load(path)
		if err != nil {
			return nil, err
		}
		for _, d := range godbc.Validate(doc, vcfg) {
			result.Diagnostics = append(result.Diagnostics, lintDiagnostic{
				File:       path,
				Severity:   d.Severity.String(),
				Code:       d.Code,
				Message:    d.Message,
				Line:       d.Line,
				Column:     d.Column,
				Suggestion: d.Suggestion,
			})
			result.Summary.BySeverity[d.Severity.String()]++
		}
	}
	result.Summary.Total = len(result.Diagnostics)
	return result, nil
}

func (c *cli) printLint(result *lintResult, cfg lintConfig) error {
	if cfg.format == "json" {
		b, err := marshalJSON(result, true)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, string(b))
		return nil
	}

	if !cfg.summary {
		for _, d := range result.Diagnostics {
			loc := d.File
			if d.Line > 0 {
				loc = fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
			}
			fmt.Fprintf(c.stdout, "%s: %s [%s] %s", loc, d.Severity, d.Code, d.Message)
			if d.Suggestion != "" {
				fmt.Fprintf(c.stdout, " (did you mean %s?)", d.Suggestion)
			}
			fmt.Fprintln(c.stdout)
		}
	}

	if result.Summary.Total == 0 {
		fmt.Fprintln(c.stdout, "no issues found")
		return nil
	}
	fmt.Fprintf(c.stdout, "%d issue(s)", result.Summary.Total)
	for _, sev := range slices.Sorted(maps.Keys(result.Summary.BySeverity)) {
		fmt.Fprintf(c.stdout, ", %d %s", result.Summary.BySeverity[sev], sev)
	}
	fmt.Fprintln(c.stdout)
	return nil
}

func lintExitCode(result *lintResult, cfg lintConfig) int {
	if result.Summary.BySeverity[dbc.SeverityError.String()] > 0 {
		return exitError
	}
	if cfg.strict && result.Summary.Total > 0 {
		return exitWarning
	}
	return exitOK
}
