package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/golangcan/godbc"
	"github.com/golangcan/godbc/dbc"
)

const maxTableFieldLen = 40

func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetRowLine(false)
	table.SetAutoWrapText(false)
	return table
}

// truncateStr shortens s to maxTableFieldLen runes.
func truncateStr(s string) string {
	if utf8.RuneCountInString(s) <= maxTableFieldLen {
		return s
	}
	return string([]rune(s)[:maxTableFieldLen]) + "..."
}

// compileMatch compiles a --match pattern; an empty pattern matches all.
func compileMatch(pattern string) (glob.Glob, error) {
	if pattern == "" {
		return nil, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return g, nil
}

func matches(g glob.Glob, name string) bool {
	return g == nil || g.Match(name)
}

func (c *cli) messagesCommand() *cobra.Command {
	var match string
	cmd := &cobra.Command{
		Use:   "messages FILE",
		Short: "List messages as a table",
		Example: `  godbc messages network.dbc
  godbc messages --match 'Engine*' network.dbc`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			g, err := compileMatch(match)
			if err != nil {
				return err
			}
			doc, err := c.load(args[0])
			if err != nil {
				return err
			}
			table := newTable(c.stdout, "ID", "Name", "Size", "Transmitter", "Signals", "Comment")
			for _, m := range doc.Messages() {
				if !matches(g, m.Name()) {
					continue
				}
				comment, _ := doc.CommentFor(dbc.ObjectMessage, m.ID(), "")
				table.Append([]string{
					m.ID().String(),
					m.Name(),
					strconv.FormatUint(m.Size(), 10),
					m.Transmitter().String(),
					strconv.Itoa(m.SignalCount()),
					truncateStr(comment),
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVarP(&match, "match", "m", "", "only list messages whose name matches the glob")
	return cmd
}

func (c *cli) signalsCommand() *cobra.Command {
	var (
		message string
		match   string
	)
	cmd := &cobra.Command{
		Use:   "signals FILE",
		Short: "List signals as a table",
		Example: `  godbc signals network.dbc
  godbc signals --message Engine network.dbc
  godbc signals --message 100 --match 'T*' network.dbc`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			g, err := compileMatch(match)
			if err != nil {
				return err
			}
			doc, err := c.load(args[0])
			if err != nil {
				return err
			}
			var only *godbc.Message
			if message != "" {
				if only = findMessage(doc, message); only == nil {
					return fmt.Errorf("message %q not found", message)
				}
			}

			table := newTable(c.stdout, "Message", "Signal", "Mux", "Bits", "Order", "Type", "Scale", "Range", "Unit", "Receivers")
			for m, s := range doc.Signals() {
				if only != nil && m != only {
					continue
				}
				if !matches(g, s.Name()) {
					continue
				}
				table.Append([]string{
					m.Name(),
					s.Name(),
					s.Multiplex().String(),
					fmt.Sprintf("%d|%d", s.StartBit(), s.Size()),
					s.ByteOrder().String(),
					s.ValueType().String(),
					fmt.Sprintf("(%g,%g)", s.Factor(), s.Offset()),
					fmt.Sprintf("[%g|%g]", s.Min(), s.Max()),
					s.Unit(),
					truncateStr(strings.Join(s.Receivers(), ",")),
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&message, "message", "", "only list signals of the message with this id or name")
	cmd.Flags().StringVarP(&match, "match", "m", "", "only list signals whose name matches the glob")
	return cmd
}

// findMessage resolves a message by decimal id or by name.
func findMessage(doc *godbc.Document, ref string) *godbc.Message {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		if m := doc.Message(dbc.MessageID(id)); m != nil {
			return m
		}
	}
	return doc.MessageByName(ref)
}
