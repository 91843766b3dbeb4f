// Package sqlexport writes parsed DBC documents into a SQLite database for
// ad-hoc querying.
package sqlexport

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/huandu/go-sqlbuilder"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/golangcan/godbc/dbc"
	"github.com/golangcan/godbc/internal/types"
)

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) { e.Logger = types.Logger{L: logger} }
}

// Exporter writes documents into one SQLite database. Each Export call
// adds a new row to the documents table; earlier exports are kept.
type Exporter struct {
	db *sql.DB
	types.Logger
}

// schema lists the tables created by Open. Every table but documents
// carries the id of the document its rows belong to.
var schema = []*sqlbuilder.CreateTableBuilder{
	sqlbuilder.CreateTable("documents").IfNotExists().
		Define("id", "INTEGER", "PRIMARY KEY", "AUTOINCREMENT").
		Define("name", "TEXT", "NOT NULL").
		Define("version", "TEXT", "NOT NULL"),
	sqlbuilder.CreateTable("nodes").IfNotExists().
		Define("document_id", "INTEGER", "NOT NULL", "REFERENCES documents(id)").
		Define("name", "TEXT", "NOT NULL"),
	sqlbuilder.CreateTable("messages").IfNotExists().
		Define("document_id", "INTEGER", "NOT NULL", "REFERENCES documents(id)").
		Define("message_id", "INTEGER", "NOT NULL").
		Define("extended", "INTEGER", "NOT NULL").
		Define("name", "TEXT", "NOT NULL").
		Define("size", "INTEGER", "NOT NULL").
		Define("transmitter", "TEXT", "NOT NULL"),
	sqlbuilder.CreateTable("signals").IfNotExists().
		Define("document_id", "INTEGER", "NOT NULL", "REFERENCES documents(id)").
		Define("message_id", "INTEGER", "NOT NULL").
		Define("name", "TEXT", "NOT NULL").
		Define("multiplex", "TEXT", "NOT NULL").
		Define("start_bit", "INTEGER", "NOT NULL").
		Define("size", "INTEGER", "NOT NULL").
		Define("byte_order", "TEXT", "NOT NULL").
		Define("value_type", "TEXT", "NOT NULL").
		Define("factor", "REAL", "NOT NULL").
		Define("value_offset", "REAL", "NOT NULL").
		Define("minimum", "REAL", "NOT NULL").
		Define("maximum", "REAL", "NOT NULL").
		Define("unit", "TEXT", "NOT NULL").
		Define("receivers", "TEXT", "NOT NULL"),
	sqlbuilder.CreateTable("value_descriptions").IfNotExists().
		Define("document_id", "INTEGER", "NOT NULL", "REFERENCES documents(id)").
		Define("kind", "TEXT", "NOT NULL").
		Define("message_id", "INTEGER", "NOT NULL").
		Define("name", "TEXT", "NOT NULL").
		Define("value", "REAL", "NOT NULL").
		Define("label", "TEXT", "NOT NULL"),
	sqlbuilder.CreateTable("comments").IfNotExists().
		Define("document_id", "INTEGER", "NOT NULL", "REFERENCES documents(id)").
		Define("kind", "TEXT", "NOT NULL").
		Define("message_id", "INTEGER", "NOT NULL").
		Define("name", "TEXT", "NOT NULL").
		Define("text", "TEXT", "NOT NULL"),
	sqlbuilder.CreateTable("attribute_values").IfNotExists().
		Define("document_id", "INTEGER", "NOT NULL", "REFERENCES documents(id)").
		Define("name", "TEXT", "NOT NULL").
		Define("target", "TEXT", "NOT NULL").
		Define("message_id", "INTEGER", "NOT NULL").
		Define("object", "TEXT", "NOT NULL").
		Define("kind", "TEXT", "NOT NULL").
		Define("value", "TEXT"),
	sqlbuilder.CreateTable("environment_variables").IfNotExists().
		Define("document_id", "INTEGER", "NOT NULL", "REFERENCES documents(id)").
		Define("name", "TEXT", "NOT NULL").
		Define("type", "TEXT", "NOT NULL").
		Define("minimum", "INTEGER", "NOT NULL").
		Define("maximum", "INTEGER", "NOT NULL").
		Define("unit", "TEXT", "NOT NULL").
		Define("initial_value", "REAL", "NOT NULL").
		Define("ev_id", "INTEGER", "NOT NULL").
		Define("access_type", "TEXT", "NOT NULL").
		Define("access_nodes", "TEXT", "NOT NULL"),
}

// Open opens (creating if needed) the SQLite database at path and ensures
// the schema exists. Use ":memory:" for a private in-memory database.
func Open(ctx context.Context, path string, opts ...Option) (*Exporter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	e := &Exporter{db: db}
	for _, opt := range opts {
		opt(e)
	}
	for _, ctb := range schema {
		query, args := ctb.BuildWithFlavor(sqlbuilder.SQLite)
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	e.Log(slog.LevelDebug, "database ready", slog.String("path", path))
	return e, nil
}

// DB returns the underlying database handle for queries.
func (e *Exporter) DB() *sql.DB {
	return e.db
}

// Close closes the database.
func (e *Exporter) Close() error {
	return e.db.Close()
}

// Export writes doc under name in a single transaction and returns the id
// of the new documents row.
func (e *Exporter) Export(ctx context.Context, name string, doc *dbc.Document) (int64, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning export: %w", err)
	}
	id, err := e.export(ctx, tx, name, doc)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("exporting %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing %s: %w", name, err)
	}
	e.Log(slog.LevelDebug, "exported document",
		slog.String("name", name),
		slog.Int64("id", id),
		slog.Int("messages", len(doc.Messages())))
	return id, nil
}

func (e *Exporter) export(ctx context.Context, tx *sql.Tx, name string, doc *dbc.Document) (int64, error) {
	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.InsertInto("documents").Cols("name", "version").Values(name, doc.Version())
	query, args := ib.Build()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	w := &rowWriter{ctx: ctx, tx: tx, id: id}
	w.nodes(doc)
	w.messages(doc)
	w.valueDescriptions(doc)
	w.comments(doc)
	w.attributeValues(doc)
	w.envVars(doc)
	return id, w.err
}

// insertBatchSize caps the rows per INSERT statement. A signals row binds
// 14 parameters, which keeps a batch under SQLite's 32766 variable limit.
const insertBatchSize = 500

// rowWriter writes the rows of one table in INSERT batches of at most
// insertBatchSize rows. The first error stops all further writes.
type rowWriter struct {
	ctx context.Context
	tx  *sql.Tx
	id  int64
	err error
}

func (w *rowWriter) insert(table string, cols []string, rows [][]any) {
	cols = append([]string{"document_id"}, cols...)
	for batch := range slices.Chunk(rows, insertBatchSize) {
		if w.err != nil {
			return
		}
		ib := sqlbuilder.SQLite.NewInsertBuilder()
		ib.InsertInto(table).Cols(cols...)
		for _, row := range batch {
			ib.Values(append([]any{w.id}, row...)...)
		}
		query, args := ib.Build()
		if _, err := w.tx.ExecContext(w.ctx, query, args...); err != nil {
			w.err = fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
}

func (w *rowWriter) nodes(doc *dbc.Document) {
	var rows [][]any
	for _, n := range doc.NodeNames() {
		rows = append(rows, []any{n})
	}
	w.insert("nodes", []string{"name"}, rows)
}

func (w *rowWriter) messages(doc *dbc.Document) {
	var msgRows, sigRows [][]any
	for _, m := range doc.Messages() {
		msgRows = append(msgRows, []any{
			int64(m.ID()), m.ID().IsExtended(), m.Name(), int64(m.Size()), m.Transmitter().String(),
		})
		for _, s := range m.Signals() {
			sigRows = append(sigRows, []any{
				int64(m.ID()), s.Name(), s.Multiplex().String(),
				int64(s.StartBit()), int64(s.Size()),
				s.ByteOrder().String(), s.ValueType().String(),
				s.Factor(), s.Offset(), s.Min(), s.Max(), s.Unit(),
				strings.Join(s.Receivers(), ","),
			})
		}
	}
	w.insert("messages", []string{"message_id", "extended", "name", "size", "transmitter"}, msgRows)
	w.insert("signals", []string{
		"message_id", "name", "multiplex", "start_bit", "size", "byte_order", "value_type",
		"factor", "value_offset", "minimum", "maximum", "unit", "receivers",
	}, sigRows)
}

func (w *rowWriter) valueDescriptions(doc *dbc.Document) {
	var rows [][]any
	for _, vd := range doc.ValueDescriptions() {
		for _, p := range vd.Pairs() {
			rows = append(rows, []any{vd.Kind().String(), int64(vd.MessageID()), vd.Name(), p.Value, p.Label})
		}
	}
	w.insert("value_descriptions", []string{"kind", "message_id", "name", "value", "label"}, rows)
}

func (w *rowWriter) comments(doc *dbc.Document) {
	var rows [][]any
	for _, c := range doc.Comments() {
		rows = append(rows, []any{c.Kind().String(), int64(c.MessageID()), c.Name(), c.Text()})
	}
	w.insert("comments", []string{"kind", "message_id", "name", "text"}, rows)
}

func (w *rowWriter) attributeValues(doc *dbc.Document) {
	var rows [][]any
	for _, a := range doc.AttributeValues() {
		var value any
		if v := a.Value(); !v.IsNone() {
			if v.Kind() == dbc.ValueString {
				value = v.Text()
			} else {
				value = v.String()
			}
		}
		rows = append(rows, []any{
			a.Name(), a.Target().String(), int64(a.MessageID()), a.Object(), a.Value().Kind().String(), value,
		})
	}
	w.insert("attribute_values", []string{"name", "target", "message_id", "object", "kind", "value"}, rows)
}

func (w *rowWriter) envVars(doc *dbc.Document) {
	var rows [][]any
	for _, e := range doc.EnvironmentVariables() {
		nodes := make([]string, 0, len(e.AccessNodes()))
		for _, n := range e.AccessNodes() {
			nodes = append(nodes, n.String())
		}
		rows = append(rows, []any{
			e.Name(), e.Type().String(), e.Min(), e.Max(), e.Unit(), e.InitialValue(),
			e.ID(), e.AccessType().Keyword(), strings.Join(nodes, ","),
		})
	}
	w.insert("environment_variables", []string{
		"name", "type", "minimum", "maximum", "unit", "initial_value", "ev_id", "access_type", "access_nodes",
	}, rows)
}
