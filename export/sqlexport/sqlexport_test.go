package sqlexport

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huandu/go-sqlbuilder"
	"github.com/stretchr/testify/require"

	"github.com/golangcan/godbc"
)

func loadPowertrain(t *testing.T) *godbc.Document {
	t.Helper()
	doc, err := godbc.ParseFile("../../testdata/networks/powertrain.dbc")
	require.NoError(t, err)
	return doc
}

func count(t *testing.T, e *Exporter, table string, id int64) int {
	t.Helper()
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("count(*)").From(table).Where(sb.Equal("document_id", id))
	query, args := sb.Build()
	var n int
	require.NoError(t, e.DB().QueryRowContext(context.Background(), query, args...).Scan(&n))
	return n
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	e, err := Open(ctx, filepath.Join(t.TempDir(), "networks.db"))
	require.NoError(t, err)
	defer e.Close()

	id, err := e.Export(ctx, "powertrain", loadPowertrain(t))
	require.NoError(t, err)
	require.Positive(t, id)

	tests := []struct {
		table string
		want  int
	}{
		{"nodes", 3},
		{"messages", 2},
		{"signals", 4},
		{"value_descriptions", 3},
		{"comments", 5},
		{"attribute_values", 3},
		{"environment_variables", 1},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			require.Equal(t, tt.want, count(t, e, tt.table, id))
		})
	}
}

func TestExportRowContents(t *testing.T) {
	ctx := context.Background()
	e, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer e.Close()

	id, err := e.Export(ctx, "powertrain", loadPowertrain(t))
	require.NoError(t, err)

	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("unit", "factor", "receivers").From("signals").
		Where(sb.Equal("document_id", id), sb.Equal("name", "Speed"))
	query, args := sb.Build()
	var (
		unit, receivers string
		factor          float64
	)
	require.NoError(t, e.DB().QueryRowContext(ctx, query, args...).Scan(&unit, &factor, &receivers))
	require.Equal(t, "km/h", unit)
	require.InDelta(t, 0.1, factor, 1e-9)
	require.Equal(t, "Dash,ECU2", receivers)

	sb = sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("extended", "transmitter").From("messages").
		Where(sb.Equal("document_id", id), sb.Equal("name", "Gearbox"))
	query, args = sb.Build()
	var (
		extended    bool
		transmitter string
	)
	require.NoError(t, e.DB().QueryRowContext(ctx, query, args...).Scan(&extended, &transmitter))
	require.True(t, extended)
	require.Equal(t, "Vector__XXX", transmitter)
}

func TestExportKeepsEarlierDocuments(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "networks.db")
	doc := loadPowertrain(t)

	e, err := Open(ctx, path)
	require.NoError(t, err)
	first, err := e.Export(ctx, "a", doc)
	require.NoError(t, err)
	require.NoError(t, e.Close())

	e, err = Open(ctx, path)
	require.NoError(t, err)
	defer e.Close()
	second, err := e.Export(ctx, "b", doc)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
	require.Equal(t, 2, count(t, e, "messages", first))
	require.Equal(t, 2, count(t, e, "messages", second))
}

func TestExportEmptyDocument(t *testing.T) {
	ctx := context.Background()
	e, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer e.Close()

	doc, err := godbc.Parse([]byte("VERSION \"\"\nNS_ :\n"))
	require.NoError(t, err)
	id, err := e.Export(ctx, "empty", doc)
	require.NoError(t, err)
	require.Zero(t, count(t, e, "signals", id))
}

func TestExportManySignals(t *testing.T) {
	const messages, perMessage = 300, 10

	var b strings.Builder
	b.WriteString("VERSION \"\"\n\nNS_ :\n\nBU_: ECU\n\n")
	for m := range messages {
		fmt.Fprintf(&b, "BO_ %d M%d: 8 ECU\n", m, m)
		for s := range perMessage {
			fmt.Fprintf(&b, " SG_ S%d : %d|1@1+ (1,0) [0|1] \"\" ECU\n", s, s)
		}
		b.WriteString("\n")
	}
	doc, err := godbc.Parse([]byte(b.String()))
	require.NoError(t, err)
	require.Len(t, doc.Messages(), messages)

	ctx := context.Background()
	e, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer e.Close()

	id, err := e.Export(ctx, "large", doc)
	require.NoError(t, err)
	require.Equal(t, messages, count(t, e, "messages", id))
	require.Equal(t, messages*perMessage, count(t, e, "signals", id))
}
