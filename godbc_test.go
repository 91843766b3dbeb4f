package godbc

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/golangcan/godbc/dbc"
)

const minimalDBC = `VERSION ""

NS_ :

BS_:

BU_: PC

BO_ 2000 WebData_2000: 4 Vector__XXX
 SG_ Signal_8 : 24|8@1+ (1,0) [0|255] "" Vector__XXX
 SG_ Signal_7 : 16|8@1+ (1,0) [0|255] "" Vector__XXX
 SG_ Signal_6 : 8|8@1+ (1,0) [0|255] "" Vector__XXX
 SG_ Signal_5 : 0|8@1+ (1,0) [0|255] "" Vector__XXX

EV_ Environment1: 0 [0|220] "" 0 6 DUMMY_NODE_VECTOR0 VECTOR_XXX;
EV_ Environment2: 0 [0|177] "" 0 7 DUMMY_NODE_VECTOR1 VECTOR_XXX;
ENVVAR_DATA_ SomeEnvVarData: 399;

CM_ SG_ 2000 Signal_8 "first";
CM_ SG_ 2000 Signal_7 "second";

BA_DEF_DEF_ "BusType" "AS";

BA_ "Attr" BO_ 2000 283;
BA_ "Attr" BO_ 2000 344;
`

// exportAll lets cmp compare the unexported fields of the model.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

func TestParseMinimalDocument(t *testing.T) {
	doc, err := Parse([]byte(minimalDBC))
	require.NoError(t, err)

	require.Equal(t, "", doc.Version())
	require.Empty(t, doc.NewSymbols())
	rates, ok := doc.BitTiming()
	require.True(t, ok)
	require.Empty(t, rates)
	require.Len(t, doc.Nodes(), 1)
	require.Empty(t, doc.ValueTables())
	require.Len(t, doc.Messages(), 1)
	require.Equal(t, 4, doc.Messages()[0].SignalCount())
	require.Len(t, doc.EnvironmentVariables(), 2)
	require.Len(t, doc.EnvironmentVariableData(), 1)
	require.Len(t, doc.Comments(), 2)
	require.Len(t, doc.AttributeDefaults(), 1)
	require.Len(t, doc.AttributeValues(), 2)
	require.Empty(t, doc.ValueDescriptions())
	require.Nil(t, doc.SignalGroups())
	require.Nil(t, doc.SignalExtendedValueTypeList())
}

func TestParseDeterministic(t *testing.T) {
	src := []byte(minimalDBC)
	a, err := Parse(src)
	require.NoError(t, err)
	b, err := Parse(src)
	require.NoError(t, err)
	if diff := cmp.Diff(a, b, exportAll); diff != "" {
		t.Errorf("documents differ (-first +second):\n%s", diff)
	}
}

func TestParseNoInput(t *testing.T) {
	for _, src := range [][]byte{nil, {}} {
		doc, err := Parse(src)
		require.Nil(t, doc)
		var serr *SyntaxError
		require.ErrorAs(t, err, &serr)
		require.Zero(t, serr.Offset)
		require.Equal(t, 1, serr.Line)
		require.Equal(t, 1, serr.Column)
		require.Equal(t, "version", serr.Rule)
		require.True(t, serr.EOF)
		require.ErrorIs(t, err, ErrNoInput)
	}
}

func TestSyntaxErrorIsNoInputOnlyAtStart(t *testing.T) {
	_, err := Parse([]byte("VERSION \"\"\n"))
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	require.True(t, serr.EOF)
	require.NotZero(t, serr.Offset)
	require.False(t, errors.Is(err, ErrNoInput))
}

func TestParseSyntaxError(t *testing.T) {
	doc, err := ParseFile("testdata/broken.dbc")
	require.Nil(t, doc)

	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 14, serr.Offset)
	require.Equal(t, 2, serr.Line)
	require.Equal(t, 1, serr.Column)
	require.Equal(t, KindLexical, serr.Kind)
	require.Equal(t, "new symbols", serr.Rule)
	require.False(t, serr.EOF)
	require.Contains(t, err.Error(), "testdata/broken.dbc: line 2, col 1: expected")
	require.False(t, errors.Is(err, ErrIncomplete))
}

func TestParseVersionAtEOF(t *testing.T) {
	_, err := Parse([]byte("VERSION"))
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	require.True(t, serr.EOF)
	require.Equal(t, "version", serr.Rule)
	require.Contains(t, serr.Error(), "unexpected end of input in version")
}

func TestParseIncomplete(t *testing.T) {
	doc, err := ParseFile("testdata/networks/chassis/brakes.dbc")
	require.NotNil(t, doc)
	require.ErrorIs(t, err, ErrIncomplete)

	var inc *IncompleteError
	require.ErrorAs(t, err, &inc)
	require.Same(t, doc, inc.Document)
	require.Equal(t, KindTrailingData, inc.Kind())
	require.Equal(t, 10, inc.Line)
	require.Equal(t, 1, inc.Column)
	require.True(t, bytes.HasPrefix(inc.Remaining, []byte("\nCM_ BO_ 1024")))

	require.NotNil(t, inc.Cause)
	require.Equal(t, KindStructural, inc.Cause.Kind)
	require.Equal(t, "comment", inc.Cause.Rule)
	require.Equal(t, 11, inc.Cause.Line)
	require.Equal(t, 28, inc.Cause.Column)

	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	require.Same(t, inc.Cause, serr)

	require.Len(t, doc.Messages(), 1)
	require.Empty(t, doc.Comments())
}

func TestParseIntegerAttributeValues(t *testing.T) {
	src := `VERSION ""
NS_ :
BA_ "A" BO_ 1 5;
BA_ "B" BO_ 1 -5;
BA_ "C" BO_ 1 2.5;
BA_ "D" BO_ 1 1e3;
`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	for _, v := range doc.AttributeValues() {
		require.Equal(t, dbc.ValueFloat, v.Value().Kind(), v.Name())
	}

	doc, err = Parse([]byte(src), WithIntegerAttributeValues())
	require.NoError(t, err)
	vals := doc.AttributeValues()
	require.Equal(t, dbc.UintValue(5), vals[0].Value())
	require.Equal(t, dbc.IntValue(-5), vals[1].Value())
	require.Equal(t, dbc.FloatValue(2.5), vals[2].Value())
	require.Equal(t, dbc.FloatValue(1000), vals[3].Value())
}

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(minimalDBC))
	require.NoError(t, err)
	require.Len(t, doc.Messages(), 1)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile("testdata/does-not-exist.dbc")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParseWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	_, err := Parse([]byte(minimalDBC), WithLogger(logger))
	require.NoError(t, err)
	out := buf.String()
	require.Contains(t, out, "component=parser")
	require.Contains(t, out, "component=lower")
	require.Contains(t, out, "parse finished")
}

func TestValidateAlias(t *testing.T) {
	doc, err := ParseFile("testdata/networks/powertrain.dbc")
	require.NoError(t, err)
	diags := Validate(doc, dbc.DefaultValidateConfig())
	require.Len(t, diags, 1)
	require.Equal(t, dbc.CodeUnknownMessage, diags[0].Code)
}
