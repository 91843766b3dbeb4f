package lexer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		rest  string
	}{
		{"mixed case with digits", "EALL_DUSasb18 ", "EALL_DUSasb18", " "},
		{"leading underscore", "_EALL_DUSasb18 ", "_EALL_DUSasb18", " "},
		{"stops at colon", "MCA_A1: 6", "MCA_A1", ": 6"},
		{"whole input", "x", "x", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New([]byte(tt.input))
			got, err := c.Ident()
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.rest, string(c.Rest()))
		})
	}
}

func TestIdentRejectsLeadingDigit(t *testing.T) {
	c := New([]byte("3EALL_DUSasb18 "))
	_, err := c.Ident()
	require.Error(t, err)
	require.Equal(t, 0, c.Pos(), "failed primitive must not consume input")

	var lexErr *Error
	require.True(t, errors.As(err, &lexErr))
	require.Equal(t, "identifier", lexErr.Expected)
	require.False(t, lexErr.EOF)
}

func TestQuoted(t *testing.T) {
	c := New([]byte(`"HH?=(%)/&KK` + "\n" + `x";`))
	got, err := c.Quoted()
	require.NoError(t, err)
	require.Equal(t, "HH?=(%)/&KK\nx", got)
	require.Equal(t, ";", string(c.Rest()))

	c = New([]byte(`""`))
	got, err = c.Quoted()
	require.NoError(t, err)
	require.Empty(t, got)
	require.True(t, c.AtEOF())
}

func TestQuotedUnterminated(t *testing.T) {
	c := New([]byte(`"open`))
	_, err := c.Quoted()
	var lexErr *Error
	require.True(t, errors.As(err, &lexErr))
	require.True(t, lexErr.EOF)
	require.Equal(t, 5, lexErr.Offset)
	require.Equal(t, 0, c.Pos())
}

func TestUint(t *testing.T) {
	c := New([]byte("34920 "))
	v, err := c.Uint()
	require.NoError(t, err)
	require.Equal(t, uint64(34920), v)

	c = New([]byte("-1"))
	_, err = c.Uint()
	require.Error(t, err)

	c = New([]byte("99999999999999999999999"))
	_, err = c.Uint()
	require.Error(t, err)
	require.Equal(t, 0, c.Pos())
}

func TestInt(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"-22", -22},
		{"+7", 7},
		{"20]", 20},
	}
	for _, tt := range tests {
		c := New([]byte(tt.input))
		v, err := c.Int()
		require.NoError(t, err, tt.input)
		require.Equal(t, tt.want, v, tt.input)
	}

	c := New([]byte("-x"))
	_, err := c.Int()
	require.Error(t, err)
	require.Equal(t, 0, c.Pos(), "sign must be given back on failure")
}

func TestFloat(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		rest  string
	}{
		{"80.0", 80, ""},
		{"12;", 12, ";"},
		{"-0.5,", -0.5, ","},
		{".25)", 0.25, ")"},
		{"3.", 3, ""},
		{"1e3|", 1000, "|"},
		{"2.5E-1]", 0.25, "]"},
		{"4e", 4, "e"},
		{"+1", 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := New([]byte(tt.input))
			v, err := c.Float()
			require.NoError(t, err)
			require.InDelta(t, tt.want, v, 1e-12)
			require.Equal(t, tt.rest, string(c.Rest()))
		})
	}

	for _, bad := range []string{"", ".", "-", "abc", "e5"} {
		c := New([]byte(bad))
		_, err := c.Float()
		require.Error(t, err, "%q", bad)
		require.Equal(t, 0, c.Pos(), "%q", bad)
	}
}

func TestNumberIntegral(t *testing.T) {
	tests := []struct {
		input    string
		integral bool
	}{
		{"12", true},
		{"-12", true},
		{"12.0", false},
		{"1e2", false},
		{"1e", true},
	}
	for _, tt := range tests {
		c := New([]byte(tt.input))
		n, err := c.Number()
		require.NoError(t, err, tt.input)
		require.Equal(t, tt.integral, n.Integral, tt.input)
	}
}

func TestTag(t *testing.T) {
	c := New([]byte("BO_TX_BU_ 1"))
	require.NoError(t, c.Tag("BO_"))
	require.Equal(t, 3, c.Pos())

	c = New([]byte("BO"))
	err := c.Tag("BO_")
	var lexErr *Error
	require.True(t, errors.As(err, &lexErr))
	require.True(t, lexErr.EOF, "truncated tag is an end-of-input failure")

	c = New([]byte("BU_"))
	err = c.Tag("BO_")
	require.True(t, errors.As(err, &lexErr))
	require.False(t, lexErr.EOF)
}

func TestWhitespace(t *testing.T) {
	c := New([]byte(" \t\r\n x"))
	c.Multispace0()
	require.Equal(t, "x", string(c.Rest()))

	c = New([]byte("\t  NS_DESC_"))
	require.NoError(t, c.Space1())
	require.Equal(t, "NS_DESC_", string(c.Rest()))

	c = New([]byte("x"))
	require.Error(t, c.Space1())
	require.Error(t, c.Space())
}

func TestEOL(t *testing.T) {
	for _, in := range []string{"\n", "\r\n"} {
		c := New([]byte(in))
		require.NoError(t, c.EOL())
		require.True(t, c.AtEOF())
	}

	c := New([]byte("\r"))
	require.Error(t, c.EOL())
	require.Equal(t, 0, c.Pos())
}

func TestTakeTill(t *testing.T) {
	c := New([]byte(`"BaDef1BO" INT 0 1000000;` + "\n"))
	require.Equal(t, `"BaDef1BO" INT 0 1000000`, c.TakeTill(';'))
	require.NoError(t, c.Char(';'))
}

func TestIsKnownSymbol(t *testing.T) {
	require.True(t, IsKnownSymbol("NS_DESC_"))
	require.True(t, IsKnownSymbol("SG_MUL_VAL_"))
	require.False(t, IsKnownSymbol("NOT_A_SYMBOL_"))
}
