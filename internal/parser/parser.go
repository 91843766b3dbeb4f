// Package parser implements the DBC grammar on top of the lexer primitives.
//
// Sections are recognized in a fixed order. Repeated sections are greedy:
// each is applied until an attempt fails, and the failed attempt is rewound
// so it consumes nothing. There is no error recovery. A document whose
// mandatory header parses but whose remaining bytes match no section is
// returned together with the offset where parsing stopped and the failure
// that got furthest into the input.
package parser

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/golangcan/godbc/internal/ast"
	"github.com/golangcan/godbc/internal/lexer"
	"github.com/golangcan/godbc/internal/types"
)

// Options controls grammar variants.
type Options struct {
	// IntegerAttributeValues classifies integral numeric attribute values
	// as unsigned or signed integers instead of floats.
	IntegerAttributeValues bool
}

// Parser recognizes a DBC document from a byte slice.
type Parser struct {
	cur      *lexer.Cursor
	opts     Options
	furthest *Error
	types.Logger
}

// New returns a Parser over source. Pass nil for logger to disable logging.
func New(source []byte, logger *slog.Logger, opts Options) *Parser {
	return &Parser{
		cur:    lexer.New(source),
		opts:   opts,
		Logger: types.Logger{L: logger},
	}
}

// Result is the outcome of a parse whose mandatory header was recognized.
type Result struct {
	File *ast.File
	// Rest is the offset of the first byte not consumed by any section.
	Rest int
	// Cause is the furthest failure seen, set when Rest is short of the
	// end of input.
	Cause *Error
}

// Complete reports whether the whole input was consumed.
func (r Result) Complete() bool {
	return r.Cause == nil
}

// Parse runs the document grammar. A non-nil error is an *Error from the
// mandatory version or new-symbols sections.
func (p *Parser) Parse() (Result, error) {
	file := &ast.File{}
	start := p.cur.Pos()

	version, err := p.version()
	if err != nil {
		p.Log(slog.LevelDebug, "version section failed", slog.String("error", err.Error()))
		return Result{}, err
	}
	file.Version = version

	symbols, err := p.newSymbols()
	if err != nil {
		p.Log(slog.LevelDebug, "new symbols section failed", slog.String("error", err.Error()))
		return Result{}, err
	}
	file.NewSymbols = symbols

	file.BitTiming = optional(p, "bit timing", p.bitTiming)
	file.Nodes = many(p, "nodes", p.nodeList)
	file.ValueTables = many(p, "value table", p.valueTable)
	file.Messages = many(p, "message", p.message)
	file.MessageTransmitters = many(p, "message transmitter", p.messageTransmitter)
	file.EnvVars = many(p, "environment variable", p.envVar)
	file.EnvVarData = many(p, "environment variable data", p.envVarData)
	file.SignalTypes = many(p, "signal type", p.signalType)
	file.Comments = many(p, "comment", p.comment)
	file.AttributeDefinitions = many(p, "attribute definition", p.attributeDefinition)
	file.AttributeDefaults = many(p, "attribute default", p.attributeDefault)
	file.AttributeValues = many(p, "attribute value", p.attributeAssignment)
	file.ValueDescriptions = many(p, "value description", p.valueDescription)
	file.SignalTypeRefs = many(p, "signal type reference", p.signalTypeRef)
	file.SignalGroups = optional(p, "signal group", p.signalGroups)
	file.ExtValueTypes = optional(p, "signal value type", p.signalExtValueType)

	end := p.cur.Pos()
	p.cur.Multispace0()
	if !p.cur.AtEOF() {
		p.cur.Reset(end)
	}
	file.Span = types.NewSpan(types.ByteOffset(start), types.ByteOffset(p.cur.Pos()))

	res := Result{File: file, Rest: p.cur.Pos()}
	if !p.cur.AtEOF() {
		res.Cause = p.furthest
	}

	if p.Enabled(slog.LevelDebug) {
		counts := file.Counts()
		var attrs []slog.Attr
		for _, section := range slices.Sorted(maps.Keys(counts)) {
			if counts[section] > 0 {
				attrs = append(attrs, slog.Int(section, counts[section]))
			}
		}
		attrs = append(attrs, slog.Bool("complete", res.Complete()))
		if !res.Complete() {
			attrs = append(attrs, slog.Int("rest", res.Rest))
		}
		p.Log(slog.LevelDebug, "parse finished", attrs...)
	}
	return res, nil
}

// many applies parse until it fails or stops making progress. The failed
// attempt is rewound.
func many[T any](p *Parser, name string, parse func() (T, error)) []T {
	var out []T
	for {
		mark := p.cur.Pos()
		v, err := parse()
		if err != nil || p.cur.Pos() == mark {
			p.cur.Reset(mark)
			return out
		}
		if p.TraceEnabled() {
			p.Trace("accepted", slog.String("rule", name), slog.Int("offset", mark))
		}
		out = append(out, v)
	}
}

// optional applies parse once, rewinding on failure.
func optional[T any](p *Parser, name string, parse func() (T, error)) *T {
	mark := p.cur.Pos()
	v, err := parse()
	if err != nil {
		p.cur.Reset(mark)
		return nil
	}
	if p.TraceEnabled() {
		p.Trace("accepted", slog.String("rule", name), slog.Int("offset", mark))
	}
	return &v
}

// step is one element of a production's sequence.
type step = func() error

// run applies steps in order and stops at the first failure.
func (r rule) run(steps ...step) error {
	for _, s := range steps {
		if err := s(); err != nil {
			return r.fail(err)
		}
	}
	return nil
}

// try is run for one alternative: on failure the cursor returns to where
// the attempt began.
func (r rule) try(steps ...step) bool {
	mark := r.p.cur.Pos()
	if err := r.run(steps...); err != nil {
		r.p.cur.Reset(mark)
		return false
	}
	return true
}

// expect fails the rule at the current position.
func (r rule) expect(expected string) *Error {
	return r.fail(&lexer.Error{Offset: r.p.cur.Pos(), Expected: expected, EOF: r.p.cur.AtEOF()})
}

// span covers the bytes consumed since the rule started.
func (r rule) span() types.Span {
	return span(r.head, r.p.cur.Pos())
}

func span(start, end int) types.Span {
	return types.NewSpan(types.ByteOffset(start), types.ByteOffset(end))
}

// sp consumes a single space.
func (p *Parser) sp() error {
	return p.cur.Space()
}

// eol accepts a line ending or the end of input.
func (p *Parser) eol() error {
	if p.cur.AtEOF() {
		return nil
	}
	return p.cur.EOL()
}

func (p *Parser) tag(s string) step {
	return func() error { return p.cur.Tag(s) }
}

func (p *Parser) char(c byte) step {
	return func() error { return p.cur.Char(c) }
}

// opt applies steps as a unit and succeeds whether or not they match.
func (p *Parser) opt(steps ...step) step {
	return func() error {
		mark := p.cur.Pos()
		for _, s := range steps {
			if s() != nil {
				p.cur.Reset(mark)
				return nil
			}
		}
		return nil
	}
}

func (p *Parser) uintTo(dst *uint64) step {
	return func() error {
		v, err := p.cur.Uint()
		*dst = v
		return err
	}
}

func (p *Parser) intTo(dst *int64) step {
	return func() error {
		v, err := p.cur.Int()
		*dst = v
		return err
	}
}

func (p *Parser) floatTo(dst *float64) step {
	return func() error {
		v, err := p.cur.Float()
		*dst = v
		return err
	}
}

func (p *Parser) identTo(dst *ast.Ident) step {
	return func() error {
		start := p.cur.Pos()
		name, err := p.cur.Ident()
		if err != nil {
			return err
		}
		*dst = ast.NewIdent(name, span(start, p.cur.Pos()))
		return nil
	}
}

func (p *Parser) quotedTo(dst *ast.QuotedString) step {
	return func() error {
		start := p.cur.Pos()
		s, err := p.cur.Quoted()
		if err != nil {
			return err
		}
		*dst = ast.NewQuotedString(s, span(start, p.cur.Pos()))
		return nil
	}
}

// textTo takes everything up to the next semicolon.
func (p *Parser) textTo(dst *string) step {
	return func() error {
		*dst = p.cur.TakeTill(';')
		return nil
	}
}
