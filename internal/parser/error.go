package parser

import (
	"errors"
	"fmt"

	"github.com/golangcan/godbc/internal/lexer"
)

// Kind classifies a grammar failure.
type Kind int

const (
	// KindLexical is a primitive mismatch at the start of a construct.
	KindLexical Kind = iota
	// KindStructural is a construct interrupted partway through.
	KindStructural
	// KindNoAlternative means every alternative of a fixed set failed.
	KindNoAlternative
)

func (k Kind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindStructural:
		return "structural"
	case KindNoAlternative:
		return "no alternative"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a failure of a grammar rule at a byte offset.
type Error struct {
	Kind     Kind
	Rule     string
	Offset   int
	Expected string
	EOF      bool
}

func (e *Error) Error() string {
	if e.EOF {
		return fmt.Sprintf("offset %d: unexpected end of input in %s, expected %s", e.Offset, e.Rule, e.Expected)
	}
	return fmt.Sprintf("offset %d: expected %s in %s", e.Offset, e.Expected, e.Rule)
}

// rule tracks one attempt of a grammar production so that failures can be
// classified relative to where the construct began.
type rule struct {
	p    *Parser
	name string
	head int
}

// begin starts a production at the current position.
func (p *Parser) begin(name string) rule {
	return rule{p: p, name: name, head: p.cur.Pos()}
}

// fail converts err into an *Error for this rule and records it. Errors
// already produced by a nested rule pass through unchanged.
func (r rule) fail(err error) *Error {
	var perr *Error
	if errors.As(err, &perr) {
		return perr
	}
	e := &Error{Kind: KindStructural, Rule: r.name, Offset: r.p.cur.Pos()}
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		e.Offset = lerr.Offset
		e.Expected = lerr.Expected
		e.EOF = lerr.EOF
	} else {
		e.Expected = err.Error()
	}
	if e.Offset == r.head {
		e.Kind = KindLexical
	}
	r.p.record(e)
	return e
}

// noAlternative reports that every alternative of the rule failed.
func (r rule) noAlternative(expected string) *Error {
	r.p.cur.Reset(r.head)
	e := &Error{
		Kind:     KindNoAlternative,
		Rule:     r.name,
		Offset:   r.head,
		Expected: expected,
		EOF:      r.p.cur.AtEOF(),
	}
	r.p.record(e)
	return e
}

// record keeps the failure that got furthest into the input. On a tie a
// more specific kind replaces a lexical one.
func (p *Parser) record(e *Error) {
	switch {
	case p.furthest == nil,
		e.Offset > p.furthest.Offset,
		e.Offset == p.furthest.Offset && p.furthest.Kind == KindLexical && e.Kind != KindLexical:
		p.furthest = e
	}
}
