package godbc

import (
	"errors"
	"fmt"

	"github.com/golangcan/godbc/dbc"
	"github.com/golangcan/godbc/internal/parser"
	"github.com/golangcan/godbc/internal/types"
)

// ErrIncomplete matches any *IncompleteError with errors.Is.
var ErrIncomplete = errors.New("incomplete DBC document")

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	// KindLexical is a token mismatch at the start of a construct.
	KindLexical ErrorKind = iota
	// KindStructural is a construct interrupted partway through.
	KindStructural
	// KindNoAlternative means no alternative of a fixed set matched.
	KindNoAlternative
	// KindTrailingData means a valid document was followed by bytes no
	// section accepts.
	KindTrailingData
)

func (k ErrorKind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindStructural:
		return "structural"
	case KindNoAlternative:
		return "no alternative"
	case KindTrailingData:
		return "trailing data"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// SyntaxError is a failure of the grammar at a source position.
type SyntaxError struct {
	Offset int
	Line   int
	Column int
	Kind   ErrorKind
	// Rule names the construct being recognized, e.g. "signal".
	Rule string
	// Expected describes what would have been accepted.
	Expected string
	// EOF is set when the input ended before the construct was complete.
	EOF bool
}

func (e *SyntaxError) Error() string {
	if e.EOF {
		return fmt.Sprintf("line %d, col %d: unexpected end of input in %s, expected %s",
			e.Line, e.Column, e.Rule, e.Expected)
	}
	return fmt.Sprintf("line %d, col %d: expected %s in %s", e.Line, e.Column, e.Expected, e.Rule)
}

// Is reports whether e is an empty-input failure when target is ErrNoInput.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrNoInput && e.Offset == 0 && e.EOF
}

// IncompleteError reports that only a prefix of the input was recognized.
// Document holds everything parsed before the remainder.
type IncompleteError struct {
	Document *dbc.Document
	// Remaining is the unconsumed input.
	Remaining []byte
	Offset    int
	Line      int
	Column    int
	// Cause is the furthest failure seen while trying to continue. It may
	// lie beyond Offset when a section matched partway.
	Cause *SyntaxError
}

func (e *IncompleteError) Error() string {
	msg := fmt.Sprintf("line %d, col %d: unparsed trailing data", e.Line, e.Column)
	if e.Cause != nil {
		msg += " (" + e.Cause.Error() + ")"
	}
	return msg
}

// Is reports whether target is ErrIncomplete.
func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncomplete
}

// Unwrap returns the cause, so errors.As can reach the *SyntaxError.
func (e *IncompleteError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// Kind is always KindTrailingData.
func (e *IncompleteError) Kind() ErrorKind {
	return KindTrailingData
}

func newSyntaxError(err error, lines *types.LineTable) error {
	var perr *parser.Error
	if !errors.As(err, &perr) {
		return err
	}
	return fromParserError(perr, lines)
}

func fromParserError(perr *parser.Error, lines *types.LineTable) *SyntaxError {
	line, col := lines.Position(types.ByteOffset(perr.Offset))
	return &SyntaxError{
		Offset:   perr.Offset,
		Line:     line,
		Column:   col,
		Kind:     errorKind(perr.Kind),
		Rule:     perr.Rule,
		Expected: perr.Expected,
		EOF:      perr.EOF,
	}
}

func newIncompleteError(doc *dbc.Document, src []byte, res parser.Result, lines *types.LineTable) *IncompleteError {
	line, col := lines.Position(types.ByteOffset(res.Rest))
	inc := &IncompleteError{
		Document:  doc,
		Remaining: src[res.Rest:],
		Offset:    res.Rest,
		Line:      line,
		Column:    col,
	}
	if res.Cause != nil {
		inc.Cause = fromParserError(res.Cause, lines)
	}
	return inc
}

func errorKind(k parser.Kind) ErrorKind {
	switch k {
	case parser.KindStructural:
		return KindStructural
	case parser.KindNoAlternative:
		return KindNoAlternative
	default:
		return KindLexical
	}
}
