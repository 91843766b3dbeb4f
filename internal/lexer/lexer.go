// Package lexer provides the primitive recognizers of the DBC grammar.
//
// Unlike a token-stream lexer, DBC whitespace is significant (single spaces
// separate fields and the multiplex indicator is delimited by them), so each
// primitive is recognized on demand at the current position of a Cursor.
// A primitive either consumes exactly its own bytes or fails without moving.
package lexer

import (
	"strconv"
)

// Cursor is a read position over an immutable DBC source buffer.
type Cursor struct {
	source []byte
	pos    int
}

// New returns a Cursor positioned at the start of source.
func New(source []byte) *Cursor {
	return &Cursor{source: source}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Reset moves the cursor back to a position previously returned by Pos.
func (c *Cursor) Reset(pos int) {
	c.pos = pos
}

// Rest returns the unconsumed remainder of the input.
func (c *Cursor) Rest() []byte {
	return c.source[c.pos:]
}

// AtEOF reports whether all input has been consumed.
func (c *Cursor) AtEOF() bool {
	return c.pos >= len(c.source)
}

func (c *Cursor) peek() (byte, bool) {
	if c.pos >= len(c.source) {
		return 0, false
	}
	return c.source[c.pos], true
}

func (c *Cursor) peekAt(offset int) (byte, bool) {
	idx := c.pos + offset
	if idx >= len(c.source) {
		return 0, false
	}
	return c.source[idx], true
}

// fail builds an Error at the current position.
func (c *Cursor) fail(expected string) *Error {
	return &Error{Offset: c.pos, Expected: expected, EOF: c.AtEOF()}
}

// Char consumes the single byte ch.
func (c *Cursor) Char(ch byte) error {
	if b, ok := c.peek(); ok && b == ch {
		c.pos++
		return nil
	}
	return c.fail(strconv.QuoteRune(rune(ch)))
}

// Tag consumes the literal text tag.
func (c *Cursor) Tag(tag string) error {
	end := c.pos + len(tag)
	if end <= len(c.source) && string(c.source[c.pos:end]) == tag {
		c.pos = end
		return nil
	}
	err := c.fail(strconv.Quote(tag))
	// Running out of input partway through the tag is still an EOF failure.
	err.EOF = end > len(c.source) && string(c.source[c.pos:]) == tag[:len(c.source)-c.pos]
	return err
}

// Space consumes exactly one space character.
func (c *Cursor) Space() error {
	return c.Char(' ')
}

// Spaces0 consumes zero or more spaces and tabs.
func (c *Cursor) Spaces0() {
	for {
		b, ok := c.peek()
		if !ok || (b != ' ' && b != '\t') {
			return
		}
		c.pos++
	}
}

// Space1 consumes one or more spaces and tabs.
func (c *Cursor) Space1() error {
	start := c.pos
	c.Spaces0()
	if c.pos == start {
		return c.fail("blank space")
	}
	return nil
}

// Multispace0 consumes zero or more spaces, tabs, carriage returns and
// line feeds.
func (c *Cursor) Multispace0() {
	for {
		b, ok := c.peek()
		if !ok || (b != ' ' && b != '\t' && b != '\r' && b != '\n') {
			return
		}
		c.pos++
	}
}

// EOL consumes a line ending: "\n" or "\r\n".
func (c *Cursor) EOL() error {
	b, ok := c.peek()
	if ok && b == '\n' {
		c.pos++
		return nil
	}
	if ok && b == '\r' {
		if next, ok := c.peekAt(1); ok && next == '\n' {
			c.pos += 2
			return nil
		}
	}
	return c.fail("line ending")
}

// Ident consumes a C identifier: a letter or underscore followed by
// letters, digits and underscores.
func (c *Cursor) Ident() (string, error) {
	start := c.pos
	b, ok := c.peek()
	if !ok || !isIdentHead(b) {
		return "", c.fail("identifier")
	}
	c.pos++
	for {
		b, ok := c.peek()
		if !ok || !isIdentChar(b) {
			break
		}
		c.pos++
	}
	return string(c.source[start:c.pos]), nil
}

// Quoted consumes a double-quoted string and returns its content.
// There is no escape syntax; the content is every byte up to the next quote.
func (c *Cursor) Quoted() (string, error) {
	start := c.pos
	if err := c.Char('"'); err != nil {
		return "", c.fail("quoted string")
	}
	for {
		b, ok := c.peek()
		if !ok {
			c.pos = start
			err := c.fail("closing quote")
			err.Offset = len(c.source)
			err.EOF = true
			return "", err
		}
		if b == '"' {
			text := string(c.source[start+1 : c.pos])
			c.pos++
			return text, nil
		}
		c.pos++
	}
}

// TakeTill consumes bytes up to, but not including, the first occurrence
// of stop (or the end of input) and returns them.
func (c *Cursor) TakeTill(stop byte) string {
	start := c.pos
	for {
		b, ok := c.peek()
		if !ok || b == stop {
			break
		}
		c.pos++
	}
	return string(c.source[start:c.pos])
}

func (c *Cursor) scanDigits() int {
	n := 0
	for {
		b, ok := c.peek()
		if !ok || !isDigit(b) {
			return n
		}
		c.pos++
		n++
	}
}

// Uint consumes an unsigned decimal integer.
func (c *Cursor) Uint() (uint64, error) {
	start := c.pos
	if c.scanDigits() == 0 {
		return 0, c.fail("unsigned integer")
	}
	v, err := strconv.ParseUint(string(c.source[start:c.pos]), 10, 64)
	if err != nil {
		c.pos = start
		return 0, c.fail("unsigned integer in range")
	}
	return v, nil
}

// Int consumes a signed decimal integer with an optional leading sign.
func (c *Cursor) Int() (int64, error) {
	start := c.pos
	if b, ok := c.peek(); ok && (b == '+' || b == '-') {
		c.pos++
	}
	if c.scanDigits() == 0 {
		c.pos = start
		return 0, c.fail("signed integer")
	}
	v, err := strconv.ParseInt(string(c.source[start:c.pos]), 10, 64)
	if err != nil {
		c.pos = start
		return 0, c.fail("signed integer in range")
	}
	return v, nil
}

// Number is a recognized numeric literal.
type Number struct {
	Text string
	// Integral is true when the literal has neither a fraction nor an
	// exponent part.
	Integral bool
}

// scanNumber recognizes: [+-] (digits [. [digits]] | . digits) [(e|E) [+-] digits].
// The exponent is only consumed when digits follow it.
func (c *Cursor) scanNumber() (Number, bool) {
	start := c.pos
	if b, ok := c.peek(); ok && (b == '+' || b == '-') {
		c.pos++
	}
	integral := true
	intDigits := c.scanDigits()
	if b, ok := c.peek(); ok && b == '.' {
		if intDigits > 0 {
			c.pos++
			c.scanDigits()
			integral = false
		} else if next, ok := c.peekAt(1); ok && isDigit(next) {
			c.pos++
			c.scanDigits()
			integral = false
		}
	}
	if integral && intDigits == 0 {
		c.pos = start
		return Number{}, false
	}
	if b, ok := c.peek(); ok && (b == 'e' || b == 'E') {
		mark := c.pos
		c.pos++
		if s, ok := c.peek(); ok && (s == '+' || s == '-') {
			c.pos++
		}
		if c.scanDigits() == 0 {
			c.pos = mark
		} else {
			integral = false
		}
	}
	return Number{Text: string(c.source[start:c.pos]), Integral: integral}, true
}

// Number consumes a numeric literal without converting it.
func (c *Cursor) Number() (Number, error) {
	n, ok := c.scanNumber()
	if !ok {
		return Number{}, c.fail("number")
	}
	return n, nil
}

// Float consumes a floating point literal.
func (c *Cursor) Float() (float64, error) {
	start := c.pos
	n, ok := c.scanNumber()
	if !ok {
		return 0, c.fail("number")
	}
	v, err := strconv.ParseFloat(n.Text, 64)
	if err != nil {
		c.pos = start
		return 0, c.fail("number in range")
	}
	return v, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentHead(b byte) bool {
	return isAlpha(b) || b == '_'
}

func isIdentChar(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '_'
}
