package lexer

import "fmt"

// Error reports that a primitive did not match at Offset.
type Error struct {
	Offset   int
	Expected string
	// EOF is true when the input ended before the primitive could match.
	EOF bool
}

func (e *Error) Error() string {
	if e.EOF {
		return fmt.Sprintf("offset %d: unexpected end of input, expected %s", e.Offset, e.Expected)
	}
	return fmt.Sprintf("offset %d: expected %s", e.Offset, e.Expected)
}
