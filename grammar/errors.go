package grammar

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ParseError.
var (
	ErrUnexpectedEnd   = errors.New("unexpected end of input")
	ErrUnexpectedToken = errors.New("unexpected token")
)

// LexError is returned by the tokenizer for a character which does not
// start any token.
type LexError struct {
	Char   rune
	Line   int
	Column int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d, column %d: unexpected character %q", e.Line, e.Column, e.Char)
}

// ParseError is returned by the parsers. Err is ErrUnexpectedEnd,
// ErrUnexpectedToken or a formula compilation error.
// Found is nil at the end of input; Line and Column then denote the
// last token of the input, if any.
type ParseError struct {
	Expected string
	Found    *Token
	Line     int
	Column   int
	Err      error
}

func (e *ParseError) Error() string {
	switch {
	case e.Found == nil && e.Expected != "":
		return fmt.Sprintf("line %d, column %d: %v, expected %s", e.Line, e.Column, e.Err, e.Expected)
	case e.Found == nil || e.Expected == "":
		return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	found := e.Found.Kind.String()
	if e.Found.Kind != NEWLINE {
		found = fmt.Sprintf("%s %q", found, e.Found.Text)
	}
	return fmt.Sprintf("line %d, column %d: expected %s, found %s", e.Line, e.Column, e.Expected, found)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
