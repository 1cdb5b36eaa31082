package expr

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by Error.
var (
	ErrSyntax      = errors.New("syntax error")
	ErrUnknownName = errors.New("unknown name")
	ErrArity       = errors.New("wrong number of arguments")
)

// Error is a formula compilation error. Pos is the byte offset into
// Formula where the error has been detected.
type Error struct {
	Formula string
	Pos     int
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("formula %q, offset %d: %v", e.Formula, e.Pos, e.Err)
	}
	return fmt.Sprintf("formula %q, offset %d: %v: %s", e.Formula, e.Pos, e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}
