package globre

import (
	"errors"
	"fmt"
)

// The kinds of errors reported for malformed glob patterns. Translate always
// returns them wrapped in a *ParseError, so both errors.Is and errors.As work.
var (
	// ErrTrailingBackslash is reported when a pattern ends with a backslash
	// that escapes nothing.
	ErrTrailingBackslash = errors.New("trailing backslash escapes nothing")

	// ErrUnterminatedClass is reported when a character class is opened with
	// '[' but never closed.
	ErrUnterminatedClass = errors.New("unterminated character class")

	// ErrUnterminatedAlternation is reported when an alternation is opened
	// with '{' but never closed.
	ErrUnterminatedAlternation = errors.New("unterminated alternation")

	// ErrNestedConstruct is reported when an alternation branch contains a
	// character class or another alternation.
	ErrNestedConstruct = errors.New("character classes and alternations are not supported inside alternation branches")

	// ErrInvalidRange is reported for malformed character ranges, such as a
	// reversed range or a range chained onto another range.
	ErrInvalidRange = errors.New("invalid character range")
)

// ParseError describes a malformed glob pattern. Pos is the rune offset, in
// the pattern, of the construct that failed to parse: the backslash, the
// opening '[' or '{', or the '-' of a bad range.
type ParseError struct {
	Pos int
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid glob pattern at offset %d: %v", e.Pos, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
