// Package globre translates shell glob patterns into regular expressions.
//
// The translated expressions are anchored: a pattern matches whole strings,
// never substrings. The supported syntax is:
//
//	?           matches a single character, except '/'
//	*           matches any number of characters (including none), except '/'
//	[abc]       matches one of the listed characters
//	[a-z]       matches one character out of the ranges; a range never
//	            matches '/' unless the pattern spells the slash out
//	[!abc]      matches one character not listed
//	{one,two}   matches either branch; branches may use wildcards and
//	            escapes, but not classes or further alternations
//	\x          matches the character x literally; the letters a, b, e, f,
//	            n, r, t and v denote the usual control characters
//
// Any other character matches itself. Translate produces the source text of
// the expression; Compile and Match wrap the standard regexp package for
// convenience. Translation is deterministic, so equal patterns always yield
// equal expressions.
package globre

import (
	"fmt"
	"regexp"
	"strconv"
)

// Translate converts a glob pattern into the source text of a regular
// expression with the same meaning, anchored with ^ and $. On a malformed
// pattern it returns a *ParseError locating the construct that failed.
func Translate(pattern string) (string, error) {
	t := translator{src: []rune(pattern)}
	if err := t.translate(); err != nil {
		return "", err
	}
	return "^" + t.out.String() + "$", nil
}

// Compile translates the glob pattern and compiles the resulting expression
// with the standard regexp package.
func Compile(pattern string) (*regexp.Regexp, error) {
	expr, err := Translate(pattern)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile translated pattern %s: %w", expr, err)
	}
	return re, nil
}

// MustCompile is like Compile but panics on malformed patterns. It simplifies
// the initialization of variables holding known-good patterns.
func MustCompile(pattern string) *regexp.Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic(`globre: Compile(` + strconv.Quote(pattern) + `): ` + err.Error())
	}
	return re
}

// Match reports whether s matches the glob pattern. For repeated matching
// against the same pattern, Compile once and reuse the result.
func Match(pattern, s string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}
