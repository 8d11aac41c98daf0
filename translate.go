package globre

import (
	"regexp"
	"strings"
)

// translator is the state of one translation pass: a cursor over the pattern
// runes and the regular expression accumulated so far. Alternation branches
// run in a nested translator whose base offset keeps error positions relative
// to the enclosing pattern.
type translator struct {
	src    []rune
	pos    int
	base   int
	branch bool
	out    strings.Builder
}

// translate consumes the whole source, dispatching on the rune under the
// cursor. Plain runes and decoded escapes are appended as literals, the
// wildcards and bracketed constructs as their regular expression equivalents.
func (t *translator) translate() error {
	for t.pos < len(t.src) {
		switch r := t.src[t.pos]; r {
		case '?':
			t.pos++
			t.out.WriteString("[^/]")
		case '*':
			t.pos++
			t.out.WriteString("[^/]*")
		case '\\':
			backslash := t.offset()
			decoded, ok := t.escape()
			if !ok {
				return &ParseError{Pos: backslash, Err: ErrTrailingBackslash}
			}
			t.literal(decoded)
		case '[':
			if t.branch {
				return &ParseError{Pos: t.offset(), Err: ErrNestedConstruct}
			}
			open := t.offset()
			t.pos++
			if err := t.class(open); err != nil {
				return err
			}
		case '{':
			if t.branch {
				return &ParseError{Pos: t.offset(), Err: ErrNestedConstruct}
			}
			open := t.offset()
			t.pos++
			if err := t.alternation(open); err != nil {
				return err
			}
		default:
			t.pos++
			t.literal(r)
		}
	}
	return nil
}

// offset is the position of the cursor within the whole pattern, counted in
// runes.
func (t *translator) offset() int {
	return t.base + t.pos
}

// literal appends r so that the resulting expression matches it verbatim.
func (t *translator) literal(r rune) {
	t.out.WriteString(regexp.QuoteMeta(string(r)))
}

// escape consumes a backslash together with the rune it escapes and returns
// the decoded character. ok is false, with nothing consumed, when the
// backslash is the last rune of the source.
func (t *translator) escape() (rune, bool) {
	if t.pos+1 >= len(t.src) {
		return 0, false
	}
	r := decodeEscape(t.src[t.pos+1])
	t.pos += 2
	return r, true
}
