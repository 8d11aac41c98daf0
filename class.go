package globre

import "fmt"

// classItem is one member of a character class: a single character when
// lo == hi, an inclusive range otherwise.
type classItem struct {
	lo, hi rune
}

func (c classItem) isRange() bool {
	return c.lo != c.hi
}

// class parses a character class, entered with the cursor just past the
// opening bracket at offset open, and appends the equivalent bracket
// expression. Members are kept in the order they were written.
func (t *translator) class(open int) error {
	unterminated := &ParseError{Pos: open, Err: ErrUnterminatedClass}

	negated := t.pos < len(t.src) && t.src[t.pos] == '!'
	if negated {
		t.pos++
	}

	var items []classItem
	if t.pos < len(t.src) && t.src[t.pos] == ']' {
		// A ']' right after the opening '[' or '[!' is a member, not the
		// terminator.
		items = append(items, classItem{']', ']'})
		t.pos++
	}

	for {
		if t.pos >= len(t.src) {
			return unterminated
		}
		switch r := t.src[t.pos]; r {
		case ']':
			t.pos++
			t.writeClass(negated, items)
			return nil
		case '\\':
			member, ok := t.escape()
			if !ok {
				return unterminated
			}
			items = append(items, classItem{member, member})
		case '-':
			dash := t.offset()
			switch {
			case len(items) == 0:
				// A leading '-' is a member.
				items = append(items, classItem{'-', '-'})
				t.pos++
			case t.pos+1 >= len(t.src):
				return unterminated
			case t.src[t.pos+1] == ']':
				// A trailing '-' is a member.
				items = append(items, classItem{'-', '-'})
				t.pos++
			case items[len(items)-1].isRange():
				last := items[len(items)-1]
				return &ParseError{
					Pos: dash,
					Err: fmt.Errorf("range following a %q-%q range: %w", last.lo, last.hi, ErrInvalidRange),
				}
			default:
				t.pos++
				hi := t.src[t.pos]
				if hi == '\\' {
					var ok bool
					if hi, ok = t.escape(); !ok {
						return unterminated
					}
				} else {
					t.pos++
				}
				lo := items[len(items)-1].lo
				if lo > hi {
					return &ParseError{
						Pos: dash,
						Err: fmt.Errorf("reversed range from %q to %q: %w", lo, hi, ErrInvalidRange),
					}
				}
				items[len(items)-1] = classItem{lo, hi}
			}
		default:
			t.pos++
			items = append(items, classItem{r, r})
		}
	}
}

// writeClass appends the bracket expression: the negation marker, then the
// members in source order. In a non-negated class a range whose interior
// covers '/' is split around it, so that a range never matches a slash the
// pattern did not spell out. Negated classes and explicit '/' members are
// emitted as written.
func (t *translator) writeClass(negated bool, items []classItem) {
	t.out.WriteByte('[')
	if negated {
		t.out.WriteByte('^')
	}
	for _, item := range items {
		if !negated && item.lo < '/' && item.hi > '/' {
			t.writeClassItem(classItem{item.lo, '.'})
			t.writeClassItem(classItem{'0', item.hi})
			continue
		}
		t.writeClassItem(item)
	}
	t.out.WriteByte(']')
}

func (t *translator) writeClassItem(item classItem) {
	writeClassRune(&t.out, item.lo)
	if item.isRange() {
		t.out.WriteByte('-')
		writeClassRune(&t.out, item.hi)
	}
}
