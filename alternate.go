package globre

// alternation parses a brace group, entered with the cursor just past the
// opening brace at offset open, and appends a non-capturing group with one
// alternative per comma-separated branch. Branches follow the same rules as
// the rest of the pattern except that classes and alternations cannot nest.
func (t *translator) alternation(open int) error {
	span := t.pos
	var commas []int
	end := -1
	escaped := false
	for i := t.pos; i < len(t.src) && end < 0; i++ {
		switch {
		case escaped:
			escaped = false
		case t.src[i] == '\\':
			escaped = true
		case t.src[i] == ',':
			commas = append(commas, i)
		case t.src[i] == '}':
			end = i
		}
	}
	if end < 0 {
		return &ParseError{Pos: open, Err: ErrUnterminatedAlternation}
	}
	t.pos = end + 1

	// An empty group has nothing to alternate; it matches the braces
	// themselves.
	if end == span {
		t.out.WriteString(`\{\}`)
		return nil
	}

	t.out.WriteString("(?:")
	start := span
	for _, boundary := range append(commas, end) {
		if start > span {
			t.out.WriteByte('|')
		}
		branch := translator{
			src:    t.src[start:boundary],
			base:   t.base + start,
			branch: true,
		}
		if err := branch.translate(); err != nil {
			return err
		}
		t.out.WriteString(branch.out.String())
		start = boundary + 1
	}
	t.out.WriteByte(')')
	return nil
}
