package globre

import "strings"

// decodeEscape maps the letters a, b, e, f, n, r, t and v to the control
// characters they conventionally name (bell, backspace, escape, form feed,
// newline, carriage return, tab, vertical tab). Every other rune decodes to
// itself, which is how metacharacters are matched literally.
func decodeEscape(r rune) rune {
	switch r {
	case 'a':
		return '\a'
	case 'b':
		return '\b'
	case 'e':
		return '\x1b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'v':
		return '\v'
	}
	return r
}

// writeClassRune appends r to a bracket expression under construction,
// backslash-escaping the characters that are special inside one. That
// includes '[', which left bare would start a POSIX named class when
// followed by ':'.
func writeClassRune(out *strings.Builder, r rune) {
	if strings.ContainsRune(`[]\^-`, r) {
		out.WriteByte('\\')
	}
	out.WriteRune(r)
}
