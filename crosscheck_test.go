package globre

import (
	"testing"

	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAgreesWithGobwasGlob runs the same patterns through this package and
// through gobwas/glob compiled with '/' as the separator, on the subset of
// the syntax where the two dialects mean the same thing. Escape decoding,
// slash splitting in ranges and empty braces are deliberately absent here
// since the dialects differ on those.
func TestAgreesWithGobwasGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		inputs  []string
	}{
		{
			name:    "literal",
			pattern: "con.st",
			inputs:  []string{"con.st", "conXst", "con.stx", ""},
		},
		{
			name:    "question mark",
			pattern: "a?b",
			inputs:  []string{"axb", "a/b", "ab", "axxb"},
		},
		{
			name:    "star",
			pattern: "a*b",
			inputs:  []string{"ab", "axyb", "ax/yb", "a/b"},
		},
		{
			name:    "star with extension",
			pattern: "*.txt",
			inputs:  []string{"file.txt", "dir/file.txt", "file.md", ".txt"},
		},
		{
			name:    "digit class",
			pattern: "file-[0-9]",
			inputs:  []string{"file-5", "file-x", "file-55", "file-"},
		},
		{
			name:    "alternation",
			pattern: "{foo,bar}",
			inputs:  []string{"foo", "bar", "baz", "foobar", ""},
		},
		{
			name:    "star within a path",
			pattern: "src/*/main.go",
			inputs:  []string{"src/app/main.go", "src/a/b/main.go", "src/main.go"},
		},
		{
			name:    "combined pattern",
			pattern: "linux-[0-9]*-{generic,aws}",
			inputs:  []string{"linux-5.2.27b1-generic", "linux-4.0.12-aws", "linux-unsigned-5-generic"},
		},
		{
			name:    "single question mark",
			pattern: "?",
			inputs:  []string{"x", "/", "", "xy"},
		},
	}

	for i := range tests {
		test := tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			re, err := Compile(test.pattern)
			require.NoError(t, err)
			g, err := glob.Compile(test.pattern, '/')
			require.NoError(t, err)
			for _, input := range test.inputs {
				assert.Equalf(t, g.Match(input), re.MatchString(input),
					"pattern %q and input %q", test.pattern, input)
			}
		})
	}
}
