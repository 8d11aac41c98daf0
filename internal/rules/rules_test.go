package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dailymotion-oss/globre"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		content          string
		expected         []Rule
		expectedErrorMsg string
	}{
		{
			name: "valid catalog",
			content: `- name: go-sources
  pattern: "*.go"
  description: Go source files at the top level
  tests:
    matches:
      - main.go
    rejects:
      - main.py
- name: kernels
  pattern: linux-[0-9]*-{generic,aws}
`,
			expected: []Rule{
				{
					Name:        "go-sources",
					Pattern:     "*.go",
					Description: "Go source files at the top level",
					Tests: Vectors{
						Matches: []string{"main.go"},
						Rejects: []string{"main.py"},
					},
				},
				{
					Name:    "kernels",
					Pattern: "linux-[0-9]*-{generic,aws}",
				},
			},
		},
		{
			name:    "empty catalog",
			content: "",
		},
		{
			name:             "rule without a name",
			content:          `- pattern: "*.go"`,
			expectedErrorMsg: "rule #1 has no name",
		},
		{
			name:             "rule without a pattern",
			content:          `- name: nameless`,
			expectedErrorMsg: "rule nameless has no pattern",
		},
		{
			name: "duplicate rule names",
			content: `- name: twice
  pattern: "*"
- name: twice
  pattern: "?"
`,
			expectedErrorMsg: "duplicate rule name twice",
		},
		{
			name:             "not a catalog",
			content:          `just a string`,
			expectedErrorMsg: "failed to unmarshal rules file",
		},
	}

	for i := range tests {
		test := tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "rules.yaml")
			require.NoError(t, os.WriteFile(path, []byte(test.content), 0644))

			actual, err := Load(path)
			if test.expectedErrorMsg != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, test.expectedErrorMsg)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	rules, err := Load(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to read rules file")
	assert.Nil(t, rules)
}

func TestFind(t *testing.T) {
	t.Parallel()

	catalog := []Rule{
		{Name: "first", Pattern: "*"},
		{Name: "second", Pattern: "?"},
	}

	rule, err := Find(catalog, "second")
	require.NoError(t, err)
	assert.Equal(t, "?", rule.Pattern)

	_, err = Find(catalog, "third")
	require.Error(t, err)
	assert.EqualError(t, err, "no rule named third")
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		rule             Rule
		expectedOK       bool
		expectedErr      error
		expectedFailures []string
	}{
		{
			name: "passing vectors",
			rule: Rule{
				Name:    "go-sources",
				Pattern: "*.go",
				Tests: Vectors{
					Matches: []string{"main.go", ".go"},
					Rejects: []string{"main.py", "pkg/main.go"},
				},
			},
			expectedOK: true,
		},
		{
			name: "no vectors",
			rule: Rule{
				Name:    "bare",
				Pattern: "*",
			},
			expectedOK: true,
		},
		{
			name: "failing match vector",
			rule: Rule{
				Name:    "too-narrow",
				Pattern: "?.go",
				Tests: Vectors{
					Matches: []string{"main.go"},
				},
			},
			expectedFailures: []string{`expected "main.go" to match`},
		},
		{
			name: "failing reject vector",
			rule: Rule{
				Name:    "too-wide",
				Pattern: "*",
				Tests: Vectors{
					Rejects: []string{"anything"},
				},
			},
			expectedFailures: []string{`expected "anything" not to match`},
		},
		{
			name: "malformed pattern",
			rule: Rule{
				Name:    "broken",
				Pattern: "[a-",
			},
			expectedErr: globre.ErrUnterminatedClass,
		},
	}

	for i := range tests {
		test := tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			result := Check(test.rule)
			assert.Equal(t, test.expectedOK, result.OK())
			assert.Equal(t, test.expectedFailures, result.Failures)
			if test.expectedErr != nil {
				assert.ErrorIs(t, result.Err, test.expectedErr)
				assert.Empty(t, result.Regex)
			} else {
				require.NoError(t, result.Err)
				assert.NotEmpty(t, result.Regex)
			}
		})
	}
}
