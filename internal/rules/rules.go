// Package rules loads catalogs of named glob patterns from YAML files and
// checks them against their embedded test vectors.
//
// A catalog is a list of rules:
//
//	# rules.yaml
//	- name: go-sources
//	  pattern: "*.go"
//	  description: Go source files at the top level
//	  tests:
//	    matches:
//	      - main.go
//	    rejects:
//	      - main.py
//	      - pkg/main.go
package rules

import (
	"fmt"
	"os"

	"github.com/dailymotion-oss/globre"
	"github.com/zoumo/goset"
	"gopkg.in/yaml.v3"
)

// Rule is a named glob pattern, optionally documented and backed by test
// vectors.
type Rule struct {
	Name        string  `yaml:"name"`
	Pattern     string  `yaml:"pattern"`
	Description string  `yaml:"description,omitempty"`
	Tests       Vectors `yaml:"tests,omitempty"`
}

// Vectors are the strings a rule's pattern is expected to match and reject.
type Vectors struct {
	Matches []string `yaml:"matches,omitempty"`
	Rejects []string `yaml:"rejects,omitempty"`
}

// Result is the outcome of checking a single rule: the translated expression
// when the pattern compiled, and the test vectors that did not behave as
// declared.
type Result struct {
	Rule     Rule
	Regex    string
	Err      error
	Failures []string
}

// OK reports whether the rule's pattern compiled and all its test vectors
// passed.
func (r Result) OK() bool {
	return r.Err == nil && len(r.Failures) == 0
}

// Load reads a rule catalog from a YAML file. Every rule must have a name and
// a pattern, and names must be unique within the file.
func Load(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rules file %s: %w", path, err)
	}

	names := goset.NewSet()
	for i, rule := range rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("rule #%d has no name", i+1)
		}
		if rule.Pattern == "" {
			return nil, fmt.Errorf("rule %s has no pattern", rule.Name)
		}
		if names.Contains(rule.Name) {
			return nil, fmt.Errorf("duplicate rule name %s", rule.Name)
		}
		if err := names.Add(rule.Name); err != nil {
			return nil, fmt.Errorf("failed to index rule name %s: %w", rule.Name, err)
		}
	}
	return rules, nil
}

// Find returns the rule with the given name.
func Find(rules []Rule, name string) (Rule, error) {
	for _, rule := range rules {
		if rule.Name == name {
			return rule, nil
		}
	}
	return Rule{}, fmt.Errorf("no rule named %s", name)
}

// Check compiles the rule's pattern and runs its test vectors against the
// compiled expression.
func Check(rule Rule) Result {
	result := Result{Rule: rule}

	re, err := globre.Compile(rule.Pattern)
	if err != nil {
		result.Err = err
		return result
	}
	result.Regex = re.String()

	for _, s := range rule.Tests.Matches {
		if !re.MatchString(s) {
			result.Failures = append(result.Failures, fmt.Sprintf("expected %q to match", s))
		}
	}
	for _, s := range rule.Tests.Rejects {
		if re.MatchString(s) {
			result.Failures = append(result.Failures, fmt.Sprintf("expected %q not to match", s))
		}
	}
	return result
}
