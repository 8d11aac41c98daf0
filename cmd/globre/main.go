package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dailymotion-oss/globre"
	"github.com/dailymotion-oss/globre/internal/rules"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// the following build-related variables are set at release-time by goreleaser
// using ldflags
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

var options struct {
	pattern        string
	candidates     []string
	readStdin      bool
	rulesFile      string
	ruleName       string
	checkRules     bool
	logLevel       string
	failOnMismatch bool
	outputResults  string
}

// MatchResults is the JSON document written after a matching run.
type MatchResults struct {
	RunID      string            `json:"runId"`
	Pattern    string            `json:"pattern"`
	Regex      string            `json:"regex"`
	Candidates []CandidateResult `json:"candidates,omitempty"`
}

// CandidateResult is the outcome for a single candidate string.
type CandidateResult struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}

// CheckResults is the JSON document written after a rules-checking run.
type CheckResults struct {
	RunID     string            `json:"runId"`
	RulesFile string            `json:"rulesFile"`
	Rules     []RuleCheckResult `json:"rules"`
}

// RuleCheckResult is the outcome for a single rule of the catalog.
type RuleCheckResult struct {
	Name     string   `json:"name"`
	Pattern  string   `json:"pattern"`
	Regex    string   `json:"regex,omitempty"`
	Error    *string  `json:"error,omitempty"`
	Failures []string `json:"failures,omitempty"`
}

func init() {
	// pattern flags
	pflag.StringVarP(&options.pattern, "pattern", "p", "", `The glob pattern to translate, such as "linux-[0-9]*-{generic,aws}". Mutually exclusive with the "--rule" flag.`)
	pflag.StringVar(&options.rulesFile, "rules-file", os.Getenv("GLOBRE_RULES_FILE"), "Path of a YAML file holding named glob patterns and their test vectors. Default to the GLOBRE_RULES_FILE env var.")
	pflag.StringVar(&options.ruleName, "rule", "", `Name of the pattern to load from the rules file. Mutually exclusive with the "--pattern" flag.`)
	pflag.BoolVar(&options.checkRules, "check-rules", false, "Compile every pattern of the rules file, run its test vectors, and exit.")

	// candidate flags
	pflag.StringArrayVarP(&options.candidates, "candidate", "c", nil, "A candidate string to match against the pattern. Can be repeated. Without any candidate, the translated regular expression is printed instead.")
	pflag.BoolVar(&options.readStdin, "stdin", false, "Read additional candidate strings from stdin, one per line.")

	pflag.StringVar(&options.logLevel, "log-level", "info", "Log level. Supported values: trace, debug, info, warning, error, fatal, panic.")
	pflag.BoolVar(&options.failOnMismatch, "fail-on-mismatch", false, "Exit with error code 1 if any candidate does not match the pattern.")
	pflag.StringVar(&options.outputResults, "output-results", "", "Optional file to write JSON encoded results to. This may be useful to other tools for further processing.")
	pflag.BoolP("help", "h", false, "Display this help message.")
	pflag.Bool("version", false, "Display the version and exit.")

	// usage
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Globre v%s - translates shell glob patterns into regular expressions\n", buildVersion)
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		pflag.PrintDefaults()
	}
}

func main() {
	pflag.Parse()
	printHelpOrVersion()
	setLogLevel()

	if options.checkRules {
		checkRules()
		return
	}

	pattern := resolvePattern()

	logrus.WithField("pattern", pattern).Trace("Translating pattern")
	matcher, err := globre.Compile(pattern)
	if err != nil {
		logrus.
			WithError(err).
			WithField("pattern", pattern).
			Fatal("Failed to translate pattern")
	}
	logrus.WithFields(logrus.Fields{
		"pattern": pattern,
		"regex":   matcher.String(),
	}).Debug("Pattern translated")

	candidates := gatherCandidates()
	if len(candidates) == 0 {
		fmt.Println(matcher.String())
		return
	}

	results := MatchResults{
		RunID:   xid.New().String(),
		Pattern: pattern,
		Regex:   matcher.String(),
	}
	var mismatches int
	for _, candidate := range candidates {
		matched := matcher.MatchString(candidate)
		results.Candidates = append(results.Candidates, CandidateResult{
			Text:    candidate,
			Matched: matched,
		})
		if matched {
			fmt.Println(candidate)
		} else {
			mismatches++
		}
		logrus.WithFields(logrus.Fields{
			"candidate": candidate,
			"matched":   matched,
		}).Trace("Candidate checked")
	}
	logrus.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"mismatches": mismatches,
	}).Info("Matching finished")

	if options.outputResults != "" {
		if err := writeResults(results, options.outputResults); err != nil {
			logrus.Fatalf("Failed to write results: %s", err)
		}
	}

	if options.failOnMismatch && mismatches > 0 {
		logrus.Fatal("Some candidates did not match")
	}
}

func resolvePattern() string {
	switch {
	case options.pattern != "" && options.ruleName != "":
		logrus.Fatal(`The "--pattern" and "--rule" flags are mutually exclusive`)
	case options.pattern != "":
		return options.pattern
	case options.ruleName != "":
		catalog := loadRules()
		rule, err := rules.Find(catalog, options.ruleName)
		if err != nil {
			logrus.
				WithError(err).
				WithField("rules-file", options.rulesFile).
				Fatal("Unknown rule")
		}
		logrus.WithFields(logrus.Fields{
			"rule":    rule.Name,
			"pattern": rule.Pattern,
		}).Debug("Rule resolved")
		return rule.Pattern
	default:
		logrus.Fatal(`A pattern is required: use the "--pattern" flag, or the "--rules-file" and "--rule" flags`)
	}
	return ""
}

func loadRules() []rules.Rule {
	if options.rulesFile == "" {
		logrus.Fatal(`A rules file is required: use the "--rules-file" flag`)
	}
	path, err := homedir.Expand(options.rulesFile)
	if err != nil {
		logrus.
			WithError(err).
			WithField("rules-file", options.rulesFile).
			Fatal("Failed to expand rules file path")
	}

	catalog, err := rules.Load(path)
	if err != nil {
		logrus.
			WithError(err).
			WithField("rules-file", path).
			Fatal("Failed to load rules file")
	}
	logrus.WithFields(logrus.Fields{
		"rules-file": path,
		"rules":      len(catalog),
	}).Debug("Rules loaded")
	return catalog
}

func checkRules() {
	catalog := loadRules()

	results := CheckResults{
		RunID:     xid.New().String(),
		RulesFile: options.rulesFile,
	}
	var failed int
	for _, rule := range catalog {
		result := rules.Check(rule)
		ruleResult := RuleCheckResult{
			Name:     rule.Name,
			Pattern:  rule.Pattern,
			Regex:    result.Regex,
			Failures: result.Failures,
		}
		if result.Err != nil {
			errMsg := result.Err.Error()
			ruleResult.Error = &errMsg
		}
		results.Rules = append(results.Rules, ruleResult)

		logger := logrus.WithField("rule", rule.Name)
		switch {
		case result.Err != nil:
			failed++
			logger.WithError(result.Err).Error("Rule failed to compile")
		case len(result.Failures) > 0:
			failed++
			for _, failure := range result.Failures {
				logger.WithField("failure", failure).Error("Rule test vector failed")
			}
		default:
			logger.WithField("regex", result.Regex).Debug("Rule checked")
		}
	}

	if options.outputResults != "" {
		if err := writeResults(results, options.outputResults); err != nil {
			logrus.Fatalf("Failed to write results: %s", err)
		}
	}

	if failed > 0 {
		logrus.WithField("failed-rules", failed).Fatal("Some rules failed their checks")
	}
	logrus.WithField("rules", len(catalog)).Info("All rules checked")
}

func gatherCandidates() []string {
	candidates := options.candidates
	if options.readStdin {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			candidates = append(candidates, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			logrus.WithError(err).Fatal("Failed to read candidates from stdin")
		}
	}
	return candidates
}

func writeResults(results interface{}, file string) error {
	jsonBytes, err := json.MarshalIndent(results, "", "  ")

	if err != nil {
		return fmt.Errorf("failed to marshall results: %w", err)
	}

	return os.WriteFile(file, jsonBytes, 0644)
}

func setLogLevel() {
	level, err := logrus.ParseLevel(options.logLevel)
	if err != nil {
		logrus.
			WithError(err).
			WithField("log-level", options.logLevel).
			Fatal("Invalid log level")
	}
	logrus.SetLevel(level)
}

func printHelpOrVersion() {
	if printHelp, _ := pflag.CommandLine.GetBool("help"); printHelp {
		fmt.Printf("Globre version %v, commit %v, built at %v\n", buildVersion, buildCommit, buildDate)
		pflag.Usage()
		os.Exit(0)
	}

	if printVersion, _ := pflag.CommandLine.GetBool("version"); printVersion {
		fmt.Printf("version %v, commit %v, built at %v", buildVersion, buildCommit, buildDate)
		os.Exit(0)
	}
}
