package series

import (
	"fmt"
	"regexp"
)

// RuleSpec is the uncompiled form of a Rule, as written in configuration files.
type RuleSpec struct {
	// Pattern is an RE2 regular expression.
	Pattern string `yaml:"pattern"`

	// Series is the fixed series name returned on match.
	// When empty, the matched text is returned instead.
	Series string `yaml:"series,omitempty"`
}

// Rule maps task names matching Pattern to a series.
type Rule struct {
	Pattern *regexp.Regexp
	Series  string
}

// Compile builds a Rule from a pattern and an optional fixed series name.
func Compile(pattern, series string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Pattern: re, Series: series}, nil
}

// MustCompile is like Compile but panics on an invalid pattern.
func MustCompile(pattern, series string) Rule {
	r, err := Compile(pattern, series)
	if err != nil {
		panic(err)
	}
	return r
}

// CompileRules compiles specs in order.
func CompileRules(specs []RuleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for i, spec := range specs {
		if spec.Pattern == "" {
			return nil, fmt.Errorf("rule %d: %w", i, ErrEmptyPattern)
		}
		r, err := Compile(spec.Pattern, spec.Series)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%q): %w", i, spec.Pattern, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Match searches task for the rule's pattern and returns the series it yields.
func (r Rule) Match(task string) (string, bool) {
	loc := r.Pattern.FindStringSubmatchIndex(task)
	if loc == nil {
		return "", false
	}
	if r.Series != "" {
		return r.Series, true
	}
	// Prefer the first capture group so a pattern can require context
	// around the part that names the series.
	if len(loc) >= 4 && loc[2] >= 0 {
		return task[loc[2]:loc[3]], true
	}
	return task[loc[0]:loc[1]], true
}

// String returns the rule in "pattern -> series" form.
func (r Rule) String() string {
	series := r.Series
	if series == "" {
		series = "<match>"
	}
	return r.Pattern.String() + " -> " + series
}
