package ingest

import (
	"fmt"
	"regexp"

	"fuzzylink/model"
)

// Rule is one regex find-and-replace pass applied to a single column
// before a table reaches the matching engine — stripping punctuation
// conventions particular to one data source, normalizing whitespace,
// or removing boilerplate suffixes the tokenizer's stop-word list
// doesn't already cover.
type Rule struct {
	Column      string `yaml:"column"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`

	compiled *regexp.Regexp
}

// compile lazily compiles the rule's pattern, caching the result.
func (r *Rule) compile() (*regexp.Regexp, error) {
	if r.compiled != nil {
		return r.compiled, nil
	}

	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return nil, fmt.Errorf("ingest: compiling pattern %q for column %q: %w", r.Pattern, r.Column, err)
	}

	r.compiled = re
	return re, nil
}

// Preprocess applies every rule, in order, to the matching column of
// every row in the table. Rows are mutated in place; Preprocess does
// not copy the table.
func Preprocess(table model.Table, rules []Rule) error {
	compiled := make([]*regexp.Regexp, len(rules))
	for i := range rules {
		re, err := rules[i].compile()
		if err != nil {
			return err
		}

		compiled[i] = re
	}

	for _, row := range table.Rows {
		for i, rule := range rules {
			value, ok := row[rule.Column]
			if !ok {
				continue
			}

			row[rule.Column] = compiled[i].ReplaceAllString(value, rule.Replacement)
		}
	}

	return nil
}
