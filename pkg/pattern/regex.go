// Copyright 2026 Recogo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package pattern

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

const regexMatchTimeout = 2 * time.Second

// RegexMatcher matches text against a compiled pattern. On match it emits
// one parameter per participating capture group, named capture_<index>.
type RegexMatcher struct {
	pattern     *regexp2.Regexp
	description string
}

// NewRegexMatcher compiles pattern and returns the matcher.
func NewRegexMatcher(pattern, description string) (*RegexMatcher, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = regexMatchTimeout

	return &RegexMatcher{pattern: re, description: description}, nil
}

// Matches evaluates text and extracts capture groups.
func (m *RegexMatcher) Matches(text string) (Result, error) {
	match, err := m.pattern.FindStringMatch(text)
	if err != nil {
		return Failure(), fmt.Errorf("match %q: %w", m.description, err)
	}
	if match == nil {
		return Failure(), nil
	}

	params := make(map[string]string)
	for _, num := range m.pattern.GetGroupNumbers() {
		if num == 0 {
			continue
		}
		g := match.GroupByNumber(num)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		params[fmt.Sprintf("capture_%d", num)] = g.String()
	}

	return Success(params), nil
}

// Description returns the matcher description.
func (m *RegexMatcher) Description() string {
	return m.description
}

// Clone returns an independent matcher sharing the immutable compiled
// pattern.
func (m *RegexMatcher) Clone() Matcher {
	return &RegexMatcher{pattern: m.pattern, description: m.description}
}
