// Copyright 2026 Recogo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package pattern

// ParamMatchedString is the parameter under which string-based matchers emit
// the matched input.
const ParamMatchedString = "matched_string"

// StringMatcher matches iff the input equals a stored literal.
type StringMatcher struct {
	literal     string
	description string
}

// NewStringMatcher creates an exact-string matcher.
func NewStringMatcher(literal, description string) *StringMatcher {
	return &StringMatcher{literal: literal, description: description}
}

// Matches reports an exact-equality match.
func (m *StringMatcher) Matches(text string) (Result, error) {
	if text != m.literal {
		return Failure(), nil
	}
	return Success(map[string]string{ParamMatchedString: text}), nil
}

// Description returns the matcher description.
func (m *StringMatcher) Description() string {
	return m.description
}

// Clone returns an independent copy.
func (m *StringMatcher) Clone() Matcher {
	return &StringMatcher{literal: m.literal, description: m.description}
}
