// Copyright 2026 Recogo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package pattern defines the pluggable pattern-matcher capability used to
// decouple matching strategies (regex, exact string, fuzzy similarity, or
// user-defined) from the fingerprint machinery, together with the built-in
// matchers and a named registry.
package pattern

// Result is the outcome of one pattern match operation. Confidence is
// meaningful for similarity-based matchers; exact and regex matchers report
// 1.0 on match and 0.0 otherwise.
type Result struct {
	Matched    bool
	Params     map[string]string
	Confidence float64
}

// Success builds a matched result with confidence 1.0.
func Success(params map[string]string) Result {
	return Result{Matched: true, Params: params, Confidence: 1.0}
}

// Failure builds an unmatched result.
func Failure() Result {
	return Result{Params: map[string]string{}}
}

// WithConfidence builds a result with an explicit confidence, clamped to
// [0,1]. The result counts as matched iff params is non-empty.
func WithConfidence(params map[string]string, confidence float64) Result {
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}
	return Result{Matched: len(params) > 0, Params: params, Confidence: confidence}
}

// Matcher is the capability contract for pattern matching strategies.
// Implementations must be safe for concurrent use: every call is a pure
// function of the input text plus configuration fixed at construction.
type Matcher interface {
	// Matches evaluates text against this pattern.
	Matches(text string) (Result, error)

	// Description returns a human-readable description of the matcher.
	Description() string

	// Clone returns a new, independently owned matcher with identical
	// configuration.
	Clone() Matcher
}
