// Copyright 2026 Recogo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package pattern

import "fmt"

// ParamSimilarity is the parameter under which the fuzzy matcher emits the
// computed similarity, formatted to three decimals.
const ParamSimilarity = "similarity"

// FuzzyMatcher matches text whose Levenshtein similarity to a reference
// string meets an inclusive threshold. Confidence equals the similarity.
type FuzzyMatcher struct {
	reference   string
	description string
	threshold   float64
}

// NewFuzzyMatcher creates a fuzzy matcher. threshold is clamped to [0,1];
// a text matches when Similarity(reference, text) >= threshold.
func NewFuzzyMatcher(reference, description string, threshold float64) *FuzzyMatcher {
	if threshold < 0 {
		threshold = 0
	} else if threshold > 1 {
		threshold = 1
	}
	return &FuzzyMatcher{reference: reference, description: description, threshold: threshold}
}

// Matches evaluates text against the reference string.
func (m *FuzzyMatcher) Matches(text string) (Result, error) {
	similarity := Similarity(m.reference, text)
	if similarity < m.threshold {
		return Failure(), nil
	}

	params := map[string]string{
		ParamMatchedString: text,
		ParamSimilarity:    fmt.Sprintf("%.3f", similarity),
	}
	return WithConfidence(params, similarity), nil
}

// Description returns the matcher description.
func (m *FuzzyMatcher) Description() string {
	return m.description
}

// Clone returns an independent copy.
func (m *FuzzyMatcher) Clone() Matcher {
	return &FuzzyMatcher{reference: m.reference, description: m.description, threshold: m.threshold}
}

// Similarity computes 1 - dist/maxLen over plain Levenshtein distance,
// where lengths are counted in runes so multi-byte text measures correctly.
// Two empty strings are fully similar; one empty and one non-empty string
// are fully dissimilar.
func Similarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	switch {
	case len(ra) == 0 && len(rb) == 0:
		return 1.0
	case len(ra) == 0 || len(rb) == 0:
		return 0.0
	}

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}

	return 1.0 - float64(levenshtein(ra, rb))/float64(maxLen)
}

// levenshtein computes plain edit distance (insert, delete, substitute, all
// cost 1) with a single-row DP.
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
