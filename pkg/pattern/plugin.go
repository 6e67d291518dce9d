// Copyright 2026 Recogo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package pattern

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"github.com/recogo/recogo/pkg/fingerprint"
)

// PluginFingerprint is a fingerprint whose matching strategy is supplied by
// a Matcher rather than being fixed to the built-in regex engine. It reuses
// the core parameter-rule and example model.
type PluginFingerprint struct {
	ID          string
	Description string
	Matcher     Matcher
	Examples    []fingerprint.Example
	Params      []fingerprint.Param
}

// NewPluginFingerprint creates a fingerprint backed by a custom matcher.
func NewPluginFingerprint(id, description string, matcher Matcher, examples []fingerprint.Example, params []fingerprint.Param) *PluginFingerprint {
	return &PluginFingerprint{
		ID:          id,
		Description: description,
		Matcher:     matcher,
		Examples:    examples,
		Params:      params,
	}
}

// NewRegexPluginFingerprint creates a plugin fingerprint backed by the
// built-in regex matcher.
func NewRegexPluginFingerprint(id, pattern, description string, examples []fingerprint.Example, params []fingerprint.Param) (*PluginFingerprint, error) {
	matcher, err := NewRegexMatcher(pattern, description)
	if err != nil {
		return nil, err
	}
	return NewPluginFingerprint(id, description, matcher, examples, params), nil
}

// TestMatch evaluates text against the fingerprint's matcher.
func (pf *PluginFingerprint) TestMatch(text string) (Result, error) {
	return pf.Matcher.Matches(text)
}

// ValidateExamples runs each example through the matcher and reports, per
// example in declaration order, whether it matched. Base64 examples are
// decoded first; a decode failure fails the whole validation since it means
// the catalog entry itself is broken.
func (pf *PluginFingerprint) ValidateExamples() ([]bool, error) {
	results := make([]bool, 0, len(pf.Examples))

	for i, ex := range pf.Examples {
		text := ex.Value
		if ex.IsBase64 {
			decoded, err := base64.StdEncoding.DecodeString(ex.Value)
			if err != nil {
				return nil, fmt.Errorf("fingerprint %s example %d: %w", pf.ID, i, err)
			}
			if !utf8.Valid(decoded) {
				return nil, fmt.Errorf("fingerprint %s example %d: decoded bytes are not UTF-8", pf.ID, i)
			}
			text = string(decoded)
		}

		res, err := pf.Matcher.Matches(text)
		if err != nil {
			return nil, fmt.Errorf("fingerprint %s example %d: %w", pf.ID, i, err)
		}
		results = append(results, res.Matched)
	}

	return results, nil
}
