// Copyright 2026 Recogo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultConstructors(t *testing.T) {
	s := Success(map[string]string{"k": "v"})
	assert.True(t, s.Matched)
	assert.Equal(t, 1.0, s.Confidence)

	f := Failure()
	assert.False(t, f.Matched)
	assert.Equal(t, 0.0, f.Confidence)
	assert.Empty(t, f.Params)

	c := WithConfidence(map[string]string{"k": "v"}, 0.7)
	assert.True(t, c.Matched)
	assert.Equal(t, 0.7, c.Confidence)

	// Empty params means unmatched regardless of confidence.
	e := WithConfidence(map[string]string{}, 0.9)
	assert.False(t, e.Matched)
}

func TestWithConfidence_Clamps(t *testing.T) {
	assert.Equal(t, 1.0, WithConfidence(map[string]string{"k": "v"}, 3.0).Confidence)
	assert.Equal(t, 0.0, WithConfidence(map[string]string{"k": "v"}, -0.5).Confidence)
}

func TestStringMatcher(t *testing.T) {
	m := NewStringMatcher("exact match", "Exact match test")

	res, err := m.Matches("exact match")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, "exact match", res.Params[ParamMatchedString])
	assert.Equal(t, 1.0, res.Confidence)

	res, err = m.Matches("exact match ")
	require.NoError(t, err)
	assert.False(t, res.Matched)

	assert.Equal(t, "Exact match test", m.Description())
}

func TestStringMatcher_Clone(t *testing.T) {
	m := NewStringMatcher("hello", "greeting")
	clone := m.Clone()

	res, err := clone.Matches("hello")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, m.Description(), clone.Description())
}
