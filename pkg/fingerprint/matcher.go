package fingerprint

import (
	"encoding/base64"
	"encoding/json"
	"unicode/utf8"
)

// MatchResult is one fingerprint match for one input. The embedded
// fingerprint is an independent clone; results are transient and carry no
// identity beyond the call that produced them.
type MatchResult struct {
	Fingerprint *Fingerprint
	Params      map[string]string
	Confidence  float64
}

// NewMatchResult builds a result for a matched fingerprint. Confidence is
// fixed at 1.0 for pattern matches.
func NewMatchResult(fp *Fingerprint, params map[string]string) MatchResult {
	return MatchResult{Fingerprint: fp, Params: params, Confidence: 1.0}
}

// JSON renders the result as an indented JSON object holding the
// fingerprint description and the processed parameters.
func (r *MatchResult) JSON() (string, error) {
	out := struct {
		Description string            `json:"description"`
		Params      map[string]string `json:"params"`
	}{
		Description: r.Fingerprint.Description,
		Params:      r.Params,
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Matcher runs inputs against a fingerprint database and post-processes
// extracted parameters. It holds the database read-only; a single Matcher
// may be used from multiple goroutines concurrently.
type Matcher struct {
	db           *Database
	interpolator *Interpolator
}

// NewMatcher creates a matcher over db. The database must be fully loaded
// before the first call; the matcher never mutates it.
func NewMatcher(db *Database) *Matcher {
	return &Matcher{
		db:           db,
		interpolator: NewInterpolator(),
	}
}

// Database returns the underlying fingerprint database.
func (m *Matcher) Database() *Database {
	return m.db
}

// Interpolator returns the matcher's parameter interpolator, exposed so
// callers can mark temporary parameters before matching.
func (m *Matcher) Interpolator() *Interpolator {
	return m.interpolator
}

// MatchText evaluates text against every fingerprint and returns all
// matches in declaration order. Each result carries a cloned fingerprint
// and its post-processed parameter map. No match is not an error; the
// returned slice is simply empty.
func (m *Matcher) MatchText(text string) []MatchResult {
	var results []MatchResult
	for _, dm := range m.db.FindAllMatches(text) {
		m.interpolator.ProcessOutputParams(dm.Params)
		results = append(results, NewMatchResult(dm.Fingerprint.Clone(), dm.Params))
	}
	return results
}

// MatchTextBest returns the first match in declaration order, or nil.
func (m *Matcher) MatchTextBest(text string) *MatchResult {
	results := m.MatchText(text)
	if len(results) == 0 {
		return nil
	}
	return &results[0]
}

// MatchBase64 decodes encoded as standard base64, requires the decoded bytes
// to be valid UTF-8 text, and delegates to MatchText.
func (m *Matcher) MatchBase64(encoded string) ([]MatchResult, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, NewDecodeError(err)
	}
	if !utf8.Valid(decoded) {
		return nil, NewInvalidTextError()
	}
	return m.MatchText(string(decoded)), nil
}

// MatchBatch applies MatchText independently to each input, preserving
// input order. The database is read-only, so batch items share no state.
func (m *Matcher) MatchBatch(texts []string) [][]MatchResult {
	results := make([][]MatchResult, len(texts))
	for i, text := range texts {
		results[i] = m.MatchText(text)
	}
	return results
}
