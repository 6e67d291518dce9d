// Package fingerprint provides the core data model and matching engine for
// classifying free-form text (service banners, headers, protocol handshakes)
// against an ordered database of named pattern rules.
package fingerprint

import (
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single pattern evaluation. regexp2 is a backtracking
// engine, so a pathological pattern/input pair could otherwise scan unbounded.
const matchTimeout = 2 * time.Second

// Param maps a capture-group position in a fingerprint's pattern to a named
// output field. Pos is 1-indexed; position 0 refers to the whole match.
type Param struct {
	Pos   int    `yaml:"pos"`
	Name  string `yaml:"name"`
	Value string `yaml:"value,omitempty"` // optional default value
}

// NewParam creates a parameter rule without a default value.
func NewParam(pos int, name string) Param {
	return Param{Pos: pos, Name: name}
}

// NewParamWithValue creates a parameter rule carrying a default value.
func NewParamWithValue(pos int, name, value string) Param {
	return Param{Pos: pos, Name: name, Value: value}
}

// Example is a verification input for a fingerprint. It is not consulted on
// the matching path; the validator uses it to prove a fingerprint against
// known-good inputs.
type Example struct {
	Value    string            `yaml:"value"`
	IsBase64 bool              `yaml:"base64,omitempty"`
	Expected map[string]string `yaml:"expected,omitempty"`
}

// NewExample creates a plain-text example.
func NewExample(value string) Example {
	return Example{Value: value, Expected: make(map[string]string)}
}

// NewBase64Example creates an example whose value is base64-encoded and must
// be decoded before matching.
func NewBase64Example(value string) Example {
	return Example{Value: value, IsBase64: true, Expected: make(map[string]string)}
}

// AddExpected records an expected parameter value for this example.
func (e *Example) AddExpected(name, value string) {
	if e.Expected == nil {
		e.Expected = make(map[string]string)
	}
	e.Expected[name] = value
}

// Fingerprint is a single classification rule: a compiled pattern, a
// human-readable description, the parameter rules extracted on match, and
// verification examples.
//
// A Fingerprint only exists in a fully-built state: NewFingerprint fails if
// the pattern does not compile. Once loaded into a Database it is treated as
// immutable and may be shared across goroutines without locking.
type Fingerprint struct {
	pattern     *regexp2.Regexp
	Description string
	Params      []Param
	Examples    []Example
}

// NewFingerprint compiles pattern and returns the fingerprint. The pattern
// engine is PCRE-compatible: backreferences and lookarounds found in the wild
// in fingerprint catalogs compile here even though RE2 rejects them.
func NewFingerprint(pattern, description string) (*Fingerprint, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, NewPatternCompileError(pattern, err)
	}
	re.MatchTimeout = matchTimeout

	return &Fingerprint{
		pattern:     re,
		Description: description,
	}, nil
}

// Pattern returns the source text of the compiled pattern.
func (f *Fingerprint) Pattern() string {
	return f.pattern.String()
}

// AddParam appends a parameter rule. Load-time only; fingerprints are not
// mutated after their database is handed to a matcher.
func (f *Fingerprint) AddParam(p Param) {
	f.Params = append(f.Params, p)
}

// AddExample appends a verification example. Load-time only.
func (f *Fingerprint) AddExample(e Example) {
	f.Examples = append(f.Examples, e)
}

// Evaluate runs the compiled pattern against text. It returns (nil, false)
// when the pattern does not match. On match it walks the parameter rules in
// declaration order and maps each rule's capture position to its name.
//
// Extraction is best effort: a rule whose position is out of range, or whose
// group did not participate in the match, is skipped without error. Catalog
// authors rely on this to write optional params across pattern variants.
func (f *Fingerprint) Evaluate(text string) (map[string]string, bool) {
	m, err := f.pattern.FindStringMatch(text)
	if err != nil || m == nil {
		// err is only ever a match timeout; a fingerprint that cannot be
		// evaluated in time is treated as not matching.
		return nil, false
	}

	params := make(map[string]string, len(f.Params))
	for _, p := range f.Params {
		g := m.GroupByNumber(p.Pos)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		params[p.Name] = g.String()
	}

	return params, true
}

// Clone returns an independent copy of the fingerprint for embedding in a
// match result. The compiled pattern is immutable and shared; parameter and
// example slices are copied.
func (f *Fingerprint) Clone() *Fingerprint {
	c := &Fingerprint{
		pattern:     f.pattern,
		Description: f.Description,
	}
	if f.Params != nil {
		c.Params = append([]Param(nil), f.Params...)
	}
	if f.Examples != nil {
		c.Examples = append([]Example(nil), f.Examples...)
	}
	return c
}
