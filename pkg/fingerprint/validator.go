package fingerprint

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

// ExampleResult is the outcome of matching one example against its own
// fingerprint.
type ExampleResult struct {
	Value    string   `json:"value"`
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// FingerprintReport aggregates example results for one fingerprint.
type FingerprintReport struct {
	Description string          `json:"description"`
	Pattern     string          `json:"pattern"`
	Examples    []ExampleResult `json:"examples"`
	Passed      int             `json:"passed"`
	Failed      int             `json:"failed"`
}

// Report is the outcome of validating a whole database.
type Report struct {
	RunID        string              `json:"run_id"`
	Fingerprints []FingerprintReport `json:"fingerprints"`
	Passed       int                 `json:"passed"`
	Failed       int                 `json:"failed"`
}

// OK reports whether every example in the run passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Validate runs every fingerprint's examples through its own pattern and
// compares extracted parameters against the example's expected values.
//
// Failures are hard mismatches: the example not matching at all, or an
// expected parameter missing or carrying the wrong value. Version-looking
// parameters that do not parse as semantic versions produce warnings only;
// plenty of real products version themselves in ways semver cannot express.
func Validate(db *Database) *Report {
	report := &Report{RunID: uuid.NewString()}

	for _, fp := range db.Fingerprints {
		fpReport := FingerprintReport{
			Description: fp.Description,
			Pattern:     fp.Pattern(),
		}

		for _, ex := range fp.Examples {
			res := validateExample(fp, ex)
			if res.Passed {
				fpReport.Passed++
			} else {
				fpReport.Failed++
			}
			fpReport.Examples = append(fpReport.Examples, res)
		}

		report.Passed += fpReport.Passed
		report.Failed += fpReport.Failed
		report.Fingerprints = append(report.Fingerprints, fpReport)
	}

	return report
}

func validateExample(fp *Fingerprint, ex Example) ExampleResult {
	res := ExampleResult{Value: ex.Value}

	text := ex.Value
	if ex.IsBase64 {
		decoded, err := base64.StdEncoding.DecodeString(ex.Value)
		if err != nil {
			res.Failures = append(res.Failures, fmt.Sprintf("base64 decode: %v", err))
			return res
		}
		if !utf8.Valid(decoded) {
			res.Failures = append(res.Failures, "decoded bytes are not UTF-8")
			return res
		}
		text = string(decoded)
	}

	params, ok := fp.Evaluate(text)
	if !ok {
		res.Failures = append(res.Failures, "example does not match pattern")
		return res
	}

	for name, want := range ex.Expected {
		got, present := params[name]
		switch {
		case !present:
			res.Failures = append(res.Failures, fmt.Sprintf("expected param %q not extracted", name))
		case got != want:
			res.Failures = append(res.Failures, fmt.Sprintf("param %q: got %q, want %q", name, got, want))
		}
	}

	for name, value := range params {
		if !strings.HasSuffix(name, ".version") || value == "" {
			continue
		}
		if _, err := semver.NewVersion(value); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("param %q value %q is not a semantic version", name, value))
		}
	}

	res.Passed = len(res.Failures) == 0
	return res
}
