package fingerprint

import (
	"errors"
	"testing"
)

func TestNewFingerprint_CompileError(t *testing.T) {
	_, err := NewFingerprint(`^Apache/(\d+`, "broken")
	if err == nil {
		t.Fatalf("expected compile error for unbalanced group")
	}
	if !errors.Is(err, ErrPatternCompile) {
		t.Fatalf("expected ErrPatternCompile, got %v", err)
	}
}

func TestNewFingerprint_EmptyDescription(t *testing.T) {
	fp, err := NewFingerprint(`^test$`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fp.Description != "" {
		t.Fatalf("description should be stored verbatim, got %q", fp.Description)
	}
}

func TestNewFingerprint_PCREConstructs(t *testing.T) {
	// Backreferences and lookaheads appear in real catalogs; RE2 rejects
	// them but the engine here must not.
	for _, pattern := range []string{
		`^(\w+) \1$`,
		`^Apache(?!-Coyote)/(\d+\.\d+)`,
	} {
		if _, err := NewFingerprint(pattern, "pcre"); err != nil {
			t.Fatalf("pattern %q failed to compile: %v", pattern, err)
		}
	}
}

func TestEvaluate_CaptureCompleteness(t *testing.T) {
	fp, err := NewFingerprint(`^Apache/(\d+\.\d+\.\d+)`, "Apache HTTP Server")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fp.AddParam(NewParam(1, "version"))

	params, ok := fp.Evaluate("Apache/2.4.41")
	if !ok {
		t.Fatalf("expected match")
	}
	if params["version"] != "2.4.41" {
		t.Fatalf("expected version 2.4.41, got %q", params["version"])
	}
}

func TestEvaluate_WholeMatchPosition(t *testing.T) {
	fp, err := NewFingerprint(`nginx/\S+`, "nginx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fp.AddParam(NewParam(0, "banner"))

	params, ok := fp.Evaluate("Server: nginx/1.20.0 (Ubuntu)")
	if !ok {
		t.Fatalf("expected match")
	}
	if params["banner"] != "nginx/1.20.0" {
		t.Fatalf("expected whole-match capture, got %q", params["banner"])
	}
}

func TestEvaluate_MissingCaptureTolerance(t *testing.T) {
	fp, err := NewFingerprint(`^Apache/(\d+\.\d+)`, "Apache")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fp.AddParam(NewParam(1, "version"))
	fp.AddParam(NewParam(7, "nonexistent"))

	params, ok := fp.Evaluate("Apache/2.4")
	if !ok {
		t.Fatalf("expected match")
	}
	if _, present := params["nonexistent"]; present {
		t.Fatalf("out-of-range param must be skipped, not extracted")
	}
	if params["version"] != "2.4" {
		t.Fatalf("in-range param must still be extracted, got %q", params["version"])
	}
}

func TestEvaluate_NonParticipatingGroup(t *testing.T) {
	fp, err := NewFingerprint(`^SSH-(\d\.\d)(?:-(\S+))?`, "SSH")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fp.AddParam(NewParam(1, "protocol"))
	fp.AddParam(NewParam(2, "software"))

	params, ok := fp.Evaluate("SSH-2.0")
	if !ok {
		t.Fatalf("expected match")
	}
	if _, present := params["software"]; present {
		t.Fatalf("non-participating group must yield no param")
	}
	if params["protocol"] != "2.0" {
		t.Fatalf("expected protocol 2.0, got %q", params["protocol"])
	}
}

func TestEvaluate_NoMatch(t *testing.T) {
	fp, err := NewFingerprint(`^Apache/`, "Apache")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params, ok := fp.Evaluate("nginx/1.20.0"); ok || params != nil {
		t.Fatalf("expected no match, got %v", params)
	}
}

func TestClone_Independent(t *testing.T) {
	fp, err := NewFingerprint(`^x$`, "original")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fp.AddParam(NewParam(0, "a"))

	clone := fp.Clone()
	clone.AddParam(NewParam(0, "b"))
	clone.Description = "changed"

	if len(fp.Params) != 1 {
		t.Fatalf("mutating clone must not affect original params, got %d", len(fp.Params))
	}
	if fp.Description != "original" {
		t.Fatalf("mutating clone must not affect original description")
	}
	if clone.Pattern() != fp.Pattern() {
		t.Fatalf("clone must share the pattern source")
	}
}

func TestExample_AddExpected(t *testing.T) {
	ex := NewBase64Example("dGVzdA==")
	ex.AddExpected("version", "1.0")

	if !ex.IsBase64 {
		t.Fatalf("expected base64 flag")
	}
	if ex.Expected["version"] != "1.0" {
		t.Fatalf("expected value not recorded")
	}
}
