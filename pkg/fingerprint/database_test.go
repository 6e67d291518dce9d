package fingerprint

import "testing"

func buildTestDatabase(t *testing.T) *Database {
	t.Helper()

	db := NewDatabase()
	for _, spec := range []struct {
		pattern     string
		description string
	}{
		{`^Apache/(\d+\.\d+)`, "Apache HTTP Server"},
		{`^nginx/(\d+\.\d+)`, "nginx"},
		{`Apache`, "Anything Apache"},
	} {
		fp, err := NewFingerprint(spec.pattern, spec.description)
		if err != nil {
			t.Fatalf("compile %q: %v", spec.pattern, err)
		}
		fp.AddParam(NewParam(1, "version"))
		db.Add(fp)
	}
	return db
}

func TestFindAllMatches_OrderPreservation(t *testing.T) {
	db := buildTestDatabase(t)

	// First and third fingerprints match; order must mirror declaration.
	matches := db.FindAllMatches("Apache/2.4.41")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Fingerprint.Description != "Apache HTTP Server" {
		t.Fatalf("first match out of order: %s", matches[0].Fingerprint.Description)
	}
	if matches[1].Fingerprint.Description != "Anything Apache" {
		t.Fatalf("second match out of order: %s", matches[1].Fingerprint.Description)
	}
}

func TestFindAllMatches_Empty(t *testing.T) {
	db := NewDatabase()
	fp, err := NewFingerprint(`^Apache/`, "Apache")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	db.Add(fp)

	if matches := db.FindAllMatches("nginx/1.20.0"); len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}
}

func TestFindBestMatch(t *testing.T) {
	db := buildTestDatabase(t)

	best := db.FindBestMatch("Apache/2.4.41")
	if best == nil {
		t.Fatalf("expected a match")
	}
	if best.Fingerprint.Description != "Apache HTTP Server" {
		t.Fatalf("best match must be first in declaration order, got %s", best.Fingerprint.Description)
	}
	if best.Params["version"] != "2.4" {
		t.Fatalf("expected version 2.4, got %q", best.Params["version"])
	}

	if db.FindBestMatch("unknown banner") != nil {
		t.Fatalf("expected nil for unmatched input")
	}
}

func TestDatabase_Len(t *testing.T) {
	db := buildTestDatabase(t)
	if db.Len() != 3 {
		t.Fatalf("expected 3 fingerprints, got %d", db.Len())
	}
}
