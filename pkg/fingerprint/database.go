package fingerprint

// Database is an ordered collection of fingerprints. Order is significant:
// it defines match precedence (first declared, first matched) and is
// preserved from load order. Once loaded, a Database is read-only and may be
// shared across goroutines without synchronization.
type Database struct {
	Fingerprints []*Fingerprint
}

// NewDatabase creates an empty database.
func NewDatabase() *Database {
	return &Database{}
}

// Add appends a fingerprint to the database.
func (db *Database) Add(fp *Fingerprint) {
	db.Fingerprints = append(db.Fingerprints, fp)
}

// Len returns the number of fingerprints in the database.
func (db *Database) Len() int {
	return len(db.Fingerprints)
}

// DatabaseMatch pairs a matched fingerprint with its raw extracted params.
type DatabaseMatch struct {
	Fingerprint *Fingerprint
	Params      map[string]string
}

// FindAllMatches evaluates text against every fingerprint in declaration
// order and returns all that match, order preserved. Multiple fingerprints
// may match the same input; all are returned.
//
// This is a deliberate linear scan: fingerprints are heterogeneous free-form
// patterns with no common prefix structure amenable to indexing, so cost is
// O(len(db) * pattern match cost) per query.
func (db *Database) FindAllMatches(text string) []DatabaseMatch {
	var matches []DatabaseMatch
	for _, fp := range db.Fingerprints {
		if params, ok := fp.Evaluate(text); ok {
			matches = append(matches, DatabaseMatch{Fingerprint: fp, Params: params})
		}
	}
	return matches
}

// FindBestMatch returns the first fingerprint in declaration order that
// matches text, or nil when none match.
func (db *Database) FindBestMatch(text string) *DatabaseMatch {
	for _, fp := range db.Fingerprints {
		if params, ok := fp.Evaluate(text); ok {
			return &DatabaseMatch{Fingerprint: fp, Params: params}
		}
	}
	return nil
}
