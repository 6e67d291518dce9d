package fingerprint

import (
	"regexp"
	"strings"
)

// tmpPrefix marks parameters that are internal to catalog processing and
// must never appear in final output.
const tmpPrefix = "_tmp."

var placeholderRe = regexp.MustCompile(`\{[^}]+\}`)

// Interpolator expands {name} placeholders against a parameter map and
// filters out parameters flagged as temporary. It is the single
// output-shaping hook between raw extraction and the results a Matcher
// returns.
type Interpolator struct {
	tmpParams map[string]struct{}
}

// NewInterpolator creates an interpolator with no explicitly marked
// temporary parameters. The _tmp. prefix convention applies regardless.
func NewInterpolator() *Interpolator {
	return &Interpolator{tmpParams: make(map[string]struct{})}
}

// MarkTemporary registers name as internal so FilterTemporary removes it.
func (ip *Interpolator) MarkTemporary(name string) {
	ip.tmpParams[name] = struct{}{}
}

// Interpolate substitutes every {name} placeholder in template whose name is
// present in params. Placeholders that remain after all known substitutions
// are replaced with the empty string: an unresolved parameter degrades to
// empty output rather than failing.
func (ip *Interpolator) Interpolate(template string, params map[string]string) string {
	result := template
	for name, value := range params {
		result = strings.ReplaceAll(result, "{"+name+"}", value)
	}
	return placeholderRe.ReplaceAllString(result, "")
}

// FilterTemporary removes, in place, every entry that was marked temporary
// or that carries the _tmp. prefix. Both mechanisms apply; a prefixed name
// need not have been registered.
func (ip *Interpolator) FilterTemporary(params map[string]string) {
	for name := range params {
		if _, marked := ip.tmpParams[name]; marked || strings.HasPrefix(name, tmpPrefix) {
			delete(params, name)
		}
	}
}

// ProcessOutputParams applies all output shaping to a raw extracted
// parameter map. The Matcher calls this once per match before emitting a
// result; further normalization (vendor/product mapping and the like)
// belongs here, not in the matching algorithm.
func (ip *Interpolator) ProcessOutputParams(params map[string]string) {
	ip.FilterTemporary(params)
}
