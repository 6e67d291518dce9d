package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolate_RoundTrip(t *testing.T) {
	ip := NewInterpolator()
	params := map[string]string{
		"v": "Apache",
		"p": "HTTP Server",
	}

	assert.Equal(t, "cpe:/a:Apache:HTTP Server", ip.Interpolate("cpe:/a:{v}:{p}", params))
}

func TestInterpolate_UnresolvedBecomesEmpty(t *testing.T) {
	ip := NewInterpolator()

	result := ip.Interpolate("cpe:/a:{v}:{p}", map[string]string{"v": "Apache"})
	assert.Equal(t, "cpe:/a:Apache:", result)
	assert.NotContains(t, result, "{")
}

func TestInterpolate_NoPlaceholders(t *testing.T) {
	ip := NewInterpolator()
	assert.Equal(t, "plain text", ip.Interpolate("plain text", map[string]string{"v": "x"}))
}

func TestFilterTemporary_MarkedName(t *testing.T) {
	ip := NewInterpolator()
	ip.MarkTemporary("_tmp.os")

	params := map[string]string{
		"_tmp.os": "Linux",
		"product": "Apache",
	}
	ip.FilterTemporary(params)

	assert.Equal(t, map[string]string{"product": "Apache"}, params)
}

func TestFilterTemporary_PrefixConvention(t *testing.T) {
	ip := NewInterpolator()

	// _tmp. prefix applies even without explicit registration.
	params := map[string]string{
		"_tmp.version": "2.4",
		"internal":     "keep",
		"product":      "Apache",
	}
	ip.FilterTemporary(params)

	assert.Len(t, params, 2)
	assert.NotContains(t, params, "_tmp.version")
}

func TestFilterTemporary_MarkedNonPrefixed(t *testing.T) {
	ip := NewInterpolator()
	ip.MarkTemporary("scratch")

	params := map[string]string{
		"scratch": "x",
		"product": "Apache",
	}
	ip.FilterTemporary(params)

	assert.Equal(t, map[string]string{"product": "Apache"}, params)
}

func TestProcessOutputParams(t *testing.T) {
	ip := NewInterpolator()

	params := map[string]string{
		"_tmp.raw": "noise",
		"product":  "Apache",
	}
	ip.ProcessOutputParams(params)

	assert.Equal(t, map[string]string{"product": "Apache"}, params)
}
