package fingerprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogXML = `<fingerprints>
  <fingerprint pattern="^Apache/(\d+\.\d+\.\d+)" description="Apache HTTP Server">
    <example value="Apache/2.4.41">
      <param name="service.version" value="2.4.41"/>
    </example>
    <param pos="1" name="service.version"/>
  </fingerprint>
  <fingerprint pattern="^nginx/(\d+\.\d+\.\d+)" description="nginx">
    <param pos="1" name="service.version"/>
    <param pos="0" name="banner"/>
  </fingerprint>
</fingerprints>`

func TestLoadXML(t *testing.T) {
	db, err := LoadXML([]byte(testCatalogXML))
	require.NoError(t, err)
	require.Equal(t, 2, db.Len())

	// Declaration order preserved.
	assert.Equal(t, "Apache HTTP Server", db.Fingerprints[0].Description)
	assert.Equal(t, "nginx", db.Fingerprints[1].Description)

	fp := db.Fingerprints[0]
	require.Len(t, fp.Params, 1)
	assert.Equal(t, Param{Pos: 1, Name: "service.version"}, fp.Params[0])
	require.Len(t, fp.Examples, 1)
	assert.Equal(t, "Apache/2.4.41", fp.Examples[0].Value)
	assert.Equal(t, "2.4.41", fp.Examples[0].Expected["service.version"])
}

func TestLoadXML_ElementTextExample(t *testing.T) {
	xml := `<fingerprints>
  <fingerprint pattern="test" description="Test">
    <example>a test banner</example>
  </fingerprint>
</fingerprints>`

	db, err := LoadXML([]byte(xml))
	require.NoError(t, err)
	require.Len(t, db.Fingerprints[0].Examples, 1)
	assert.Equal(t, "a test banner", db.Fingerprints[0].Examples[0].Value)
}

func TestLoadXML_Base64Example(t *testing.T) {
	xml := `<fingerprints>
  <fingerprint pattern="test" description="Test">
    <example value="dGVzdA==" encoding="base64"/>
  </fingerprint>
</fingerprints>`

	db, err := LoadXML([]byte(xml))
	require.NoError(t, err)
	assert.True(t, db.Fingerprints[0].Examples[0].IsBase64)
}

func TestLoadXML_BadPattern(t *testing.T) {
	xml := `<fingerprints>
  <fingerprint pattern="^Apache/(\d+" description="broken"/>
</fingerprints>`

	_, err := LoadXML([]byte(xml))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPatternCompile)
}

func TestLoadXML_MissingPattern(t *testing.T) {
	xml := `<fingerprints>
  <fingerprint description="no pattern"/>
</fingerprints>`

	_, err := LoadXML([]byte(xml))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestLoadXML_FilenameExampleRequiresFile(t *testing.T) {
	xml := `<fingerprints>
  <fingerprint pattern="test" description="Test">
    <example filename="banner.txt"/>
  </fingerprint>
</fingerprints>`

	_, err := LoadXML([]byte(xml))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.xml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogXML), 0o644))

	db, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, db.Len())
}

func TestLoadFile_FilenameExample(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banner.txt"), []byte("Apache/2.4.41"), 0o644))

	xml := `<fingerprints>
  <fingerprint pattern="^Apache/(\d+\.\d+\.\d+)" description="Apache">
    <example filename="banner.txt"/>
  </fingerprint>
</fingerprints>`
	path := filepath.Join(dir, "catalog.xml")
	require.NoError(t, os.WriteFile(path, []byte(xml), 0o644))

	db, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, db.Fingerprints[0].Examples, 1)
	assert.Equal(t, "Apache/2.4.41", db.Fingerprints[0].Examples[0].Value)
}

func TestParseYAML_BareList(t *testing.T) {
	data := `
- pattern: '^Apache/(\d+\.\d+\.\d+)'
  description: Apache HTTP Server
  params:
    - pos: 1
      name: service.version
  examples:
    - value: Apache/2.4.41
      expected:
        service.version: 2.4.41
- pattern: '^nginx/'
  description: nginx
`
	db, err := ParseYAML([]byte(data))
	require.NoError(t, err)
	require.Equal(t, 2, db.Len())
	assert.Equal(t, "Apache HTTP Server", db.Fingerprints[0].Description)
	assert.Equal(t, "2.4.41", db.Fingerprints[0].Examples[0].Expected["service.version"])
}

func TestParseYAML_Wrapped(t *testing.T) {
	data := `
fingerprints:
  - pattern: test
    description: Test pattern
`
	db, err := ParseYAML([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, 1, db.Len())
}

func TestParseYAML_Empty(t *testing.T) {
	_, err := ParseYAML([]byte("fingerprints: []"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}
