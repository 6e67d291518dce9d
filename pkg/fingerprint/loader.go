package fingerprint

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// XML deserialization structures for fingerprint catalogs.
//
// Catalog shape:
//
//	<fingerprints>
//	  <fingerprint pattern="^Apache/(\d+\.\d+\.\d+)" description="Apache HTTP Server">
//	    <example value="Apache/2.4.41">
//	      <param name="version" value="2.4.41"/>
//	    </example>
//	    <param pos="1" name="version"/>
//	  </fingerprint>
//	</fingerprints>
//
// An example value may also be given as element text, loaded from a sibling
// file via the filename attribute, or base64-encoded with encoding="base64".
type xmlFingerprints struct {
	XMLName      xml.Name         `xml:"fingerprints"`
	Fingerprints []xmlFingerprint `xml:"fingerprint"`
}

type xmlFingerprint struct {
	Pattern     string       `xml:"pattern,attr"`
	Description string       `xml:"description,attr"`
	Examples    []xmlExample `xml:"example"`
	Params      []xmlParam   `xml:"param"`
}

type xmlExample struct {
	Value    string             `xml:"value,attr"`
	Filename string             `xml:"filename,attr"`
	Encoding string             `xml:"encoding,attr"`
	Text     string             `xml:",chardata"`
	Expected []xmlExpectedParam `xml:"param"`
}

type xmlExpectedParam struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlParam struct {
	Pos   int    `xml:"pos,attr"`
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// LoadXML parses an XML fingerprint catalog from raw bytes. Declaration
// order is preserved; an uncompilable pattern fails the whole load with a
// pattern-compile error rather than silently producing a dead fingerprint.
//
// Examples referencing external files are rejected here because there is no
// directory to resolve them against; use LoadFile for those catalogs.
func LoadXML(data []byte) (*Database, error) {
	return loadXML(data, "")
}

// LoadFile reads and parses an XML fingerprint catalog from path. Example
// filename attributes are resolved relative to the catalog's directory.
func LoadFile(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	db, err := loadXML(data, filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("fingerprints", db.Len()).Msg("loaded fingerprint catalog")
	return db, nil
}

func loadXML(data []byte, baseDir string) (*Database, error) {
	var doc xmlFingerprints
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, NewInvalidCatalogError("parse XML: %v", err)
	}

	db := NewDatabase()
	for i, xfp := range doc.Fingerprints {
		if xfp.Pattern == "" {
			return nil, NewInvalidCatalogError("fingerprint %d: missing pattern attribute", i)
		}

		fp, err := NewFingerprint(xfp.Pattern, xfp.Description)
		if err != nil {
			return nil, err
		}

		for _, xp := range xfp.Params {
			fp.AddParam(Param{Pos: xp.Pos, Name: xp.Name, Value: xp.Value})
		}

		for _, xe := range xfp.Examples {
			ex, err := exampleFromXML(xe, baseDir)
			if err != nil {
				return nil, err
			}
			fp.AddExample(ex)
		}

		db.Add(fp)
	}

	return db, nil
}

func exampleFromXML(xe xmlExample, baseDir string) (Example, error) {
	value := xe.Value
	if value == "" {
		value = strings.TrimSpace(xe.Text)
	}

	if xe.Filename != "" {
		if baseDir == "" {
			return Example{}, NewInvalidCatalogError("example %q: filename attribute requires a file-based catalog", xe.Filename)
		}
		content, err := os.ReadFile(filepath.Join(baseDir, xe.Filename))
		if err != nil {
			return Example{}, NewInvalidCatalogError("example file %q: %v", xe.Filename, err)
		}
		value = string(content)
	}

	ex := Example{Value: value, IsBase64: xe.Encoding == "base64"}
	for _, ep := range xe.Expected {
		ex.AddExpected(ep.Name, ep.Value)
	}
	return ex, nil
}
