// Package manifest parses the plugin manifest (manifest.xml and its legacy
// App/info.xml location).
//
// A manifest is an XML document whose root element is <info>:
//
//	<info>
//	    <name>Template</name>
//	    <version>0.1.0</version>
//	</info>
//
// A well-formed document with another root parses, but carries no info.
package manifest

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrNotFound is returned when no manifest could be read.
	ErrNotFound = errors.New("manifest file not found")

	// ErrInvalid is returned when a manifest is not well-formed XML.
	ErrInvalid = errors.New("manifest file is not a valid XML file")
)

// rootElement is the element that carries the plugin info.
const rootElement = "info"

// Info holds the plugin metadata of a manifest.
type Info struct {
	Name        string
	Version     string
	Title       string
	Description string
}

// Manifest is a parsed manifest file.
type Manifest struct {
	Path string
	Root string // local name of the document element
	Info Info
}

// HasInfo reports whether the document element is <info>.
func (m *Manifest) HasInfo() bool {
	return m.Root == rootElement
}

type document struct {
	XMLName     xml.Name
	Name        string `xml:"name"`
	Version     string `xml:"version"`
	Title       string `xml:"title"`
	Description string `xml:"description"`
}

// Parse reads and parses the manifest at path.
func Parse(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}

	m := &Manifest{Path: path, Root: doc.XMLName.Local}
	if m.HasInfo() {
		m.Info = Info{
			Name:        strings.TrimSpace(doc.Name),
			Version:     strings.TrimSpace(doc.Version),
			Title:       strings.TrimSpace(doc.Title),
			Description: strings.TrimSpace(doc.Description),
		}
	}
	return m, nil
}

// Validate parses path without caching and returns the parse error, if
// any.
func Validate(path string) error {
	_, err := Parse(path)
	return err
}
