// Package pkgjson reads the plugin's package descriptor (package.json) and
// rewrites its version in place.
//
// The descriptor is kept as raw JSON so fields the doctor does not know
// about survive a rewrite unchanged and in their original order.
package pkgjson

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var (
	// ErrNotFound is returned when the descriptor file cannot be read.
	ErrNotFound = errors.New("no package.json found")

	// ErrInvalidFormat is returned when the descriptor is not JSON or is a
	// falsy JSON value.
	ErrInvalidFormat = errors.New(`invalid "package.json" is not a valid JSON file`)
)

// RequiredFields lists the keys every plugin descriptor must carry.
var RequiredFields = []string{"name", "plugin_name", "version", "description"}

// Indent used when the descriptor is written back.
const indent = "    "

// Descriptor is a loaded package.json.
type Descriptor struct {
	path string
	data []byte
}

// Load reads and checks the descriptor at path.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return Parse(path, data)
}

// Parse checks data and returns a descriptor that saves to path.
func Parse(path string, data []byte) (*Descriptor, error) {
	if !gjson.ValidBytes(data) || falsy(gjson.ParseBytes(data)) {
		return nil, ErrInvalidFormat
	}
	return &Descriptor{path: path, data: data}, nil
}

func falsy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return v.Num == 0
	case gjson.String:
		return v.Str == ""
	}
	return false
}

// Path returns the file the descriptor was loaded from.
func (d *Descriptor) Path() string { return d.path }

// Get returns the string form of a top-level field, or "" when absent.
func (d *Descriptor) Get(field string) string {
	v := d.lookup(field)
	if !v.Exists() || v.Type == gjson.Null {
		return ""
	}
	return v.String()
}

func (d *Descriptor) lookup(field string) gjson.Result {
	return gjson.GetBytes(d.data, field)
}

func (d *Descriptor) Name() string        { return d.Get("name") }
func (d *Descriptor) PluginName() string  { return d.Get("plugin_name") }
func (d *Descriptor) Version() string     { return d.Get("version") }
func (d *Descriptor) Description() string { return d.Get("description") }

// MissingFields returns the required fields that are absent or null, in
// RequiredFields order.
func (d *Descriptor) MissingFields() []string {
	var missing []string
	for _, field := range RequiredFields {
		v := d.lookup(field)
		if !v.Exists() || v.Type == gjson.Null {
			missing = append(missing, field)
		}
	}
	return missing
}

// SetVersion replaces the version field in memory. Call Save to persist.
func (d *Descriptor) SetVersion(version string) error {
	data, err := sjson.SetBytes(d.data, "version", version)
	if err != nil {
		return fmt.Errorf("set version: %w", err)
	}
	d.data = data
	return nil
}

// Bytes returns the descriptor formatted the way Save writes it.
func (d *Descriptor) Bytes() []byte {
	return pretty.PrettyOptions(d.data, &pretty.Options{Indent: indent})
}

// Save writes the descriptor back to its path with 4-space indentation.
// The content goes to a temp file first and is renamed over the original.
func (d *Descriptor) Save() error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(d.path); err == nil {
		mode = info.Mode().Perm()
	}

	tempPath := filepath.Join(filepath.Dir(d.path), "."+filepath.Base(d.path)+".tmp")
	if err := os.WriteFile(tempPath, d.Bytes(), mode); err != nil {
		return fmt.Errorf("write %s: %w", d.path, err)
	}

	if err := os.Rename(tempPath, d.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("write %s: %w", d.path, err)
	}
	return nil
}
