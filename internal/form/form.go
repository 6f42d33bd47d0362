// Package form reads and writes flat form documents.
//
// A form is a single object mapping field ids to scalar values. JSON (with
// comments and trailing commas) and YAML are supported; scalars are kept as
// strings and the field order of the source is preserved on output.
package form

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/idelchi/formcipher/internal/fileutil"
)

// Accessor gives read access to form fields.
type Accessor interface {
	// Field returns the value of the field id and whether it exists.
	Field(id string) (string, bool)
}

// Fields is an in-memory Accessor.
type Fields map[string]string

// Field implements Accessor.
func (f Fields) Field(id string) (string, bool) {
	v, ok := f[id]

	return v, ok
}

// Format is the encoding of a form document.
type Format int

const (
	// JSON documents, comments allowed on input.
	JSON Format = iota
	// YAML documents.
	YAML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf detects the format from the extension of path.
// Unknown trailing extensions are skipped, so "form.json.enc" is JSON.
func FormatOf(path string) (Format, error) {
	name := filepath.Base(path)

	for ext := filepath.Ext(name); ext != ""; ext = filepath.Ext(name) {
		switch strings.ToLower(ext) {
		case ".json", ".jsonc":
			return JSON, nil
		case ".yaml", ".yml":
			return YAML, nil
		}

		name = strings.TrimSuffix(name, ext)
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Document is an ordered set of form fields.
type Document struct {
	format Format
	keys   []string
	values map[string]string
}

// New returns an empty document in the given format.
func New(format Format) *Document {
	return &Document{format: format, values: make(map[string]string)}
}

// Load reads the form document at path.
func Load(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is a user-supplied form file
	if err != nil {
		return nil, fmt.Errorf("reading form %q: %w", path, err)
	}

	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing form %q: %w", path, err)
	}

	return doc, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*Document, error) {
	switch format {
	case JSON:
		return parseJSON(data)
	case YAML:
		return parseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

// Format returns the encoding the document was loaded from.
func (d *Document) Format() Format {
	return d.format
}

// Field implements Accessor.
func (d *Document) Field(id string) (string, bool) {
	v, ok := d.values[id]

	return v, ok
}

// Set assigns value to the field id, appending it if it is new.
func (d *Document) Set(id, value string) {
	if _, ok := d.values[id]; !ok {
		d.keys = append(d.keys, id)
	}

	d.values[id] = value
}

// Delete removes the field id if present.
func (d *Document) Delete(id string) {
	if _, ok := d.values[id]; !ok {
		return
	}

	delete(d.values, id)

	for i, k := range d.keys {
		if k == id {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)

			break
		}
	}
}

// Keys returns the field ids in document order.
func (d *Document) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Marshal encodes the document in its format.
func (d *Document) Marshal() ([]byte, error) {
	switch d.format {
	case JSON:
		return d.marshalJSON()
	case YAML:
		return d.marshalYAML()
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, d.format)
	}
}

// Save atomically writes the document to path, keeping the permissions of like.
// It returns the number of bytes written.
func (d *Document) Save(path, like string) (int64, error) {
	data, err := d.Marshal()
	if err != nil {
		return 0, fmt.Errorf("encoding form: %w", err)
	}

	size, err := fileutil.WriteFile(path, like, data)
	if err != nil {
		return 0, fmt.Errorf("writing form %q: %w", path, err)
	}

	return size, nil
}
