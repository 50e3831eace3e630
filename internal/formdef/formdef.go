// Package formdef loads form definitions from YAML or JSON files and builds
// dialog trees from them.
package formdef

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field types.
const (
	TypeText      = "text"
	TypePassword  = "password"
	TypeMultiline = "multiline"
	TypeLabel     = "label"
)

// Field describes one row.
type Field struct {
	Key            string  `yaml:"key" json:"key"`
	Type           string  `yaml:"type" json:"type"`
	Caption        string  `yaml:"caption" json:"caption"`
	Placeholder    string  `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Value          string  `yaml:"value,omitempty" json:"value,omitempty"`
	Keyboard       string  `yaml:"keyboard,omitempty" json:"keyboard,omitempty"`
	Capitalization string  `yaml:"capitalization,omitempty" json:"capitalization,omitempty"`
	Correction     string  `yaml:"correction,omitempty" json:"correction,omitempty"`
	Height         float64 `yaml:"height,omitempty" json:"height,omitempty"`
}

// Section groups fields under an optional header and footer.
type Section struct {
	Header string  `yaml:"header,omitempty" json:"header,omitempty"`
	Footer string  `yaml:"footer,omitempty" json:"footer,omitempty"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// Definition is a parsed form file.
type Definition struct {
	Name     string    `yaml:"name" json:"name"`
	Title    string    `yaml:"title,omitempty" json:"title,omitempty"`
	Sections []Section `yaml:"sections" json:"sections"`
}

// Load reads a definition, choosing the decoder from the file extension.
// The form name defaults to the file's base name.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	def, err := Parse(data, ext)
	if err != nil {
		return nil, fmt.Errorf("parse form %s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if def.Title == "" {
			def.Title = def.Name
		}
	}
	return def, nil
}

// Parse decodes data as JSON when ext is ".json" and as YAML otherwise, then
// normalises and validates the result.
func Parse(data []byte, ext string) (*Definition, error) {
	var def Definition
	switch ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return nil, err
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, err
		}
	}

	if err := def.normalize(); err != nil {
		return nil, err
	}
	return &def, nil
}

func (d *Definition) normalize() error {
	if len(d.Sections) == 0 {
		return fmt.Errorf("form has no sections")
	}
	if d.Title == "" {
		d.Title = d.Name
	}

	seen := map[string]bool{}
	for si := range d.Sections {
		for fi := range d.Sections[si].Fields {
			f := &d.Sections[si].Fields[fi]
			if f.Type == "" {
				f.Type = TypeText
			}
			switch f.Type {
			case TypeText, TypePassword, TypeMultiline, TypeLabel:
			default:
				return fmt.Errorf("section %d field %q: unknown type %q", si, f.Caption, f.Type)
			}
			if f.Key == "" {
				f.Key = keyFromCaption(f.Caption)
			}
			if f.Key == "" {
				return fmt.Errorf("section %d field %d: key or caption required", si, fi)
			}
			if seen[f.Key] {
				return fmt.Errorf("duplicate field key %q", f.Key)
			}
			seen[f.Key] = true
		}
	}
	return nil
}

// keyFromCaption lower-cases caption and joins its words with underscores.
func keyFromCaption(caption string) string {
	fields := strings.FieldsFunc(strings.ToLower(caption), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(fields, "_")
}
