package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound is returned when the manifest file does not exist.
	ErrNotFound = errors.New("manifest not found")
	// ErrInvalid is returned when the manifest cannot be parsed or fails
	// validation.
	ErrInvalid = errors.New("manifest invalid")
)

// Format of a manifest document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks a format from the file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads, parses and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	m, err := Parse(data, FormatForPath(path), false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest and validates it. With strict set, unknown fields
// are rejected.
func Parse(data []byte, format Format, strict bool) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(strict)
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalid, err)
		}
	default:
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w: malformed json", ErrInvalid)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		if strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("%w: decode json: %v", ErrInvalid, err)
		}
	}

	if problems := Validate(&m); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return &m, nil
}

// ValidationError lists everything wrong with a manifest.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s:\n  - %s", ErrInvalid, strings.Join(e.Problems, "\n  - "))
}

// Unwrap lets errors.Is match ErrInvalid.
func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}
