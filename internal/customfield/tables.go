package customfield

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

//go:embed tables.yaml
var embeddedTables []byte

// FieldSpec pairs a canonical slug with its storage column
type FieldSpec struct {
	Slug   string `yaml:"slug"`
	Column string `yaml:"column"`
}

// Tables is the declarative configuration the resolver works from. It is
// immutable once loaded; each run reads it without copying.
type Tables struct {
	DriverTeamKeyword string         `yaml:"driver_team_keyword"`
	Fields            []FieldSpec    `yaml:"fields"`
	FallbackIDs       map[int]string `yaml:"fallback_ids"`
}

// DefaultTables parses the embedded tables
func DefaultTables() (*Tables, error) {
	return ParseTables(embeddedTables)
}

// LoadTables reads tables from path, or the embedded defaults when path is empty
func LoadTables(path string) (*Tables, error) {
	if path == "" {
		return DefaultTables()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resolver tables %s: %w", path, err)
	}
	return ParseTables(data)
}

// ParseTables decodes and validates a YAML table document
func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse resolver tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks slugs and columns are present and unique, and that every
// fallback id points at a declared slug
func (t *Tables) Validate() error {
	if len(t.Fields) == 0 {
		return fmt.Errorf("resolver tables: no fields declared")
	}
	slugs := make(map[string]bool, len(t.Fields))
	columns := make(map[string]bool, len(t.Fields))
	for i, f := range t.Fields {
		if f.Slug == "" || f.Column == "" {
			return fmt.Errorf("resolver tables: field %d needs slug and column", i)
		}
		if slugs[f.Slug] {
			return fmt.Errorf("resolver tables: duplicate slug %q", f.Slug)
		}
		if columns[f.Column] {
			return fmt.Errorf("resolver tables: duplicate column %q", f.Column)
		}
		slugs[f.Slug] = true
		columns[f.Column] = true
	}
	for id, slug := range t.FallbackIDs {
		if !slugs[slug] {
			return fmt.Errorf("resolver tables: fallback id %d maps to unknown slug %q", id, slug)
		}
	}
	if strings.TrimSpace(t.DriverTeamKeyword) == "" {
		return fmt.Errorf("resolver tables: driver_team_keyword is empty")
	}
	return nil
}

// Slugs returns the declared slugs in table order
func (t *Tables) Slugs() []string {
	out := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		out[i] = f.Slug
	}
	return out
}

// Column returns the storage column for a slug
func (t *Tables) Column(slug string) (string, bool) {
	for _, f := range t.Fields {
		if f.Slug == slug {
			return f.Column, true
		}
	}
	return "", false
}

func (t *Tables) knows(slug string) bool {
	_, ok := t.Column(slug)
	return ok
}
