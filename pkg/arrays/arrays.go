// Package arrays holds named collections of fixed-schema records used
// for template loop expansion. Records are pipe-delimited strings; a
// schema names the fields, positionally.
package arrays

import (
	"sort"
	"strings"
)

// DefaultSchema applies to arrays with no declared schema. It matches
// the most common use of loops, SSH host lists.
const DefaultSchema = "name|hostname|user|identity|extra"

// FieldSep separates both fields within a record and field names
// within a schema declaration.
const FieldSep = "|"

// Registry maps array names to their records and schemas.
type Registry struct {
	records map[string][]string
	schemas map[string][]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		records: make(map[string][]string),
		schemas: make(map[string][]string),
	}
}

// Define registers the records of a named array, replacing any
// previous definition.
func (r *Registry) Define(name string, records []string) {
	r.records[name] = records
}

// DefineSchema registers a pipe-delimited field-name list for an array.
func (r *Registry) DefineSchema(name, schema string) {
	r.schemas[name] = splitFields(schema)
}

// Schema returns the field names for an array, falling back to
// DefaultSchema when none was declared.
func (r *Registry) Schema(name string) []string {
	if fields, ok := r.schemas[name]; ok {
		return fields
	}
	return splitFields(DefaultSchema)
}

// Records returns the raw records of an array. An unknown array yields
// nil, which loop expansion treats as zero iterations.
func (r *Registry) Records(name string) []string {
	return r.records[name]
}

// Names returns the defined array names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bind associates one record's values with an array's schema. The
// returned map is a fresh per-iteration scope: fields past the end of
// the record resolve to empty string, values past the end of the
// schema are dropped.
func (r *Registry) Bind(name, record string) map[string]string {
	schema := r.Schema(name)
	values := strings.Split(record, FieldSep)

	scope := make(map[string]string, len(schema))
	for i, field := range schema {
		if i < len(values) {
			scope[field] = values[i]
		} else {
			scope[field] = ""
		}
	}
	return scope
}

func splitFields(schema string) []string {
	parts := strings.Split(schema, FieldSep)
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if f := strings.TrimSpace(p); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
