// Package search derives the searchable field set for an entity and turns
// a free-text term into a store predicate over its denormalized view.
package search

import "strings"

// EntitySchema is a statically declared list of an entity's top-level
// attributes. Field lists are declared once at startup instead of being
// reflected off live types.
type EntitySchema struct {
	Name       string
	Attributes []string
}

// SearchableFields returns the field paths eligible for free-text search:
// every top-level attribute that is not excluded and contains no nesting
// separator, plus every joined path verbatim. The result is deduplicated
// and keeps first-seen order.
func SearchableFields(schema EntitySchema, excluded []string, joined []string) []string {
	skip := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		skip[name] = true
	}

	seen := make(map[string]bool)
	fields := make([]string, 0, len(schema.Attributes)+len(joined))
	for _, attr := range schema.Attributes {
		if skip[attr] || strings.Contains(attr, ".") {
			continue
		}
		if !seen[attr] {
			seen[attr] = true
			fields = append(fields, attr)
		}
	}
	for _, path := range joined {
		if !seen[path] {
			seen[path] = true
			fields = append(fields, path)
		}
	}
	return fields
}
