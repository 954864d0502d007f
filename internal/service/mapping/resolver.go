package mapping

import (
	"fmt"
	"strings"

	"github.com/thechupa55/CP/internal/model"
	"github.com/thechupa55/CP/internal/parser"
)

// Resolver owns mapping state for the currently loaded file of each
// entity type. State is partitioned by file identity: switching files
// drops every entry of the previous identity before anything is resolved
// for the new one, so a column position from file A can never leak into
// file B.
type Resolver struct {
	mappings map[model.Entity]*model.Mapping
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{mappings: make(map[model.Entity]*model.Mapping)}
}

// ResetForNewFile clears all mapping entries tied to the entity's
// previous file identity and starts a fresh mapping for fileID.
func (r *Resolver) ResetForNewFile(entity model.Entity, fileID string) {
	r.mappings[entity] = model.NewMapping(fileID, entity)
}

// Mapping returns the entity's current mapping, nil when no file is loaded.
func (r *Resolver) Mapping(entity model.Entity) *model.Mapping {
	return r.mappings[entity]
}

// ResolveAll resolves every declared logical field of the table's entity
// against the table's actual columns. A change of file identity forces a
// full reset first. User overrides recorded for the same identity are
// preserved.
func (r *Resolver) ResolveAll(table *model.RawTable) *model.Mapping {
	m := r.mappings[table.Entity]
	if m == nil || m.FileID != table.FileID {
		r.ResetForNewFile(table.Entity, table.FileID)
		m = r.mappings[table.Entity]
	}

	for _, spec := range model.FieldSpecs(table.Entity) {
		if existing := m.Entry(spec.Field); existing.Overridden {
			continue
		}
		m.Entries[spec.Field] = resolveField(table.Columns, spec)
	}
	return m
}

// Override records a user's explicit column choice for a field. An empty
// column name records the explicit-empty sentinel, which downstream
// treats exactly like an unresolved field.
func (r *Resolver) Override(entity model.Entity, field model.LogicalField, column string) (*model.Mapping, error) {
	m := r.mappings[entity]
	if m == nil {
		return nil, fmt.Errorf("no file loaded for entity %q", entity)
	}
	if _, ok := model.SpecOf(entity, field); !ok {
		return nil, fmt.Errorf("unknown logical field %q for entity %q", field, entity)
	}

	if strings.TrimSpace(column) == "" {
		m.Entries[field] = model.MappingEntry{State: model.MappingEmpty, Overridden: true}
		return m, nil
	}
	m.Entries[field] = model.MappingEntry{Column: column, State: model.MappingResolved, Overridden: true}
	return m, nil
}

// resolveField applies the alias list in declared order across three
// match passes of decreasing strictness, then the positional
// column-letter fallback. It never falls back to "the first available
// column": a miss resolves to the Unset sentinel for the consumer to
// surface. The passes are tiered so an exact match of a later alias
// always beats a loose match of an earlier one.
func resolveField(columns []string, spec model.FieldSpec) model.MappingEntry {
	for _, alias := range spec.Aliases {
		if col, ok := matchNormalized(columns, alias); ok {
			return model.MappingEntry{Column: col, State: model.MappingResolved}
		}
	}
	for _, alias := range spec.Aliases {
		if col, ok := matchCanonical(columns, alias); ok {
			return model.MappingEntry{Column: col, State: model.MappingResolved}
		}
	}
	// Session-count program names are short tokens ("LA", "SEL"); a
	// containment match would bind them to unrelated headers.
	if spec.Kind != model.KindCount {
		for _, alias := range spec.Aliases {
			if col, ok := matchContains(columns, alias); ok {
				return model.MappingEntry{Column: col, State: model.MappingResolved}
			}
		}
	}
	if spec.Letter != "" {
		if idx := parser.LetterToIndex(spec.Letter); idx >= 0 && idx < len(columns) {
			return model.MappingEntry{Column: columns[idx], State: model.MappingResolved}
		}
	}
	return model.MappingEntry{State: model.MappingUnset}
}

// matchNormalized compares trimmed, case-folded headers, accepting the
// "__n" duplicate-header suffix.
func matchNormalized(columns []string, alias string) (string, bool) {
	target := parser.NormalizeColumnName(alias)
	for _, col := range columns {
		n := parser.NormalizeColumnName(col)
		if n == target || strings.HasPrefix(n, target+"__") {
			return col, true
		}
	}
	return "", false
}

// matchCanonical compares headers reduced to their alphanumeric core.
func matchCanonical(columns []string, alias string) (string, bool) {
	canon := parser.CanonicalColumnName(alias)
	if canon == "" {
		return "", false
	}
	for _, col := range columns {
		if parser.CanonicalColumnName(col) == canon {
			return col, true
		}
	}
	return "", false
}

// matchContains accepts a header whose canonical form contains the alias,
// for exports that decorate headers with counts or units.
func matchContains(columns []string, alias string) (string, bool) {
	canon := parser.CanonicalColumnName(alias)
	if canon == "" {
		return "", false
	}
	for _, col := range columns {
		if strings.Contains(parser.CanonicalColumnName(col), canon) {
			return col, true
		}
	}
	return "", false
}
