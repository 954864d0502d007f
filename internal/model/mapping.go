package model

import (
	"fmt"
	"sort"
	"strings"
)

// MappingState classifies how one logical field resolved.
type MappingState int

const (
	// MappingUnset means no alias or positional rule matched. It is
	// surfaced explicitly; resolution never guesses a column.
	MappingUnset MappingState = iota
	// MappingResolved means a physical column was found.
	MappingResolved
	// MappingEmpty means the user explicitly mapped the field to nothing.
	MappingEmpty
)

// String returns the wire name of a mapping state.
func (s MappingState) String() string {
	switch s {
	case MappingResolved:
		return "resolved"
	case MappingEmpty:
		return "empty"
	default:
		return "unset"
	}
}

// MappingEntry is the resolution result for one logical field.
type MappingEntry struct {
	Column     string
	State      MappingState
	Overridden bool
}

// Mapping is the resolved correspondence from logical fields to one
// file's physical columns. One Mapping exists per (file identity, entity);
// it must never be reused across file identities.
type Mapping struct {
	FileID  string
	Entity  Entity
	Entries map[LogicalField]MappingEntry
}

// NewMapping creates an empty mapping for a file identity.
func NewMapping(fileID string, entity Entity) *Mapping {
	return &Mapping{
		FileID:  fileID,
		Entity:  entity,
		Entries: make(map[LogicalField]MappingEntry),
	}
}

// Entry returns the resolution state for a field; missing fields read as Unset.
func (m *Mapping) Entry(field LogicalField) MappingEntry {
	if m == nil {
		return MappingEntry{}
	}
	return m.Entries[field]
}

// Column returns the resolved physical column for a field.
// The second result is false for Unset and explicit-empty entries.
func (m *Mapping) Column(field LogicalField) (string, bool) {
	e := m.Entry(field)
	if e.State != MappingResolved {
		return "", false
	}
	return e.Column, true
}

// Require returns the resolved column or a MappingMissingError that the
// caller scopes to the affected sub-report.
func (m *Mapping) Require(field LogicalField) (string, error) {
	col, ok := m.Column(field)
	if !ok {
		return "", &MappingMissingError{Field: field}
	}
	return col, nil
}

// Fingerprint serializes the mapping deterministically for cache keys.
func (m *Mapping) Fingerprint() string {
	if m == nil {
		return "nil"
	}
	fields := make([]string, 0, len(m.Entries))
	for f := range m.Entries {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString(m.FileID)
	b.WriteByte('|')
	b.WriteString(string(m.Entity))
	for _, f := range fields {
		e := m.Entries[LogicalField(f)]
		fmt.Fprintf(&b, "|%s=%s:%s", f, e.State, e.Column)
	}
	return b.String()
}

// MappingMissingError reports a required logical field that did not resolve.
// The affected sub-report is skipped; the refresh as a whole continues.
type MappingMissingError struct {
	Field LogicalField
}

func (e *MappingMissingError) Error() string {
	return fmt.Sprintf("no column mapped for field %q", string(e.Field))
}
