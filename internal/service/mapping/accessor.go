package mapping

import (
	"github.com/thechupa55/CP/internal/model"
	"github.com/thechupa55/CP/internal/parser"
)

// Safe column accessors. Each returns one value per table row, aligned by
// index, and degrades to a neutral value ("" / unparseable / 0 / false)
// when the field is Unset, explicitly empty, or the mapped column is
// absent from the table. Row count is always preserved and the table is
// never mutated.

// Strings returns the field's raw text values.
func Strings(t *model.RawTable, m *model.Mapping, field model.LogicalField) []string {
	col, ok := m.Column(field)
	if !ok {
		return make([]string, t.RowCount())
	}
	return t.Column(col)
}

// Dates returns the field's values run through the mixed date parser.
// Blank cells surface as the unparseable state, usable in counts.
func Dates(t *model.RawTable, m *model.Mapping, field model.LogicalField) []parser.ParsedDate {
	out := make([]parser.ParsedDate, t.RowCount())
	col, ok := m.Column(field)
	if !ok {
		return out
	}
	idx := t.ColumnIndex(col)
	if idx < 0 {
		return out
	}
	for r := range out {
		out[r] = parser.ParseMixedDate(t.Cell(r, idx))
	}
	return out
}

// Counts returns the field's values as session counts, blanks as 0.
func Counts(t *model.RawTable, m *model.Mapping, field model.LogicalField) []float64 {
	out := make([]float64, t.RowCount())
	col, ok := m.Column(field)
	if !ok {
		return out
	}
	idx := t.ColumnIndex(col)
	if idx < 0 {
		return out
	}
	for r := range out {
		out[r] = parser.ParseCount(t.Cell(r, idx))
	}
	return out
}

// Flags returns the field's values as completion booleans.
func Flags(t *model.RawTable, m *model.Mapping, field model.LogicalField) []bool {
	out := make([]bool, t.RowCount())
	col, ok := m.Column(field)
	if !ok {
		return out
	}
	idx := t.ColumnIndex(col)
	if idx < 0 {
		return out
	}
	for r := range out {
		out[r] = parser.TruthyFlag(t.Cell(r, idx))
	}
	return out
}
