package quality

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/thechupa55/CP/internal/model"
	"github.com/thechupa55/CP/internal/service/mapping"
)

// The data-quality engine detects conflicting and duplicate groupings in
// a loaded table: one parent name linked to several phone numbers, one
// phone shared by several parent names, or plainly repeated child names.
// Grouping keys are normalized (case, whitespace, diacritics) so that
// transliteration variants of the same name land in the same group.

// FindConflicts groups rows by groupBy and reports every group whose
// conflict field carries more than one distinct value. Detail fields are
// attached per offending row in the flat table. Symmetric checks are the
// same call with groupBy and conflict swapped.
func FindConflicts(t *model.RawTable, m *model.Mapping, groupBy, conflict model.LogicalField, details []model.LogicalField) ([]model.Finding, *model.AggregateTable, error) {
	if _, err := m.Require(groupBy); err != nil {
		return nil, nil, err
	}
	if _, err := m.Require(conflict); err != nil {
		return nil, nil, err
	}

	groupVals := mapping.Strings(t, m, groupBy)
	conflictVals := mapping.Strings(t, m, conflict)

	groups := groupRows(groupVals)

	findings := make([]model.Finding, 0)
	for _, g := range groups {
		distinct := distinctValues(conflictVals, g.rows)
		if len(distinct) < 2 {
			continue
		}
		findings = append(findings, model.Finding{Key: g.display, Values: distinct, Rows: g.rows})
	}

	table := findingTable(t, m, findings, groupBy, conflict, details)
	return findings, table, nil
}

// FindDuplicates groups rows by key and reports every group with more
// than one row, regardless of any second field.
func FindDuplicates(t *model.RawTable, m *model.Mapping, key model.LogicalField, details []model.LogicalField) ([]model.Finding, *model.AggregateTable, error) {
	if _, err := m.Require(key); err != nil {
		return nil, nil, err
	}

	keyVals := mapping.Strings(t, m, key)
	groups := groupRows(keyVals)

	findings := make([]model.Finding, 0)
	for _, g := range groups {
		if len(g.rows) < 2 {
			continue
		}
		findings = append(findings, model.Finding{Key: g.display, Rows: g.rows})
	}

	table := findingTable(t, m, findings, key, "", details)
	return findings, table, nil
}

type group struct {
	display string
	rows    []int
}

// groupRows buckets row indexes by normalized key, skipping blank keys.
// Group order follows first appearance, so output is deterministic.
func groupRows(values []string) []group {
	index := make(map[string]int)
	groups := make([]group, 0)
	for r, raw := range values {
		key := NormalizeKey(raw)
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{display: strings.TrimSpace(raw)})
		}
		groups[i].rows = append(groups[i].rows, r)
	}
	return groups
}

// distinctValues collects the distinct non-blank normalized values of the
// conflict column within a group, in first-seen order.
func distinctValues(values []string, rows []int) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range rows {
		raw := strings.TrimSpace(values[r])
		key := NormalizeKey(raw)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, raw)
	}
	return out
}

// findingTable flattens findings into one exportable table: one row per
// offending source row, with the group key, the group's conflicting
// values, and the requested detail columns.
func findingTable(t *model.RawTable, m *model.Mapping, findings []model.Finding, groupBy, conflict model.LogicalField, details []model.LogicalField) *model.AggregateTable {
	columns := []string{labelOf(t.Entity, groupBy)}
	if conflict != "" {
		columns = append(columns, "Distinct "+labelOf(t.Entity, conflict), labelOf(t.Entity, conflict))
	}
	for _, d := range details {
		columns = append(columns, labelOf(t.Entity, d))
	}
	table := model.NewAggregateTable("", columns...)

	detailCols := make([][]string, len(details))
	for i, d := range details {
		detailCols[i] = mapping.Strings(t, m, d)
	}
	var conflictVals []string
	if conflict != "" {
		conflictVals = mapping.Strings(t, m, conflict)
	}

	for _, f := range findings {
		rows := append([]int(nil), f.Rows...)
		sort.Ints(rows)
		for _, r := range rows {
			cells := []string{f.Key}
			if conflict != "" {
				cells = append(cells, strings.Join(f.Values, "; "), strings.TrimSpace(conflictVals[r]))
			}
			for i := range details {
				cells = append(cells, strings.TrimSpace(detailCols[i][r]))
			}
			table.AddRow(cells...)
		}
	}
	return table
}

func labelOf(entity model.Entity, field model.LogicalField) string {
	if spec, ok := model.SpecOf(entity, field); ok {
		return spec.Label
	}
	return string(field)
}

var spaceFold = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// NormalizeKey folds a grouping key: lower case, collapsed whitespace,
// diacritics stripped via NFD decomposition so that accent variants of
// the same name compare equal.
func NormalizeKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(spaceFold.Replace(raw)))
	if s == "" {
		return ""
	}

	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	lastSpace := false
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsSpace(r) {
			if lastSpace {
				continue
			}
			lastSpace = true
			b.WriteRune(' ')
			continue
		}
		lastSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
