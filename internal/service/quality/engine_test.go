package quality

import (
	"errors"
	"reflect"
	"testing"

	"github.com/thechupa55/CP/internal/model"
	"github.com/thechupa55/CP/internal/service/mapping"
)

func resolvedTable(t *testing.T, columns []string, rows [][]string) (*model.RawTable, *model.Mapping) {
	t.Helper()
	table := &model.RawTable{FileID: "f1", Entity: model.EntityChild, Columns: columns, Rows: rows}
	return table, mapping.NewResolver().ResolveAll(table)
}

func TestFindConflictsNamePhone(t *testing.T) {
	table, m := resolvedTable(t,
		[]string{"Full Parent Name", "Parents phone"},
		[][]string{
			{"Jane Doe", "111"},
			{"Jane Doe", "222"},
			{"Jane Doe", "111"}, // repeat value, no new conflict
			{"John Roe", "333"},
		})

	findings, out, err := FindConflicts(table, m, model.FullParentName, model.ParentPhone, nil)
	if err != nil {
		t.Fatalf("FindConflicts: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want exactly one", findings)
	}
	f := findings[0]
	if f.Key != "Jane Doe" {
		t.Fatalf("key = %q", f.Key)
	}
	if !reflect.DeepEqual(f.Values, []string{"111", "222"}) {
		t.Fatalf("values = %v, want [111 222]", f.Values)
	}
	if !reflect.DeepEqual(f.Rows, []int{0, 1, 2}) {
		t.Fatalf("rows = %v", f.Rows)
	}
	if len(out.Rows) != 3 {
		t.Fatalf("flat table rows = %v, want one per offending row", out.Rows)
	}
	if out.Rows[1][1] != "111; 222" || out.Rows[1][2] != "222" {
		t.Fatalf("flat row = %v", out.Rows[1])
	}
}

func TestFindConflictsSymmetric(t *testing.T) {
	table, m := resolvedTable(t,
		[]string{"Full Parent Name", "Parents phone"},
		[][]string{
			{"Jane Doe", "111"},
			{"John Roe", "111"},
		})

	findings, _, err := FindConflicts(table, m, model.ParentPhone, model.FullParentName, nil)
	if err != nil {
		t.Fatalf("FindConflicts: %v", err)
	}
	if len(findings) != 1 || findings[0].Key != "111" {
		t.Fatalf("findings = %+v", findings)
	}
	if !reflect.DeepEqual(findings[0].Values, []string{"Jane Doe", "John Roe"}) {
		t.Fatalf("values = %v", findings[0].Values)
	}
}

func TestNormalizedGrouping(t *testing.T) {
	// Case, surrounding whitespace and diacritics must not split groups.
	table, m := resolvedTable(t,
		[]string{"Full Parent Name", "Parents phone"},
		[][]string{
			{"José García", "111"},
			{"  jose  garcia ", "222"},
		})

	findings, _, err := FindConflicts(table, m, model.FullParentName, model.ParentPhone, nil)
	if err != nil {
		t.Fatalf("FindConflicts: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want one merged group", findings)
	}
}

func TestFindDuplicatesWithDetails(t *testing.T) {
	table, m := resolvedTable(t,
		[]string{"Child Full Name", "Settlement", "Parents phone"},
		[][]string{
			{"Anna K", "Kharkiv", "111"},
			{"Anna K", "Lviv", "222"},
			{"Borys M", "Dnipro", "333"},
		})

	findings, out, err := FindDuplicates(table, m, model.ChildFullName,
		[]model.LogicalField{model.Settlement, model.ParentPhone})
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if len(findings) != 1 || findings[0].Key != "Anna K" {
		t.Fatalf("findings = %+v", findings)
	}
	wantColumns := []string{"Child Full Name", "Settlement", "Parents phone"}
	if !reflect.DeepEqual(out.Columns, wantColumns) {
		t.Fatalf("columns = %v", out.Columns)
	}
	if len(out.Rows) != 2 || out.Rows[0][1] != "Kharkiv" || out.Rows[1][1] != "Lviv" {
		t.Fatalf("rows = %v", out.Rows)
	}
}

func TestBlankKeysNeverGroup(t *testing.T) {
	table, m := resolvedTable(t,
		[]string{"Child Full Name", "Settlement"},
		[][]string{
			{"", "Kharkiv"},
			{"  ", "Lviv"},
		})

	findings, _, err := FindDuplicates(table, m, model.ChildFullName, nil)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("blank keys formed a group: %+v", findings)
	}
}

func TestConflictsMissingMapping(t *testing.T) {
	table, m := resolvedTable(t, []string{"A"}, [][]string{{"x"}})

	_, _, err := FindConflicts(table, m, model.FullParentName, model.ParentPhone, nil)
	var missing *model.MappingMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MappingMissingError", err)
	}
}

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"  Jane   Doe ": "jane doe",
		"José":          "jose",
		// Cyrillic ї decomposes to і + combining diaeresis; the mark is
		// stripped like any other diacritic.
		"ЇЖАК": "іжак",
		"":     "",
		"   ":  "",
	}
	for in, want := range cases {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}
