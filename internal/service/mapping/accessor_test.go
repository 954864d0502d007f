package mapping

import (
	"testing"

	"github.com/thechupa55/CP/internal/model"
)

func accessorTable() *model.RawTable {
	return &model.RawTable{
		FileID:  "f1",
		Entity:  model.EntityChild,
		Columns: []string{"Child Full Name", "TEAM_UP", "Date of birth", "TEAM_UP Completed"},
		Rows: [][]string{
			{"Anna", "2", "2023-02-01", "yes"},
			{"Borys", "", "not a date", "no"},
			{"Vira"}, // ragged row
		},
	}
}

func TestAccessorsAlignedAndTyped(t *testing.T) {
	table := accessorTable()
	r := NewResolver()
	m := r.ResolveAll(table)

	names := Strings(table, m, model.ChildFullName)
	if len(names) != 3 || names[0] != "Anna" || names[2] != "Vira" {
		t.Fatalf("names = %v", names)
	}

	counts := Counts(table, m, model.TeamUpSessions)
	if len(counts) != 3 || counts[0] != 2 || counts[1] != 0 || counts[2] != 0 {
		t.Fatalf("counts = %v", counts)
	}

	dates := Dates(table, m, model.ChildDateOfBirth)
	if len(dates) != 3 {
		t.Fatalf("dates length = %d", len(dates))
	}
	if !dates[0].OK || dates[0].Month() != "2023-02" {
		t.Fatalf("dates[0] = %+v", dates[0])
	}
	if dates[1].OK || dates[2].OK {
		t.Fatalf("unparseable cells must stay unparseable: %+v", dates[1:])
	}

	flags := Flags(table, m, model.TeamUpCompleted)
	if !flags[0] || flags[1] || flags[2] {
		t.Fatalf("flags = %v", flags)
	}
}

func TestAccessorsNeutralOnUnset(t *testing.T) {
	table := accessorTable()
	r := NewResolver()
	m := r.ResolveAll(table)

	// ParentPhone resolves to Unset here: no alias matches and the table
	// is narrower than letter L.
	if e := m.Entry(model.ParentPhone); e.State != model.MappingUnset {
		t.Fatalf("setup: ParentPhone = %+v, want Unset", e)
	}

	if got := Strings(table, m, model.ParentPhone); len(got) != 3 {
		t.Fatalf("Strings length = %d, want row count 3", len(got))
	} else {
		for i, v := range got {
			if v != "" {
				t.Fatalf("Strings[%d] = %q, want neutral empty", i, v)
			}
		}
	}
	if got := Counts(table, m, model.HeartSessions); len(got) != 3 || got[0] != 0 {
		t.Fatalf("Counts = %v, want zeros", got)
	}
	if got := Dates(table, m, model.HeartDate); len(got) != 3 || got[0].OK {
		t.Fatalf("Dates = %v, want unparseable", got)
	}

	// The accessor must not have touched the table.
	if len(table.Columns) != 4 || len(table.Rows) != 3 {
		t.Fatal("accessor mutated the underlying table")
	}
}

func TestAccessorsNeutralOnExplicitEmpty(t *testing.T) {
	table := accessorTable()
	r := NewResolver()
	r.ResolveAll(table)
	m, err := r.Override(model.EntityChild, model.ChildFullName, "")
	if err != nil {
		t.Fatalf("Override: %v", err)
	}

	got := Strings(table, m, model.ChildFullName)
	if len(got) != 3 || got[0] != "" {
		t.Fatalf("Strings = %v, want neutral values for explicit-empty", got)
	}
}
