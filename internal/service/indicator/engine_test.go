package indicator

import (
	"testing"

	"github.com/thechupa55/CP/internal/model"
	"github.com/thechupa55/CP/internal/service/mapping"
)

func resolvedChild(t *testing.T, columns []string, rows [][]string) (*model.RawTable, *model.Mapping) {
	t.Helper()
	table := &model.RawTable{FileID: "f1", Entity: model.EntityChild, Columns: columns, Rows: rows}
	return table, mapping.NewResolver().ResolveAll(table)
}

func resolvedAdult(t *testing.T, columns []string, rows [][]string) (*model.RawTable, *model.Mapping) {
	t.Helper()
	table := &model.RawTable{FileID: "f1", Entity: model.EntityAdult, Columns: columns, Rows: rows}
	return table, mapping.NewResolver().ResolveAll(table)
}

func TestChildRuleThreshold(t *testing.T) {
	table, m := resolvedChild(t,
		[]string{"TEAM_UP", "HEART", "CYR"},
		[][]string{
			{"1", "1", ""},  // sum 2 -> qualifies
			{"", "1", ""},   // sum 1 -> no
			{"", "", "3"},   // sum 3 -> qualifies
			{"", "", ""},    // sum 0 -> no
			{"x", "y", "z"}, // non-numeric counts as 0
		})

	results := Evaluate(table, m, ChildCPRule())
	wantQualify := []bool{true, false, true, false, false}
	wantSessions := []float64{2, 1, 3, 0, 0}
	for i := range wantQualify {
		if results[i].Qualifies != wantQualify[i] || results[i].Sessions != wantSessions[i] {
			t.Errorf("row %d = %+v, want qualifies=%v sessions=%v", i, results[i], wantQualify[i], wantSessions[i])
		}
	}
	if got := QualifyingCount(results); got != 2 {
		t.Fatalf("QualifyingCount = %d, want 2", got)
	}
}

func TestChildRuleZeroEvidenceState(t *testing.T) {
	// No program column resolves: every row is a non-error false with
	// zero qualifying sessions.
	table, m := resolvedChild(t, []string{"A", "B"}, [][]string{{"5", "5"}, {"9", "9"}})

	for i, res := range Evaluate(table, m, ChildCPRule()) {
		if res.Qualifies || res.Sessions != 0 {
			t.Errorf("row %d = %+v, want zero-evidence false", i, res)
		}
	}
}

func TestAdultRuleWithYouthResilienceFallback(t *testing.T) {
	// The third program column carries the legacy "Youth Resilience"
	// header; the alias table must still bind it.
	table, m := resolvedAdult(t,
		[]string{"Full Name", "Gender", "Safe Families", "Unstructured MHPSS Activities", "Youth Resilience"},
		[][]string{
			{"Olena", "female", "1", "", "1"},
			{"Ivan", "male", "", "1", ""},
		})

	results := Evaluate(table, m, AdultCPRule())
	if !results[0].Qualifies || results[0].Sessions != 2 {
		t.Fatalf("row 0 = %+v, want qualifies with 2 sessions", results[0])
	}
	if results[1].Qualifies {
		t.Fatalf("row 1 = %+v, want not qualifying", results[1])
	}
}

func TestStructuredFlagsAndFirstCompletions(t *testing.T) {
	table, m := resolvedChild(t,
		[]string{"TEAM_UP Completed", "TEAM_UP Completed (12) Date", "HEART Completed", "HEART Completed (10) Date"},
		[][]string{
			{"yes", "2023-03-10", "yes", "2023-02-01"},
			{"yes", "", "no", "2023-01-01"},
			{"no", "2023-05-05", "no", ""},
		})

	flags := StructuredFlags(table, m)
	if !flags[0][0] || !flags[0][1] || flags[2][0] {
		t.Fatalf("flags = %v", flags)
	}

	firsts := FirstCompletions(table, m)
	// Row 0: HEART's date is earlier than TEAM_UP's.
	if firsts[0].Program != "HEART" || firsts[0].Date.Month() != "2023-02" {
		t.Fatalf("firsts[0] = %+v", firsts[0])
	}
	// Row 1: completed without a parseable date, and a date without the
	// flag; neither counts.
	if firsts[1].Date.OK {
		t.Fatalf("firsts[1] = %+v, want no dated completion", firsts[1])
	}
	// Row 2: date present but flag unset.
	if firsts[2].Date.OK {
		t.Fatalf("firsts[2] = %+v, want no dated completion", firsts[2])
	}
}

func TestNormalizeGender(t *testing.T) {
	cases := map[string]string{
		" Girl ":     "girl",
		"BOY":        "boy",
		"non-binary": "unknown",
		"":           "unknown",
	}
	for in, want := range cases {
		if got := NormalizeGender(in, ChildGenders()); got != want {
			t.Errorf("NormalizeGender(%q) = %q, want %q", in, got, want)
		}
	}
	if got := NormalizeGender("female", AdultGenders()); got != "female" {
		t.Fatalf("adult female = %q", got)
	}
	if got := NormalizeGender("girl", AdultGenders()); got != "unknown" {
		t.Fatalf("child label against adult set = %q, want unknown", got)
	}
}
