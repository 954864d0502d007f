package parser

import (
	"reflect"
	"testing"
)

func TestNormalizeColumnName(t *testing.T) {
	if got := NormalizeColumnName("  Child Full Name "); got != "child full name" {
		t.Fatalf("got %q", got)
	}
}

func TestCanonicalColumnName(t *testing.T) {
	cases := map[string]string{
		"SF + JSWP Completed (5)": "sfjswpcompleted5",
		"sf_jswp_completed_5":     "sfjswpcompleted5",
		"TEAM_UP":                 "teamup",
		"  Parents phone ":        "parentsphone",
	}
	for in, want := range cases {
		if got := CanonicalColumnName(in); got != want {
			t.Errorf("CanonicalColumnName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLetterToIndex(t *testing.T) {
	cases := map[string]int{
		"A": 0, "B": 1, "Z": 25, "AA": 26, "AL": 37, "AZ": 51,
		"BA": 52, "BI": 60, " al ": 37, "": -1,
	}
	for in, want := range cases {
		if got := LetterToIndex(in); got != want {
			t.Errorf("LetterToIndex(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestMakeUniqueColumns(t *testing.T) {
	got := MakeUniqueColumns([]string{"Gender", "Name", "Gender", "Gender"})
	want := []string{"Gender", "Name", "Gender__1", "Gender__2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTruthyFlag(t *testing.T) {
	for _, in := range []string{"yes", "Y", " TRUE ", "1", "Completed", "done"} {
		if !TruthyFlag(in) {
			t.Errorf("TruthyFlag(%q) = false, want true", in)
		}
	}
	for _, in := range []string{"", "no", "0", "pending", "2"} {
		if TruthyFlag(in) {
			t.Errorf("TruthyFlag(%q) = true, want false", in)
		}
	}
}

func TestParseCount(t *testing.T) {
	cases := map[string]float64{
		"3": 3, " 2 ": 2, "1.5": 1.5, "": 0, "n/a": 0, "-1": -1,
	}
	for in, want := range cases {
		if got := ParseCount(in); got != want {
			t.Errorf("ParseCount(%q) = %v, want %v", in, got, want)
		}
	}
}
