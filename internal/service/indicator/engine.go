package indicator

import (
	"strings"

	"github.com/thechupa55/CP/internal/model"
	"github.com/thechupa55/CP/internal/parser"
	"github.com/thechupa55/CP/internal/service/mapping"
)

// Result is one rule evaluated against one row.
type Result struct {
	Sessions  float64
	Qualifies bool
}

// Evaluate runs a rule over every row of the table, producing one result
// per row, aligned by index. Program columns that resolved to Unset
// contribute zero: a table where no program column is mappable is a valid
// zero-evidence state, not an error, and yields Qualifies=false with
// Sessions=0 for every row.
func Evaluate(t *model.RawTable, m *model.Mapping, rule Rule) []Result {
	results := make([]Result, t.RowCount())
	for _, prog := range rule.Programs {
		for r, n := range mapping.Counts(t, m, prog.Field) {
			results[r].Sessions += n
		}
	}
	for r := range results {
		results[r].Qualifies = results[r].Sessions >= rule.Threshold
	}
	return results
}

// QualifyingCount counts rows whose result passed the rule's threshold.
func QualifyingCount(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Qualifies {
			n++
		}
	}
	return n
}

// StructuredFlags materializes the completion booleans of every
// structured program, one row per table row.
func StructuredFlags(t *model.RawTable, m *model.Mapping) [][]bool {
	programs := StructuredPrograms()
	flags := make([][]bool, t.RowCount())
	for r := range flags {
		flags[r] = make([]bool, len(programs))
	}
	for p, prog := range programs {
		for r, done := range mapping.Flags(t, m, prog.Completed) {
			flags[r][p] = done
		}
	}
	return flags
}

// FirstCompletion is the earliest dated structured-program completion of
// one row: which program, and when.
type FirstCompletion struct {
	Program string
	Date    parser.ParsedDate
}

// FirstCompletions finds, per row, the earliest completion date across
// the structured programs. A program's date counts only when its
// completed flag is set; rows with no dated completion surface the
// unparseable state.
func FirstCompletions(t *model.RawTable, m *model.Mapping) []FirstCompletion {
	programs := StructuredPrograms()
	out := make([]FirstCompletion, t.RowCount())

	for p, prog := range programs {
		done := mapping.Flags(t, m, prog.Completed)
		dates := mapping.Dates(t, m, prog.Date)
		for r := range out {
			if !done[r] || !dates[r].OK {
				continue
			}
			if !out[r].Date.OK || dates[r].Time.Before(out[r].Date.Time) {
				out[r] = FirstCompletion{Program: programs[p].Name, Date: dates[r]}
			}
		}
	}
	return out
}

// Normalized gender buckets.
const GenderUnknown = "unknown"

// NormalizeGender folds a raw gender value into the entity's known
// category set; anything else buckets as unknown.
func NormalizeGender(raw string, known []string) string {
	g := strings.ToLower(strings.TrimSpace(raw))
	for _, k := range known {
		if g == k {
			return k
		}
	}
	return GenderUnknown
}

// ChildGenders and AdultGenders are the known category sets, in report
// column order.
func ChildGenders() []string { return []string{"girl", "boy"} }
func AdultGenders() []string { return []string{"female", "male"} }
