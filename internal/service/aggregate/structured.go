package aggregate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/thechupa55/CP/internal/model"
)

// Structured-program analysis tables, computed from the per-row
// completion booleans of the fixed structured program list.

// StructuredSummary is the headline distribution: how many children
// completed none, one, ... of the structured programs.
func StructuredSummary(flags [][]bool, programCount int) *model.AggregateTable {
	dist := make([]int, programCount+1)
	atLeastOne := 0
	for _, row := range flags {
		n := countTrue(row)
		dist[n]++
		if n >= 1 {
			atLeastOne++
		}
	}

	pairs := [][2]string{
		{"Total children", strconv.Itoa(len(flags))},
		{"At least 1 structured program", strconv.Itoa(atLeastOne)},
	}
	for n := 0; n <= programCount; n++ {
		label := strconv.Itoa(n) + " structured programs"
		if n == 1 {
			label = "1 structured program"
		}
		pairs = append(pairs, [2]string{label, strconv.Itoa(dist[n])})
	}
	return MetricTable("Structured_Summary", pairs...)
}

// StructuredPerProgram counts completions per program.
func StructuredPerProgram(flags [][]bool, programs []string) *model.AggregateTable {
	table := model.NewAggregateTable("Structured_Per_Program", "Program", "Children")
	for p, name := range programs {
		n := 0
		for _, row := range flags {
			if row[p] {
				n++
			}
		}
		table.AddRow(name, strconv.Itoa(n))
	}
	return table
}

// StructuredOnlyOne counts children whose single completed program is
// each given program.
func StructuredOnlyOne(flags [][]bool, programs []string) *model.AggregateTable {
	table := model.NewAggregateTable("Structured_Only_One", "Only this program", "Children")
	for p, name := range programs {
		n := 0
		for _, row := range flags {
			if row[p] && countTrue(row) == 1 {
				n++
			}
		}
		table.AddRow(name, strconv.Itoa(n))
	}
	return table
}

// StructuredCombinations counts the distinct program combinations, most
// frequent first; children with no program report as NONE.
func StructuredCombinations(flags [][]bool, programs []string) *model.AggregateTable {
	table := model.NewAggregateTable("Structured_Combinations", "Combination", "Count")

	counts := make(map[string]int)
	for _, row := range flags {
		picked := make([]string, 0, len(programs))
		for p, done := range row {
			if done {
				picked = append(picked, programs[p])
			}
		}
		label := "NONE"
		if len(picked) > 0 {
			label = strings.Join(picked, "+")
		}
		counts[label]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		table.AddRow(k, strconv.Itoa(counts[k]))
	}
	return table
}

func countTrue(row []bool) int {
	n := 0
	for _, v := range row {
		if v {
			n++
		}
	}
	return n
}
