package aggregate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/thechupa55/CP/internal/model"
	"github.com/thechupa55/CP/internal/parser"
	"github.com/thechupa55/CP/internal/service/indicator"
)

// The aggregation engine builds the fixed-shape report tables. Column
// order is declared per report, never discovery order, and every Total is
// derived as the sum of its category buckets including the unknown
// bucket. Rows whose date is unparseable are excluded from monthly
// buckets but retained in the Overall row, so nothing silently vanishes
// from the totals.

const (
	colMonth     = "Month"
	colTotal     = "Total"
	colOverall   = "Overall"
	labelUnknown = "Unknown"
)

// MonthlyGender buckets pre-selected rows by calendar month and gender.
// dates and genders are aligned by index; known is the entity's gender
// category set in report column order. Output columns: Month, <known...>,
// Total, unknown.
func MonthlyGender(name string, dates []parser.ParsedDate, genders []string, known []string) *model.AggregateTable {
	columns := append([]string{colMonth}, known...)
	columns = append(columns, colTotal, indicator.GenderUnknown)
	table := model.NewAggregateTable(name, columns...)

	buckets := make(map[string]map[string]int)
	overall := make(map[string]int)
	for i, d := range dates {
		g := indicator.NormalizeGender(genders[i], known)
		overall[g]++
		if !d.OK {
			continue
		}
		month := d.Month()
		if buckets[month] == nil {
			buckets[month] = make(map[string]int)
		}
		buckets[month][g]++
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)

	for _, m := range months {
		table.AddRow(genderCells(m, buckets[m], known)...)
	}
	table.AddRow(genderCells(colOverall, overall, known)...)
	return table
}

// genderCells renders one table row; Total is always the derived sum of
// every bucket including unknown.
func genderCells(label string, counts map[string]int, known []string) []string {
	cells := []string{label}
	total := counts[indicator.GenderUnknown]
	for _, g := range known {
		cells = append(cells, strconv.Itoa(counts[g]))
		total += counts[g]
	}
	cells = append(cells, strconv.Itoa(total), strconv.Itoa(counts[indicator.GenderUnknown]))
	return cells
}

// IndicatorMonthly is the transposed combined layout: one row per fixed
// semantic category, one column per month plus a trailing Overall column.
// The total row includes unknown-gender counts from both entity types
// even though unknown is not rendered as a row of its own.
func IndicatorMonthly(childDates []parser.ParsedDate, childGenders []string, adultDates []parser.ParsedDate, adultGenders []string) *model.AggregateTable {
	type bucket struct {
		girls, boys, women, men, total int
	}
	buckets := make(map[string]*bucket)
	overall := &bucket{}

	add := func(b *bucket, g string, adult bool) {
		b.total++
		switch {
		case !adult && g == "girl":
			b.girls++
		case !adult && g == "boy":
			b.boys++
		case adult && g == "female":
			b.women++
		case adult && g == "male":
			b.men++
		}
	}
	walk := func(dates []parser.ParsedDate, genders []string, known []string, adult bool) {
		for i, d := range dates {
			g := indicator.NormalizeGender(genders[i], known)
			add(overall, g, adult)
			if !d.OK {
				continue
			}
			m := d.Month()
			if buckets[m] == nil {
				buckets[m] = &bucket{}
			}
			add(buckets[m], g, adult)
		}
	}
	walk(childDates, childGenders, indicator.ChildGenders(), false)
	walk(adultDates, adultGenders, indicator.AdultGenders(), true)

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)

	columns := append([]string{"Indicator"}, months...)
	columns = append(columns, colOverall)
	table := model.NewAggregateTable("Indicator_Monthly", columns...)

	row := func(label string, pick func(*bucket) int) {
		cells := []string{label}
		for _, m := range months {
			cells = append(cells, strconv.Itoa(pick(buckets[m])))
		}
		cells = append(cells, strconv.Itoa(pick(overall)))
		table.AddRow(cells...)
	}
	row("# of girls", func(b *bucket) int { return b.girls })
	row("# of boys", func(b *bucket) int { return b.boys })
	row("# of women", func(b *bucket) int { return b.women })
	row("# of men", func(b *bucket) int { return b.men })
	row("total", func(b *bucket) int { return b.total })
	return table
}

// CategoryGender breaks one categorical field down by gender. Rows are
// sorted by derived Total descending, then label ascending. Output
// columns: <keyLabel>, <known...>, Total, unknown.
func CategoryGender(name, keyLabel string, statuses, genders []string, known []string) *model.AggregateTable {
	columns := append([]string{keyLabel}, known...)
	columns = append(columns, colTotal, indicator.GenderUnknown)
	table := model.NewAggregateTable(name, columns...)

	buckets := make(map[string]map[string]int)
	for i, raw := range statuses {
		status := NormalizeLabel(raw)
		g := indicator.NormalizeGender(genders[i], known)
		if buckets[status] == nil {
			buckets[status] = make(map[string]int)
		}
		buckets[status][g]++
	}

	type statusRow struct {
		label string
		total int
	}
	rows := make([]statusRow, 0, len(buckets))
	for label, counts := range buckets {
		total := counts[indicator.GenderUnknown]
		for _, g := range known {
			total += counts[g]
		}
		rows = append(rows, statusRow{label: label, total: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].total != rows[j].total {
			return rows[i].total > rows[j].total
		}
		return rows[i].label < rows[j].label
	})

	for _, r := range rows {
		table.AddRow(genderCells(r.label, buckets[r.label], known)...)
	}
	return table
}

// ValueCounts counts one normalized categorical column, sorted by count
// descending then value ascending.
func ValueCounts(name, keyLabel, countLabel string, values []string) *model.AggregateTable {
	table := model.NewAggregateTable(name, keyLabel, countLabel)

	counts := make(map[string]int)
	for _, raw := range values {
		counts[NormalizeLabel(raw)]++
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

// GroupCounts counts distinct combinations of several normalized columns,
// sorted by count descending then labels ascending.
func GroupCounts(name string, keyLabels []string, columns [][]string, countLabel string) *model.AggregateTable {
	header := append(append([]string{}, keyLabels...), countLabel)
	table := model.NewAggregateTable(name, header...)
	if len(columns) == 0 {
		return table
	}

	const sep = "\x1f"
	counts := make(map[string]int)
	rowCount := len(columns[0])
	for r := 0; r < rowCount; r++ {
		parts := make([]string, len(columns))
		for c := range columns {
			parts[c] = NormalizeLabel(columns[c][r])
		}
		counts[strings.Join(parts, sep)]++
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
		cells := append(strings.Split(k, sep), strconv.Itoa(counts[k]))
		table.AddRow(cells...)
	}
	return table
}

// MetricTable renders simple Metric/Value summary pairs.
func MetricTable(name string, pairs ...[2]string) *model.AggregateTable {
	table := model.NewAggregateTable(name, "Metric", "Value")
	for _, p := range pairs {
		table.AddRow(p[0], p[1])
	}
	return table
}

// NormalizeLabel trims a categorical value, folding blanks to "Unknown".
func NormalizeLabel(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return labelUnknown
	}
	return s
}
