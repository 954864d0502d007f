package model

// AggregateTable is a fixed-shape 2D report table. Column order is part of
// the contract: exports serialize it byte-exact, left to right.
type AggregateTable struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewAggregateTable creates an empty table with a declared column order.
func NewAggregateTable(name string, columns ...string) *AggregateTable {
	return &AggregateTable{Name: name, Columns: columns, Rows: [][]string{}}
}

// AddRow appends one row of cells.
func (t *AggregateTable) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Finding is one detected data-quality group: a grouping key with the
// distinct conflicting values seen for it and the offending row indexes.
type Finding struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
	Rows   []int    `json:"rows"`
}

// Report is one sub-report of a refresh: a table, or an explicit
// unavailable state when its required mappings did not resolve.
type Report struct {
	Name        string          `json:"name"`
	Table       *AggregateTable `json:"table,omitempty"`
	Unavailable string          `json:"unavailable,omitempty"`
}

// ReportSet is everything one refresh produces, in a fixed render order.
type ReportSet struct {
	Reports []*Report `json:"reports"`
}

// Add appends an available report.
func (s *ReportSet) Add(table *AggregateTable) {
	s.Reports = append(s.Reports, &Report{Name: table.Name, Table: table})
}

// AddUnavailable records a sub-report that could not be computed.
func (s *ReportSet) AddUnavailable(name, reason string) {
	s.Reports = append(s.Reports, &Report{Name: name, Unavailable: reason})
}

// Get returns a report by name, nil if absent.
func (s *ReportSet) Get(name string) *Report {
	for _, r := range s.Reports {
		if r.Name == name {
			return r
		}
	}
	return nil
}
