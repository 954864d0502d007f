package model

// Entity identifies one logical record type loaded in a session.
type Entity string

const (
	EntityChild Entity = "child"
	EntityAdult Entity = "adult"
)

// ParseEntity maps a request string to an Entity.
func ParseEntity(s string) (Entity, bool) {
	switch Entity(s) {
	case EntityChild:
		return EntityChild, true
	case EntityAdult:
		return EntityAdult, true
	}
	return "", false
}

// RawTable is one loaded sheet: a header row plus data rows.
// It is immutable after load; the engines only ever read it.
type RawTable struct {
	FileID   string
	FileName string
	Sheet    string
	Entity   Entity
	Columns  []string
	Rows     [][]string
}

// RowCount returns the number of data rows.
func (t *RawTable) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Cell returns the value at row r, physical column c.
// Ragged rows shorter than the header read as "".
func (t *RawTable) Cell(r, c int) string {
	if t == nil || r < 0 || r >= len(t.Rows) || c < 0 {
		return ""
	}
	row := t.Rows[r]
	if c >= len(row) {
		return ""
	}
	return row[c]
}

// ColumnIndex returns the physical index of an exact column name, -1 if absent.
func (t *RawTable) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Column returns one physical column by exact name, padded to RowCount.
// An absent column reads as all-empty.
func (t *RawTable) Column(name string) []string {
	out := make([]string, t.RowCount())
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return out
	}
	for r := range out {
		out[r] = t.Cell(r, idx)
	}
	return out
}
