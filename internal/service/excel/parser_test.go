package excel

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/thechupa55/CP/internal/model"
)

// workbookBytes builds a small workbook in memory for upload tests.
func workbookBytes(t *testing.T, sheet string, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheet)
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestLoadTable(t *testing.T) {
	buf := workbookBytes(t, "Children", [][]any{
		{"Child Full Name", "Gender", "TEAM_UP"},
		{"Anna K", "girl", 2},
		{"Borys M", "boy", 0},
	})

	p := NewParser()
	if err := p.LoadFile(buf, "report.xlsx"); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	defer p.Close()

	if p.FileID() == "" {
		t.Fatal("empty file identity")
	}

	table, err := p.LoadTable("", model.EntityChild)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if table.Sheet != "Children" {
		t.Fatalf("default sheet = %q", table.Sheet)
	}
	if table.FileID != p.FileID() || table.FileName != "report.xlsx" {
		t.Fatalf("identity = %q / %q", table.FileID, table.FileName)
	}
	if !reflect.DeepEqual(table.Columns, []string{"Child Full Name", "Gender", "TEAM_UP"}) {
		t.Fatalf("columns = %v", table.Columns)
	}
	if table.RowCount() != 2 || table.Cell(0, 0) != "Anna K" || table.Cell(1, 2) != "0" {
		t.Fatalf("rows = %v", table.Rows)
	}
}

func TestHeaderTrimAndDeduplication(t *testing.T) {
	buf := workbookBytes(t, "Data", [][]any{
		{" Gender ", "Gender", "Date"},
		{"girl", "boy", "2023-02-01"},
	})

	p := NewParser()
	if err := p.LoadFile(buf, "dup.xlsx"); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	defer p.Close()

	columns, err := p.Columns("Data")
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	want := []string{"Gender", "Gender__1", "Date"}
	if !reflect.DeepEqual(columns, want) {
		t.Fatalf("columns = %v, want %v", columns, want)
	}

	// LoadTable must record the same disambiguated header.
	table, err := p.LoadTable("Data", model.EntityChild)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if !reflect.DeepEqual(table.Columns, want) {
		t.Fatalf("table columns = %v", table.Columns)
	}
}

func TestSheets(t *testing.T) {
	buf := workbookBytes(t, "Main", [][]any{
		{"A"},
		{"1"},
	})

	p := NewParser()
	if err := p.LoadFile(buf, "s.xlsx"); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	defer p.Close()

	sheets, err := p.Sheets()
	if err != nil {
		t.Fatalf("Sheets: %v", err)
	}
	if len(sheets) != 1 || sheets[0].Name != "Main" || sheets[0].RowCount != 2 {
		t.Fatalf("sheets = %+v", sheets)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	p := NewParser()
	if _, err := p.LoadTable("", model.EntityChild); err == nil {
		t.Fatal("LoadTable succeeded with no file loaded")
	}
	if _, err := p.Sheets(); err == nil {
		t.Fatal("Sheets succeeded with no file loaded")
	}
}
