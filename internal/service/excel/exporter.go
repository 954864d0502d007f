package excel

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/thechupa55/CP/internal/model"
)

// Exporter renders report tables for download.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Workbook builds one .xlsx with one sheet per available report, in the
// report set's render order. Unavailable reports are skipped.
func (e *Exporter) Workbook(set *model.ReportSet) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	first := true
	for _, r := range set.Reports {
		if r.Table == nil {
			continue
		}
		name := sheetName(r.Name)
		if first {
			f.SetSheetName("Sheet1", name)
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, err
			}
		}

		for c, col := range r.Table.Columns {
			cell, _ := excelize.CoordinatesToCellName(c+1, 1)
			f.SetCellValue(name, cell, col)
		}
		f.SetRowStyle(name, 1, 1, headerStyle)

		for rowIdx, row := range r.Table.Rows {
			for c, val := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx+2)
				f.SetCellValue(name, cell, val)
			}
		}
	}
	return f, nil
}

// CSV writes one report table, header first, cells in declared column
// order.
func (e *Exporter) CSV(w io.Writer, table *model.AggregateTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Columns); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var sheetNameSanitizer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// sheetName folds a report name into a legal worksheet name: forbidden
// characters replaced, length capped at Excel's 31-character limit.
func sheetName(name string) string {
	s := sheetNameSanitizer.Replace(name)
	if len(s) > 31 {
		s = s[:31]
	}
	return s
}
