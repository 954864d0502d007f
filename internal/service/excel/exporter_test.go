package excel

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/thechupa55/CP/internal/model"
)

func sampleSet() *model.ReportSet {
	set := &model.ReportSet{}

	summary := model.NewAggregateTable("Indicator_Summary", "Metric", "Value")
	summary.AddRow("Children with 2+ CP service sessions", "2")
	set.Add(summary)

	monthly := model.NewAggregateTable("CP_Monthly_By_Gender", "Month", "girl", "boy", "Total", "unknown")
	monthly.AddRow("2023-02", "1", "1", "2", "0")
	set.Add(monthly)

	set.AddUnavailable("Geo_By_Oblast", "no column mapped")
	return set
}

func TestWorkbookOneSheetPerAvailableReport(t *testing.T) {
	f, err := NewExporter().Workbook(sampleSet())
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	defer f.Close()

	want := []string{"Indicator_Summary", "CP_Monthly_By_Gender"}
	if got := f.GetSheetList(); !reflect.DeepEqual(got, want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}

	// Header row then data, in declared column order.
	if v, _ := f.GetCellValue("CP_Monthly_By_Gender", "A1"); v != "Month" {
		t.Fatalf("A1 = %q", v)
	}
	if v, _ := f.GetCellValue("CP_Monthly_By_Gender", "D2"); v != "2" {
		t.Fatalf("D2 = %q", v)
	}
}

func TestWorkbookSheetNameCapped(t *testing.T) {
	set := &model.ReportSet{}
	long := model.NewAggregateTable("A_Really_Long_Report_Name_That_Exceeds_The_Limit", "X")
	set.Add(long)

	f, err := NewExporter().Workbook(set)
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 {
		t.Fatalf("sheets = %v", sheets)
	}
	if len(sheets[0]) > 31 {
		t.Fatalf("sheet name %q exceeds 31 characters", sheets[0])
	}
	if !strings.HasPrefix(sheets[0], "A_Really_Long_Report_Name") {
		t.Fatalf("sheet name %q lost its prefix", sheets[0])
	}
}

func TestCSVByteExact(t *testing.T) {
	table := model.NewAggregateTable("CP_Monthly_By_Gender", "Month", "girl", "boy", "Total", "unknown")
	table.AddRow("2023-02", "1", "1", "2", "0")
	table.AddRow("Overall", "1", "1", "2", "0")

	var buf bytes.Buffer
	if err := NewExporter().CSV(&buf, table); err != nil {
		t.Fatalf("CSV: %v", err)
	}
	want := "Month,girl,boy,Total,unknown\n2023-02,1,1,2,0\nOverall,1,1,2,0\n"
	if buf.String() != want {
		t.Fatalf("csv = %q, want %q", buf.String(), want)
	}
}
