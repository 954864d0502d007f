package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/thechupa55/CP/internal/model"
	"github.com/thechupa55/CP/internal/parser"
)

// SheetInfo describes one worksheet of an uploaded workbook.
type SheetInfo struct {
	Name     string `json:"name"`
	RowCount int    `json:"row_count"`
}

// Parser loads one uploaded workbook and materializes a chosen sheet as
// an immutable RawTable. Every Parser carries a fresh file identity; the
// identity partitions mapping state and cached computations downstream.
type Parser struct {
	file     *excelize.File
	fileID   string
	fileName string
}

// NewParser creates a parser with a new file identity.
func NewParser() *Parser {
	return &Parser{fileID: uuid.New().String()}
}

// LoadFile reads a workbook from an upload stream.
func (p *Parser) LoadFile(reader io.Reader, fileName string) error {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return fmt.Errorf("failed to open excel: %w", err)
	}
	p.file = file
	p.fileName = fileName
	return nil
}

// FileID returns the upload's identity.
func (p *Parser) FileID() string {
	return p.fileID
}

// Sheets lists the workbook's sheets with their row counts.
func (p *Parser) Sheets() ([]SheetInfo, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	sheets := p.file.GetSheetList()
	result := make([]SheetInfo, 0, len(sheets))
	for _, name := range sheets {
		rows, err := p.file.GetRows(name)
		if err != nil {
			continue
		}
		result = append(result, SheetInfo{Name: name, RowCount: len(rows)})
	}
	return result, nil
}

// Columns returns a sheet's header row after trimming and duplicate-name
// disambiguation, exactly as LoadTable will record it.
func (p *Parser) Columns(sheet string) ([]string, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	rows, err := p.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty sheet")
	}
	return headerOf(rows[0]), nil
}

// LoadTable materializes one sheet as the entity's RawTable. An empty
// sheet name selects the workbook's first sheet.
func (p *Parser) LoadTable(sheet string, entity model.Entity) (*model.RawTable, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	if sheet == "" {
		list := p.file.GetSheetList()
		if len(list) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = list[0]
	}

	rows, err := p.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	return &model.RawTable{
		FileID:   p.fileID,
		FileName: p.fileName,
		Sheet:    sheet,
		Entity:   entity,
		Columns:  headerOf(rows[0]),
		Rows:     rows[1:],
	}, nil
}

// Close releases the underlying workbook.
func (p *Parser) Close() error {
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// headerOf trims header cells and disambiguates repeated names so every
// physical column stays addressable.
func headerOf(raw []string) []string {
	header := make([]string, len(raw))
	for i, h := range raw {
		header[i] = strings.TrimSpace(h)
	}
	return parser.MakeUniqueColumns(header)
}
