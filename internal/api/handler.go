package api

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/thechupa55/CP/internal/model"
	"github.com/thechupa55/CP/internal/service/excel"
	"github.com/thechupa55/CP/internal/service/report"
	"github.com/thechupa55/CP/internal/service/session"
)

// Handler is the HTTP API surface. Handlers only decode requests, call
// the session and engines, and encode responses; no reporting logic
// lives here.
type Handler struct {
	session  *session.Session
	builder  *report.Builder
	exporter *excel.Exporter

	maxUploadBytes int64

	mu     sync.Mutex
	sheets map[model.Entity][]excel.SheetInfo
}

// NewHandler creates the API handler around one session.
func NewHandler(s *session.Session, maxUploadMB int) *Handler {
	return &Handler{
		session:        s,
		builder:        report.NewBuilder(s),
		exporter:       excel.NewExporter(),
		maxUploadBytes: int64(maxUploadMB) << 20,
		sheets:         make(map[model.Entity][]excel.SheetInfo),
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	router.POST("/upload", h.Upload)
	router.GET("/sheets", h.GetSheets)
	router.GET("/columns", h.GetColumns)

	router.GET("/mapping", h.GetMapping)
	router.PUT("/mapping", h.PutMapping)

	router.GET("/reports", h.GetReports)
	router.GET("/export/csv", h.ExportCSV)
	router.GET("/export/xlsx", h.ExportWorkbook)
}

// GetStatus reports what is loaded.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	status := gin.H{}
	for _, entity := range []model.Entity{model.EntityChild, model.EntityAdult} {
		if t := h.session.Table(entity); t != nil {
			status[string(entity)] = gin.H{
				"file_id":   t.FileID,
				"file_name": t.FileName,
				"sheet":     t.Sheet,
				"rows":      t.RowCount(),
			}
		}
	}
	c.JSON(http.StatusOK, status)
}

// Upload ingests one .xlsx as an entity's table, replacing whatever that
// entity had loaded before.
// POST /api/upload?entity=child|adult&sheet=
func (h *Handler) Upload(c *gin.Context) {
	entity, ok := entityParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file exceeds the %d MB upload limit", h.maxUploadBytes>>20),
		})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer f.Close()

	parser := excel.NewParser()
	if err := parser.LoadFile(f, fileHeader.Filename); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer parser.Close()

	sheets, err := parser.Sheets()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table, err := parser.LoadTable(c.Query("sheet"), entity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mapping := h.session.SetTable(table)

	h.mu.Lock()
	h.sheets[entity] = sheets
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"file_id":   table.FileID,
		"file_name": table.FileName,
		"sheet":     table.Sheet,
		"sheets":    sheets,
		"columns":   table.Columns,
		"rows":      table.RowCount(),
		"mapping":   mappingJSON(mapping),
	})
}

// GetSheets lists the sheets of the entity's last upload.
// GET /api/sheets?entity=
func (h *Handler) GetSheets(c *gin.Context) {
	entity, ok := entityParam(c)
	if !ok {
		return
	}

	h.mu.Lock()
	sheets, loaded := h.sheets[entity]
	h.mu.Unlock()
	if !loaded {
		c.JSON(http.StatusNotFound, gin.H{"error": "no file loaded for entity"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sheets": sheets})
}

// GetColumns returns the loaded table's header.
// GET /api/columns?entity=
func (h *Handler) GetColumns(c *gin.Context) {
	entity, ok := entityParam(c)
	if !ok {
		return
	}

	table := h.session.Table(entity)
	if table == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no file loaded for entity"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": table.Columns})
}

// GetMapping returns the entity's resolved mapping, Unset entries included.
// GET /api/mapping?entity=
func (h *Handler) GetMapping(c *gin.Context) {
	entity, ok := entityParam(c)
	if !ok {
		return
	}

	mapping := h.session.Mapping(entity)
	if mapping == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no file loaded for entity"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mapping": mappingJSON(mapping)})
}

// MappingOverrideRequest is one explicit user mapping choice. An empty
// column marks the field as deliberately unmapped.
type MappingOverrideRequest struct {
	Field  string `json:"field" binding:"required"`
	Column string `json:"column"`
}

// PutMapping applies a user override and returns the updated mapping.
// PUT /api/mapping?entity=
func (h *Handler) PutMapping(c *gin.Context) {
	entity, ok := entityParam(c)
	if !ok {
		return
	}

	var req MappingOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid override payload"})
		return
	}

	mapping, err := h.session.Override(entity, model.LogicalField(req.Field), req.Column)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mapping": mappingJSON(mapping)})
}

// GetReports computes and returns the full report set.
// GET /api/reports
func (h *Handler) GetReports(c *gin.Context) {
	c.JSON(http.StatusOK, h.builder.Build())
}

// ExportCSV streams one report as CSV.
// GET /api/export/csv?report=
func (h *Handler) ExportCSV(c *gin.Context) {
	name := c.Query("report")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing report parameter"})
		return
	}

	r := h.builder.Build().Get(name)
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown report"})
		return
	}
	if r.Table == nil {
		c.JSON(http.StatusConflict, gin.H{"error": r.Unavailable})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	if err := h.exporter.CSV(c.Writer, r.Table); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// ExportWorkbook streams the full report workbook.
// GET /api/export/xlsx
func (h *Handler) ExportWorkbook(c *gin.Context) {
	workbook, err := h.exporter.Workbook(h.builder.Build())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer workbook.Close()

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reports.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// entityParam decodes the entity query parameter, responding on error.
func entityParam(c *gin.Context) (model.Entity, bool) {
	entity, ok := model.ParseEntity(c.Query("entity"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity must be child or adult"})
		return "", false
	}
	return entity, true
}

// mappingEntryJSON is the wire form of one field's resolution.
type mappingEntryJSON struct {
	Field      string `json:"field"`
	Label      string `json:"label"`
	State      string `json:"state"`
	Column     string `json:"column,omitempty"`
	Required   bool   `json:"required"`
	Overridden bool   `json:"overridden"`
}

// mappingJSON renders a mapping in field-registry order.
func mappingJSON(m *model.Mapping) []mappingEntryJSON {
	specs := model.FieldSpecs(m.Entity)
	out := make([]mappingEntryJSON, 0, len(specs))
	for _, spec := range specs {
		e := m.Entry(spec.Field)
		out = append(out, mappingEntryJSON{
			Field:      string(spec.Field),
			Label:      spec.Label,
			State:      e.State.String(),
			Column:     e.Column,
			Required:   spec.Required,
			Overridden: e.Overridden,
		})
	}
	return out
}
