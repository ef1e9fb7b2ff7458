package handlers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"nutrition-catalog-service/internal/catalog"
	"nutrition-catalog-service/internal/events"
	"nutrition-catalog-service/internal/models"
	"nutrition-catalog-service/internal/repository"
)

const catalogSheetName = "Products"

type ImportHandler struct {
	repo      *repository.CatalogRepository
	publisher *events.Publisher
	tenantID  string
}

func NewImportHandler(repo *repository.CatalogRepository, publisher *events.Publisher, tenantID string) *ImportHandler {
	return &ImportHandler{
		repo:      repo,
		publisher: publisher,
		tenantID:  tenantID,
	}
}

// GetImportTemplate returns the import template definition or file
// GET /api/v1/catalog/import/template
func (h *ImportHandler) GetImportTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	template := models.CatalogImportTemplate()

	switch format {
	case "csv":
		h.generateCSVTemplate(c, template)
	case "xlsx":
		h.generateXLSXTemplate(c, template)
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"template": template,
		})
	}
}

// generateCSVTemplate generates and downloads a CSV template (headers only)
func (h *ImportHandler) generateCSVTemplate(c *gin.Context, template models.ImportTemplate) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=catalog_import_template.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Label
	}
	writer.Write(headers)
}

// generateXLSXTemplate generates and downloads an Excel template
func (h *ImportHandler) generateXLSXTemplate(c *gin.Context, template models.ImportTemplate) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", catalogSheetName)

	// Style for header row
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	// Style for required columns
	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, col := range template.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		headerText := col.Label
		if col.Required {
			headerText = col.Label + " *"
		}
		f.SetCellValue(catalogSheetName, cell, headerText)

		if col.Required {
			f.SetCellStyle(catalogSheetName, cell, cell, requiredStyle)
		} else {
			f.SetCellStyle(catalogSheetName, cell, cell, headerStyle)
		}

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(catalogSheetName, colName, colName, 20)
	}

	// Add Instructions sheet
	f.NewSheet("Instructions")
	f.SetCellValue("Instructions", "A1", "Nutrition Catalog Import Instructions")

	f.SetCellValue("Instructions", "A3", "ROW STRUCTURE:")
	f.SetCellValue("Instructions", "A4", "Each product is one header row followed by its container item rows.")
	f.SetCellValue("Instructions", "A5", "- Header rows carry a non-zero DID and the product columns; leave the container columns empty.")
	f.SetCellValue("Instructions", "A6", "- Item rows leave DID empty (or 0) and carry Product ID plus the container columns.")
	f.SetCellValue("Instructions", "A7", "- An item row must follow a header row; files starting with an item row are rejected.")

	f.SetCellValue("Instructions", "A9", "IMPORT MODES:")
	f.SetCellValue("Instructions", "A10", "1. overwrite - replaces the whole catalog with the file contents.")
	f.SetCellValue("Instructions", "A11", "2. merge - appends the file, rejected entirely if any DID, Product ID or barcode already exists.")

	f.SetCellValue("Instructions", "A13", "Column Definitions:")
	f.SetCellValue("Instructions", "A14", "Column")
	f.SetCellValue("Instructions", "B14", "Scope")
	f.SetCellValue("Instructions", "C14", "Required")
	f.SetCellValue("Instructions", "D14", "Type")
	f.SetCellValue("Instructions", "E14", "Example")

	for i, col := range template.Columns {
		row := i + 15
		f.SetCellValue("Instructions", fmt.Sprintf("A%d", row), col.Label)
		f.SetCellValue("Instructions", fmt.Sprintf("B%d", row), string(col.Scope))
		required := "Optional"
		if col.Required {
			required = "Required"
		}
		f.SetCellValue("Instructions", fmt.Sprintf("C%d", row), required)
		f.SetCellValue("Instructions", fmt.Sprintf("D%d", row), string(col.Kind))
		f.SetCellValue("Instructions", fmt.Sprintf("E%d", row), col.Example)
	}

	f.SetColWidth("Instructions", "A", "A", 45)
	f.SetColWidth("Instructions", "B", "B", 12)
	f.SetColWidth("Instructions", "C", "C", 15)
	f.SetColWidth("Instructions", "D", "D", 15)
	f.SetColWidth("Instructions", "E", "E", 40)

	sheetIdx, _ := f.GetSheetIndex(catalogSheetName)
	f.SetActiveSheet(sheetIdx)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=catalog_import_template.xlsx")

	f.Write(c.Writer)
}

// ImportCatalog imports the catalog from a CSV or Excel file as one
// transaction: the whole file either lands or nothing changes.
// POST /api/v1/catalog/import
func (h *ImportHandler) ImportCatalog(c *gin.Context) {
	startTime := time.Now()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FILE_REQUIRED",
				Message: "Please upload a CSV or Excel file",
			},
		})
		return
	}
	defer file.Close()

	mode := models.ImportMode(c.DefaultPostForm("mode", string(models.ImportModeOverwrite)))
	if mode != models.ImportModeOverwrite && mode != models.ImportModeMerge {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_MODE",
				Message: "Import mode must be 'overwrite' or 'merge'",
			},
		})
		return
	}
	validateOnly := c.DefaultPostForm("validateOnly", "false") == "true"

	// Determine file format
	filename := strings.ToLower(header.Filename)
	var format models.ImportFormat
	if strings.HasSuffix(filename, ".csv") {
		format = models.ImportFormatCSV
	} else if strings.HasSuffix(filename, ".xlsx") {
		format = models.ImportFormatXLSX
	} else {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_FORMAT",
				Message: "Only CSV and XLSX files are supported",
			},
		})
		return
	}

	var rows []map[string]any
	var parseErr error
	if format == models.ImportFormatCSV {
		rows, parseErr = h.parseCSV(file)
	} else {
		rows, parseErr = h.parseXLSX(file)
	}

	if parseErr != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "PARSE_ERROR",
				Message: parseErr.Error(),
			},
		})
		return
	}

	if len(rows) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "EMPTY_FILE",
				Message: "The file contains no data rows",
			},
		})
		return
	}

	records := make([]models.Record, len(rows))
	for i, row := range rows {
		records[i] = catalog.ToRecord(row)
	}

	products, err := catalog.Restructure(records)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "MALFORMED_HIERARCHY",
				Message: err.Error(),
			},
		})
		return
	}

	result := &models.ImportResult{
		Mode:         mode,
		ValidateOnly: validateOnly,
		TotalRows:    len(records),
		ProductCount: len(products),
		ItemCount:    countItems(products),
	}

	if validateOnly {
		// Dry run: report what a merge would collide on without mutating.
		if mode == models.ImportModeMerge {
			if collisions := catalog.FindDuplicates(h.repo.Products(), products); collisions.Any() {
				result.Collisions = collisions
				result.Errors = collisions.Messages()
			}
		}
		result.Success = len(result.Errors) == 0
		result.ProcessingMs = time.Since(startTime).Milliseconds()
		c.JSON(http.StatusOK, result)
		return
	}

	collisions, ok := h.repo.SetProducts(products, mode)
	result.Success = ok
	if !ok {
		result.Collisions = collisions
		result.Errors = collisions.Messages()
	}
	result.ProcessingMs = time.Since(startTime).Milliseconds()

	if h.publisher != nil {
		if ok {
			h.publisher.PublishImportCompleted(context.Background(), result, h.tenantID)
		} else {
			h.publisher.PublishImportRejected(context.Background(), result, h.tenantID)
		}
	}

	if !ok {
		// Merge rejection is not a transport failure; the payload carries the
		// per-space collision detail.
		c.JSON(http.StatusConflict, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportCatalog flattens the catalog back into sheet rows and streams them in
// the requested format.
// GET /api/v1/catalog/export
func (h *ImportHandler) ExportCatalog(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	records := catalog.Flatten(h.repo.Products())
	columns := models.CatalogColumns()

	switch format {
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment; filename=catalog_export.csv")

		writer := csv.NewWriter(c.Writer)
		defer writer.Flush()

		headers := make([]string, len(columns))
		for i, col := range columns {
			headers[i] = col.Label
		}
		writer.Write(headers)

		for _, rec := range records {
			row := catalog.ToRow(rec)
			line := make([]string, len(columns))
			for i, col := range columns {
				line[i] = catalog.CellText(row[col.Label])
			}
			writer.Write(line)
		}

	case "xlsx":
		f := excelize.NewFile()
		defer f.Close()
		f.SetSheetName("Sheet1", catalogSheetName)

		for i, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(catalogSheetName, cell, col.Label)
		}
		for r, rec := range records {
			row := catalog.ToRow(rec)
			for i, col := range columns {
				cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
				if v := row[col.Label]; v != nil {
					f.SetCellValue(catalogSheetName, cell, v)
				}
			}
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=catalog_export.xlsx")
		f.Write(c.Writer)

	default:
		rows := make([]map[string]any, len(records))
		for i, rec := range records {
			rows[i] = catalog.ToRow(rec)
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    rows,
		})
	}
}

// parseCSV parses a CSV file into raw rows keyed by header label
func (h *ImportHandler) parseCSV(file io.Reader) ([]map[string]any, error) {
	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows []map[string]any
	lineNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", lineNum+1, err)
		}

		row := make(map[string]any, len(headers))
		for i, value := range record {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, row)
		lineNum++
	}

	return rows, nil
}

// parseXLSX parses an Excel file into raw rows keyed by header label
func (h *ImportHandler) parseXLSX(file io.Reader) ([]map[string]any, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	sheetName := sheets[0]
	// Prefer the catalog sheet if it exists (templates carry an Instructions
	// sheet alongside it).
	for _, name := range sheets {
		if strings.EqualFold(name, catalogSheetName) {
			sheetName = name
			break
		}
	}

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	if len(excelRows) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	headers := excelRows[0]
	var rows []map[string]any
	for _, excelRow := range excelRows[1:] {
		row := make(map[string]any, len(headers))
		for i, value := range excelRow {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func countItems(products []models.Product) int {
	total := 0
	for _, p := range products {
		total += len(p.Items)
	}
	return total
}
