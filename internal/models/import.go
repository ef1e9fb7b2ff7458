package models

// ImportFormat represents the file format for import
type ImportFormat string

const (
	ImportFormatCSV  ImportFormat = "csv"
	ImportFormatXLSX ImportFormat = "xlsx"
)

// ImportMode selects how an imported batch is folded into the catalog.
type ImportMode string

const (
	// ImportModeOverwrite replaces the whole catalog unconditionally.
	ImportModeOverwrite ImportMode = "overwrite"
	// ImportModeMerge appends the batch only when no identifier space
	// collides with the existing catalog.
	ImportModeMerge ImportMode = "merge"
)

// ImportTemplate defines the downloadable sheet layout for catalog imports.
type ImportTemplate struct {
	Entity  string   `json:"entity"`
	Version string   `json:"version"`
	Columns []Column `json:"columns"`
}

// CatalogImportTemplate returns the template definition for the catalog sheet.
func CatalogImportTemplate() ImportTemplate {
	return ImportTemplate{
		Entity:  "nutrition-products",
		Version: "1.0",
		Columns: CatalogColumns(),
	}
}

// ImportResult represents the outcome of an import transaction.
type ImportResult struct {
	Success      bool                `json:"success"`
	Mode         ImportMode          `json:"mode"`
	ValidateOnly bool                `json:"validateOnly,omitempty"`
	TotalRows    int                 `json:"totalRows"`
	ProductCount int                 `json:"productCount"`
	ItemCount    int                 `json:"itemCount"`
	Collisions   map[string][]string `json:"collisions,omitempty"`
	Errors       []string            `json:"errors,omitempty"`
	ProcessingMs int64               `json:"processingMs"`
}
