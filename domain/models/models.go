package models

import "github.com/kennedy-blip/Data-transformation/pipeline"

// UploadResponse is returned after a successful dataset upload.
type UploadResponse struct {
	ID       string                   `json:"id"`
	Name     string                   `json:"name"`
	Columns  []string                 `json:"columns"`
	RowCount int                      `json:"rowCount"`
	Profiles []pipeline.ColumnProfile `json:"profiles"`
}

// ViewResponse carries the current transformed table, the shape every
// configuration endpoint answers with.
type ViewResponse struct {
	Columns []string       `json:"columns"`
	Rows    []pipeline.Row `json:"rows"`
}

// ExportResult names the table a database export wrote to.
type ExportResult struct {
	Table string `json:"table"`
}

// ErrorResponse is the body of every non-2xx JSON answer.
type ErrorResponse struct {
	Error string `json:"error"`
}
