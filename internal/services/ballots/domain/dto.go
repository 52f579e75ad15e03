// Package domain holds DTOs for ballot ingestion and the read views over the published state
package domain

import (
	"io"
	"time"

	"ballotbox/internal/core/ballot"
	"ballotbox/internal/core/tally"
)

// Source names where an ingestion came from
type Source string

// Ingestion sources
const (
	SourceUpload  Source = "upload"
	SourceRows    Source = "rows"
	SourceRecords Source = "records"
	SourceStorage Source = "storage"
)

// Upload is one workbook handed to the pipeline
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Report describes one ingestion attempt
// on failure the counts reflect how far the pipeline got
type Report struct {
	BatchID      string `json:"batchId" example:"5b0e4c1e-3f7a-4d4b-9a8e-2d0f1c9b7a11"`
	Source       Source `json:"source" example:"upload"`
	Filename     string `json:"filename,omitempty" example:"votes.xlsx"`
	Sheet        string `json:"sheet,omitempty" example:"Sheet1"`
	RowsRead     int    `json:"rowsRead" example:"120"`
	RowsAccepted int    `json:"rowsAccepted" example:"118"`
	RowsRejected int    `json:"rowsRejected" example:"2"`
	HasData      bool   `json:"hasData" example:"true"`
}

// Snapshot is the published state as readers see it
type Snapshot struct {
	HasData   bool                 `json:"hasData" example:"true"`
	BatchID   string               `json:"batchId,omitempty" example:"5b0e4c1e-3f7a-4d4b-9a8e-2d0f1c9b7a11"`
	Source    Source               `json:"source,omitempty" example:"upload"`
	UpdatedAt *time.Time           `json:"updatedAt,omitempty"`
	Records   []ballot.VoterRecord `json:"records"`
	Stats     *tally.Stats         `json:"stats,omitempty"`
}

// BrowseQuery filters and pages a list view
type BrowseQuery struct {
	Q        string `query:"q" validate:"omitempty,max=200" example:"john"`
	Page     int    `query:"page" validate:"omitempty,min=1" example:"1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100" example:"10"`
}

// PageRequest converts the query paging fields for tally
func (q BrowseQuery) PageRequest() tally.PageRequest {
	return tally.PageRequest{Page: q.Page, Size: q.PageSize}
}

// RowsInput is a raw table posted as JSON, one object per sheet row keyed by header
type RowsInput struct {
	Rows ballot.RawTable `json:"rows" validate:"required"`
	// Date1904 reads numeric timestamps in the 1904 date system
	Date1904 bool `json:"date1904,omitempty"`
}

// RecordsInput is a list of already canonical records, as persisted
type RecordsInput struct {
	Records []ballot.VoterRecord `json:"records" validate:"required"`
}
