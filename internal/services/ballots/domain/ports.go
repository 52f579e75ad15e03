package domain

import (
	"bytes"
	"context"
	"time"

	"ballotbox/internal/core/ballot"
	"ballotbox/internal/core/tally"
)

// IngestPort is the write side of the pipeline
type IngestPort interface {
	IngestWorkbook(ctx context.Context, up Upload) (Report, error)
	IngestTable(ctx context.Context, in RowsInput) (Report, error)
	IngestRecords(ctx context.Context, recs []ballot.VoterRecord) (Report, error)
	Reload(ctx context.Context) (Report, error)
	Reset(ctx context.Context) error
}

// ReadPort is the read side over the published state
type ReadPort interface {
	Snapshot() Snapshot
	Stats() (tally.Stats, error)
	Names(q BrowseQuery) (tally.Page[string], error)
	Units(q BrowseQuery) (tally.Page[string], error)
	Votes(q BrowseQuery) (tally.Page[tally.Vote], error)
	Voters(candidate string, q BrowseQuery) (tally.Page[ballot.Voter], error)
}

// ServicePort is consumed by handlers, the CLI and other modules
type ServicePort interface {
	IngestPort
	ReadPort
	Template(now time.Time) (*bytes.Buffer, error)
}
